package server

import "sync"

// Status is the poller-facing view of the current workflow.
type Status struct {
	Running    bool   `json:"running"`
	Progress   string `json:"progress"`
	Output     string `json:"output"`
	OutputHTML string `json:"output_html"`
	Error      string `json:"error,omitempty"`
}

// stateCell holds the single shared workflow status record. One writer at
// a time: tryStart refuses a second run while one is in flight, so every
// later write belongs to the run that won.
type stateCell struct {
	mu         sync.Mutex
	running    bool
	runID      string
	progress   string
	output     string
	outputHTML string
	fullOutput string
	errMsg     string
}

// tryStart claims the cell for a new run. It reports false, leaving all
// existing state untouched, when a run is already in flight.
func (c *stateCell) tryStart(runID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.running = true
	c.runID = runID
	c.progress = ""
	c.output = ""
	c.outputHTML = ""
	c.fullOutput = ""
	c.errMsg = ""
	return true
}

func (c *stateCell) setProgress(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = p
}

func (c *stateCell) finish(output, outputHTML, fullOutput string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.progress = "Complete!"
	c.output = output
	c.outputHTML = outputHTML
	c.fullOutput = fullOutput
}

func (c *stateCell) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.progress = "Error occurred"
	c.errMsg = err.Error()
}

func (c *stateCell) snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Running:    c.running,
		Progress:   c.progress,
		Output:     c.output,
		OutputHTML: c.outputHTML,
		Error:      c.errMsg,
	}
}

// fullReport returns the unfiltered report text of the last completed
// run, empty when none completed yet.
func (c *stateCell) fullReport() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullOutput
}
