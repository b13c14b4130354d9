package generator

// Request describes one content-generation task. Built once per workflow
// run and shared read-only by both platform agents.
type Request struct {
	Context  string
	Examples string
	NumPosts int
}

// Result is a platform agent's output plus labeling metadata.
type Result struct {
	Platform string
	NumPosts int
	Posts    string
	Agent    string
}
