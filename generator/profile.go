package generator

// Profile parametrizes a platform agent. The two platforms share one
// prompt-assembly path and differ only in these fields, so constraint
// changes happen in exactly one place.
type Profile struct {
	// Platform is the user-facing platform label, e.g. "X (Twitter)".
	Platform string
	// Agent names the persona, reported in workflow metadata.
	Agent string
	// System is the platform system prompt sent with every call.
	System string

	// Per-post requirement lines spliced into the generation prompt.
	LengthRule  string
	ValueRule   string
	HashtagRule string
	// ContentPlaceholder fills the format example at the prompt tail.
	ContentPlaceholder string
}

// LinkedInProfile returns the professional long-form variant.
func LinkedInProfile() Profile {
	return Profile{
		Platform:           "LinkedIn",
		Agent:              "LinkedIn Content Creator",
		System:             linkedInSystemPrompt,
		LengthRule:         "Each post should be between 150-300 words",
		ValueRule:          "Each post should be self-contained and valuable",
		HashtagRule:        "Include 3-5 relevant hashtags for each post",
		ContentPlaceholder: "[Post content here]",
	}
}

// XProfile returns the terse character-capped variant.
func XProfile() Profile {
	return Profile{
		Platform:           "X (Twitter)",
		Agent:              "X Content Creator",
		System:             xSystemPrompt,
		LengthRule:         "Each post MUST be under 280 characters (including hashtags)",
		ValueRule:          "Each post should be impactful and shareable",
		HashtagRule:        "Include 1-3 relevant hashtags for each post",
		ContentPlaceholder: "[Post content here - UNDER 280 characters]",
	}
}
