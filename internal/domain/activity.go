package domain

// Activity is a canned conversation starter offered on an empty session.
type Activity struct {
	Action   string `json:"action"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Prompt   string `json:"prompt"`
}

// Activities returns the fixed list of conversation starters.
func Activities() []Activity {
	return []Activity{
		{
			Action:   "breathing",
			Title:    "Breathing Exercise",
			Subtitle: "Guided relaxation",
			Prompt:   "I'd like to do a breathing exercise. Can you guide me through some relaxation techniques?",
		},
		{
			Action:   "journal",
			Title:    "Journal Thoughts",
			Subtitle: "Express yourself",
			Prompt:   "I want to journal my thoughts and feelings. Can you help me process what's on my mind?",
		},
		{
			Action:   "affirmation",
			Title:    "Positive Affirmation",
			Subtitle: "Build confidence",
			Prompt:   "I need some positive affirmations to boost my confidence and mood. Can you help me?",
		},
		{
			Action:   "reframe",
			Title:    "Reframe Thoughts",
			Subtitle: "New perspective",
			Prompt:   "I'm having negative thoughts and need help reframing them into a more positive perspective.",
		},
	}
}

// FindActivity looks up an activity by its action key.
func FindActivity(action string) (Activity, bool) {
	for _, a := range Activities() {
		if a.Action == action {
			return a, true
		}
	}
	return Activity{}, false
}
