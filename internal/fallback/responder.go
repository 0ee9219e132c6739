// Package fallback produces supportive replies locally when the remote
// answer service cannot be reached.
package fallback

import "strings"

// DefaultResponse is returned when no keyword group matches.
const DefaultResponse = "I'm here to listen and support you. While I'm having some technical difficulties connecting to my full capabilities right now, I want you to know that your feelings matter and you're not alone. Your emotional well-being is important. Can you tell me more about what's on your mind? Even in offline mode, I'm here to provide support and guidance."

// Rule pairs a keyword group with its canned response.
type Rule struct {
	Topic    string
	Keywords []string
	Response string
}

// matches reports whether any keyword is a substring of the lower-cased input.
func (r Rule) matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rules is evaluated in order; the first matching group wins.
var Rules = []Rule{
	{
		Topic:    "breathing",
		Keywords: []string{"breathing", "relaxation"},
		Response: "Let's try a simple breathing exercise together. Take a slow, deep breath in through your nose for 4 counts... hold it for 4 counts... and slowly exhale through your mouth for 6 counts. Repeat this a few times and notice how your body begins to relax. Focus on the sensation of your breath moving in and out.",
	},
	{
		Topic:    "journal",
		Keywords: []string{"journal", "thoughts", "feelings"},
		Response: "Journaling is a powerful way to process emotions. Try writing about these prompts: What am I feeling right now? What triggered this feeling? What would I tell a friend in this situation? What's one thing I'm grateful for today? Remember, there's no right or wrong way to express your thoughts.",
	},
	{
		Topic:    "affirmation",
		Keywords: []string{"affirmation", "confidence", "positive"},
		Response: "Here are some powerful affirmations for you: 'I am worthy of love and respect.' 'I have the strength to overcome challenges.' 'I am growing and learning every day.' 'I trust in my ability to handle whatever comes my way.' Choose one that resonates with you and repeat it with intention.",
	},
	{
		Topic:    "reframe",
		Keywords: []string{"reframe", "negative", "perspective"},
		Response: "Let's work on reframing those thoughts. Instead of 'I can't do this,' try 'I'm learning how to do this.' Instead of 'This is too hard,' try 'This is challenging, and that's how I grow.' Instead of 'I always mess up,' try 'I'm human and I'm improving.' What's one small step you can take right now?",
	},
	{
		Topic:    "stress",
		Keywords: []string{"stressed", "anxiety", "anxious"},
		Response: "I understand you're feeling stressed. That's completely normal and valid. Try this grounding technique: Take three deep breaths, then name 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, and 1 thing you can taste. This can help bring you back to the present moment.",
	},
	{
		Topic:    "sadness",
		Keywords: []string{"sad", "down", "depressed"},
		Response: "I'm sorry you're feeling this way. Your emotions are completely valid, and it's okay to feel sad sometimes. Remember that feelings are temporary, even when they feel overwhelming. You don't have to carry this alone. What's one small thing that usually brings you a bit of comfort or peace?",
	},
	{
		Topic:    "happiness",
		Keywords: []string{"happy", "good", "excited"},
		Response: "I'm so glad to hear you're feeling positive! It's wonderful to recognize and celebrate these moments of joy. What's contributing to this good feeling? How can you carry this positive energy forward? Sometimes writing down what made you happy can help you recreate these moments.",
	},
	{
		Topic:    "anger",
		Keywords: []string{"angry", "frustrated", "mad"},
		Response: "I hear that you're feeling angry or frustrated. These are valid emotions that tell us something important. Take a moment to breathe deeply. What's underneath this anger? Sometimes anger masks hurt, fear, or disappointment. It's okay to feel this way, and you can work through it.",
	},
}

// Responder maps free text to a supportive reply.
type Responder struct {
	rules []Rule
}

// NewResponder creates a responder over the built-in rule list.
func NewResponder() *Responder {
	return &Responder{rules: Rules}
}

// Respond returns the reply of the first matching rule, or DefaultResponse.
func (r *Responder) Respond(question string) string {
	_, resp := r.match(question)
	return resp
}

// Topic returns the topic of the matching rule, or "default".
func (r *Responder) Topic(question string) string {
	topic, _ := r.match(question)
	return topic
}

func (r *Responder) match(question string) (string, string) {
	lower := strings.ToLower(question)
	for _, rule := range r.rules {
		if rule.matches(lower) {
			return rule.Topic, rule.Response
		}
	}
	return "default", DefaultResponse
}
