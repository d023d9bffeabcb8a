package domain

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation message, immutable once appended.
type Turn struct {
	Role    string
	Content string
}

// ConversationalResult is the reply produced by the conversational agent.
type ConversationalResult struct {
	Message          string
	Confidence       float64
	ProcessingTime   int64 // milliseconds
	RequiresFollowUp bool
}
