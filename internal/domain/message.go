package domain

// Role tags a conversation message author.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is a single turn of the caller-owned conversation.
// The history is append-only within a session and passed in on every call.
type ConversationMessage struct {
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LastUserMessage returns the newest user-authored message.
func LastUserMessage(history []ConversationMessage) (ConversationMessage, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i], true
		}
	}
	return ConversationMessage{}, false
}

// IsFirstMessage reports whether the history is a session opener: no
// assistant turns have happened yet.
func IsFirstMessage(history []ConversationMessage) bool {
	for _, m := range history {
		if m.Role == RoleAssistant {
			return false
		}
	}
	return true
}
