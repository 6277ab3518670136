package types

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// MessageRole defines the role of a message sender
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// UserMessage builds the single-turn message every prompt is sent as
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
