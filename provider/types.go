package provider

// Request configures a chat completion call.
// This is the transport-agnostic request format shared by all transports.
type Request struct {
	// Model specifies which model to use (endpoint-specific name).
	// Examples: "gpt-4.1", "gpt-4o-mini"
	Model string `json:"model"`

	// Messages is the conversation history to send to the model.
	// Order is significant; it is replayed verbatim to the endpoint.
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length. 0 means endpoint default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// Message is a conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a conversation turn.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// Role identifies the message sender.
type Role string

// Standard message roles supported across all transports.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model.
	Content string `json:"content"`

	// Usage tracks token consumption for this request.
	Usage TokenUsage `json:"usage"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model"`

	// CostUSD is the transport-native cost estimate in USD.
	// Zero when the transport does not track cost; callers fall back
	// to fixed-rate pricing in that case.
	CostUSD float64 `json:"cost_usd,omitempty"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
