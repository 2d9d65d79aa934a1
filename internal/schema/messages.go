package schema

// Message is one entry in a prompt sent to a language-reply provider.
//
// Role is one of: "system", "user", "assistant".
type Message struct {
	Role    string
	Content string
}

func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// Messages is the ordered list of messages exchanged with the LLM.
// It owns typed append methods so callers never construct raw maps.
type Messages struct {
	Messages []Message
}

// NewMessages returns a Messages initialised with the given messages.
// Called with no arguments it returns an empty Messages ready for use.
func NewMessages(msgs ...Message) Messages {
	if len(msgs) == 0 {
		return Messages{Messages: make([]Message, 0)}
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return Messages{Messages: out}
}

// AddSystem appends a system message.
func (mh *Messages) AddSystem(content string) {
	mh.Messages = append(mh.Messages, NewSystemMessage(content))
}

// AddUser appends a user message.
func (mh *Messages) AddUser(content string) {
	mh.Messages = append(mh.Messages, NewUserMessage(content))
}

// System returns the concatenated system prompt, joined by blank lines.
func (mh Messages) System() string {
	var out string
	for _, m := range mh.Messages {
		if m.Role != "system" || m.Content == "" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// LastUser returns the content of the most recent user message, or "".
func (mh Messages) LastUser() string {
	for i := len(mh.Messages) - 1; i >= 0; i-- {
		if mh.Messages[i].Role == "user" {
			return mh.Messages[i].Content
		}
	}
	return ""
}
