package session

import (
	"slices"

	"github.com/dexora-ai/dexora/pkg/chat"
)

// Snapshot is an immutable, ordered view of a conversation.
type Snapshot struct {
	messages []Message
}

func NewSnapshot(msgs ...Message) Snapshot {
	return Snapshot{messages: slices.Clone(msgs)}
}

// Messages returns a copy of the messages.
func (s Snapshot) Messages() []Message {
	return slices.Clone(s.messages)
}

func (s Snapshot) Len() int {
	return len(s.messages)
}

// Last returns the most recent message, if any.
func (s Snapshot) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Append returns a new snapshot. The receiver is left untouched.
func (s Snapshot) Append(msgs ...Message) Snapshot {
	return Snapshot{messages: slices.Concat(s.messages, msgs)}
}

// ChatMessages renders the history as model input, led by the system prompt.
// A positive maxHistory keeps only the newest maxHistory messages; otherwise
// the full history is replayed.
func (s Snapshot) ChatMessages(system string, maxHistory int) []chat.Message {
	messages := make([]chat.Message, 0, len(s.messages)+1)
	if system != "" {
		messages = append(messages, chat.Message{
			Role:    chat.MessageRoleSystem,
			Content: system,
		})
	}

	history := make([]chat.Message, 0, len(s.messages))
	for _, m := range s.messages {
		history = append(history, m.chatMessage())
	}

	return append(messages, trimMessages(history, maxHistory)...)
}

// trimMessages drops the oldest messages beyond maxMessages. Tool results
// whose call was dropped go with it.
func trimMessages(messages []chat.Message, maxMessages int) []chat.Message {
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}

	toRemove := len(messages) - maxMessages
	removedCalls := make(map[string]bool)
	for _, msg := range messages[:toRemove] {
		for _, tc := range msg.ToolCalls {
			removedCalls[tc.ID] = true
		}
	}

	result := make([]chat.Message, 0, maxMessages)
	for _, msg := range messages[toRemove:] {
		if msg.Role == chat.MessageRoleTool && removedCalls[msg.ToolCallID] {
			continue
		}
		result = append(result, msg)
	}
	return result
}
