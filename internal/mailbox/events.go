package mailbox

import (
	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/event"
)

// NewMessageSentEvent creates an event.MessageSentEvent for a posted message.
func NewMessageSentEvent(id string, from int, kind bidding.Kind, tick int) event.MessageSentEvent {
	return event.NewMessageSentEvent(id, from, string(kind), tick)
}
