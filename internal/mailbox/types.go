package mailbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/errors"
)

// Record is one delivery of a message to one robot, as written to the
// trace.
type Record struct {
	ID        string          `json:"id"`
	From      int             `json:"from"`
	To        int             `json:"to"`
	Kind      bidding.Kind    `json:"kind"`
	SentTick  int             `json:"sent_tick"`
	Tick      int             `json:"tick"`
	Duplicate bool            `json:"duplicate,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Message decodes the record's payload.
func (r Record) Message() (bidding.Message, error) {
	switch r.Kind {
	case bidding.KindDoorwayFound:
		var m bidding.DoorwayFound
		if err := json.Unmarshal(r.Payload, &m); err != nil {
			return nil, fmt.Errorf("mailbox: decode %s: %w", r.Kind, err)
		}
		return m, nil
	case bidding.KindBidding:
		var m bidding.Bidding
		if err := json.Unmarshal(r.Payload, &m); err != nil {
			return nil, fmt.Errorf("mailbox: decode %s: %w", r.Kind, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("mailbox: kind %q: %w", r.Kind, errors.ErrUnknownMessage)
	}
}

// envelope is a posted message waiting for the next delivery.
type envelope struct {
	id   string
	from int
	msg  bidding.Message
	sent int
}
