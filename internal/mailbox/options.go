package mailbox

import "github.com/Iron-Ham/minotaur/internal/event"

// Option configures a Mailbox.
type Option func(*Mailbox)

// WithBus attaches an event bus to the Mailbox. When set, a
// MessageSentEvent is published after every Post.
func WithBus(bus *event.Bus) Option {
	return func(m *Mailbox) {
		m.bus = bus
	}
}

// WithStore records every delivery to a trace store.
func WithStore(s *Store) Option {
	return func(m *Mailbox) {
		m.store = s
	}
}

// WithSeed seeds the generator used for shuffling and duplication.
func WithSeed(seed int64) Option {
	return func(m *Mailbox) {
		m.seed = uint64(seed)
	}
}

// WithShuffle delivers each robot's messages in random order.
func WithShuffle(shuffle bool) Option {
	return func(m *Mailbox) {
		m.shuffle = shuffle
	}
}

// WithDuplicateRate delivers each message a second time with probability
// rate. Values outside [0, 1) are ignored.
func WithDuplicateRate(rate float64) Option {
	return func(m *Mailbox) {
		if rate >= 0 && rate < 1 {
			m.duplicateRate = rate
		}
	}
}
