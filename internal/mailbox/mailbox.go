package mailbox

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/google/uuid"
)

// Mailbox is the broadcast medium between simulated robots. A message
// posted during a tick reaches every other member at the next Deliver,
// never its sender. Delivery is unordered and may duplicate messages.
type Mailbox struct {
	mu sync.Mutex

	members []int
	pending []envelope
	inboxes map[int][]bidding.Message
	tick    int

	seed          uint64
	rng           *rand.Rand
	shuffle       bool
	duplicateRate float64

	bus   *event.Bus
	store *Store

	posted, delivered int
}

// New creates an empty Mailbox.
func New(opts ...Option) *Mailbox {
	m := &Mailbox{
		inboxes: make(map[int][]bidding.Message),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rng = rand.New(rand.NewPCG(m.seed, m.seed^0x9e3779b97f4a7c15))
	return m
}

// Join adds a robot to the broadcast group. Joining twice is a no-op.
func (m *Mailbox) Join(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.members, id) {
		m.members = append(m.members, id)
		slices.Sort(m.members)
	}
}

// Post queues a broadcast from a robot and returns the message id.
func (m *Mailbox) Post(from int, msg bidding.Message) string {
	m.mu.Lock()
	id := uuid.NewString()
	m.pending = append(m.pending, envelope{id: id, from: from, msg: msg.Clone(), sent: m.tick})
	m.posted++
	tick := m.tick
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(NewMessageSentEvent(id, from, msg.Kind(), tick))
	}
	return id
}

// Deliver hands every queued message to each member except its sender and
// advances the mailbox to tick. Each recipient gets its own copy. When a
// trace store is set, one record per delivery is appended to it.
func (m *Mailbox) Deliver(tick int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tick = tick
	var records []Record
	for _, env := range m.pending {
		copies := 1
		if m.duplicateRate > 0 && m.rng.Float64() < m.duplicateRate {
			copies = 2
		}
		for _, to := range m.members {
			if to == env.from {
				continue
			}
			for c := range copies {
				m.inboxes[to] = append(m.inboxes[to], env.msg.Clone())
				m.delivered++
				if m.store != nil {
					rec, err := newRecord(env, to, tick, c > 0)
					if err != nil {
						return err
					}
					records = append(records, rec)
				}
			}
		}
	}
	m.pending = nil

	if m.shuffle {
		for _, to := range m.members {
			inbox := m.inboxes[to]
			m.rng.Shuffle(len(inbox), func(i, j int) { inbox[i], inbox[j] = inbox[j], inbox[i] })
		}
	}

	if m.store != nil && len(records) > 0 {
		return m.store.Append(records...)
	}
	return nil
}

// Receive drains the messages delivered to a robot.
func (m *Mailbox) Receive(id int) []bidding.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.inboxes[id]
	delete(m.inboxes, id)
	return msgs
}

// Stats returns how many messages were posted and how many copies were
// delivered.
func (m *Mailbox) Stats() (posted, delivered int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posted, m.delivered
}

func newRecord(env envelope, to, tick int, duplicate bool) (Record, error) {
	payload, err := json.Marshal(env.msg)
	if err != nil {
		return Record{}, fmt.Errorf("mailbox: marshal %s: %w", env.msg.Kind(), err)
	}
	return Record{
		ID:        env.id,
		From:      env.from,
		To:        to,
		Kind:      env.msg.Kind(),
		SentTick:  env.sent,
		Tick:      tick,
		Duplicate: duplicate,
		Payload:   payload,
		Timestamp: time.Now(),
	}, nil
}
