package quote

import (
	"fmt"
	"sync"
	"sync/atomic"

	"goquote/internal/common"
)

type QuoteState int

const (
	NoQuote QuoteState = iota
	QuotePending
)

func (s QuoteState) String() string {
	switch s {
	case QuotePending:
		return "quote_pending"
	default:
		return "no_quote"
	}
}

var surfaceSeq uint64

// Surface is one rendering of a channel's composer. It re-reads the slot on
// every matching notification and tracks the channel's quote state.
type Surface struct {
	channelID string
	key       string
	name      string
	bridge    *Bridge
	bus       common.Subject
	onChange  func(*common.QuotedReference)

	mu    sync.Mutex
	state QuoteState
	ref   *common.QuotedReference
	reads int
}

// Observe creates a surface for channelID, reads the slot once and subscribes
// it. onChange, when set, runs after every re-read with the fresh value. It
// must not call back into the surface.
func (b *Bridge) Observe(channelID string, onChange func(*common.QuotedReference)) *Surface {
	s := &Surface{
		channelID: channelID,
		key:       SlotKey(channelID),
		name:      fmt.Sprintf("surface_%s_%d", channelID, atomic.AddUint64(&surfaceSeq, 1)),
		bridge:    b,
		bus:       b.bus,
		onChange:  onChange,
	}
	s.refresh()
	b.bus.Subscribe(channelID, s)
	return s
}

func (s *Surface) Name() string {
	return s.name
}

// Update filters local events by channel id and storage events by slot key.
func (s *Surface) Update(event common.QuoteEvent) error {
	switch event.Source {
	case common.SourceLocal:
		if event.ChannelID != s.channelID {
			return nil
		}
	case common.SourceStorage:
		if event.Key != s.key {
			return nil
		}
	default:
		return fmt.Errorf("unknown quote event source %q", event.Source)
	}

	s.refresh()
	return nil
}

// refresh holds s.mu across the read and onChange so refreshes running on
// different bus workers apply in the order they read the slot.
func (s *Surface) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.bridge.Get(s.channelID)
	s.reads++
	if ok {
		s.state = QuotePending
		s.ref = ref
	} else {
		s.state = NoQuote
		s.ref = nil
	}
	if s.onChange != nil {
		s.onChange(ref)
	}
}

func (s *Surface) State() QuoteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reference returns a copy of the pending quote, or nil.
func (s *Surface) Reference() *common.QuotedReference {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ref == nil {
		return nil
	}
	ref := *s.ref
	return &ref
}

// Reads counts slot reads, including the initial one.
func (s *Surface) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Surface) ChannelID() string {
	return s.channelID
}

func (s *Surface) Close() {
	s.bus.Unsubscribe(s.channelID, s)
}
