package store

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/model"
)

// Store serializes dispatches so only one reduction runs at a time, and fans
// each resulting state out to subscribers.
type Store struct {
	mu      sync.Mutex
	state   model.State
	subs    []chan model.State
	logger  *slog.Logger
	dropped uint64
}

func New(initial model.State, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if initial.Routines == nil {
		initial.Routines = []model.Routine{}
	}
	return &Store{state: initial.Clone(), logger: logger}
}

func (s *Store) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Dispatch(a Action) model.State {
	if a == nil {
		return s.State()
	}
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.Clone()
	// Sends never block, so publishing under mu keeps every subscriber in
	// dispatch order.
	for _, ch := range s.subs {
		select {
		case ch <- snapshot.Clone():
		default:
			atomic.AddUint64(&s.dropped, 1)
		}
	}
	s.mu.Unlock()

	if a.Kind() != KindTick {
		s.logger.Debug("dispatch", logging.Action(string(a.Kind())), logging.Count(len(snapshot.Routines)))
	}
	return snapshot
}

// Subscribe returns a channel that receives the state after every dispatch,
// in dispatch order. A full channel drops the snapshot instead of blocking
// the dispatcher.
func (s *Store) Subscribe(buffer int) <-chan model.State {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan model.State, buffer)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}
