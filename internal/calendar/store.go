package calendar

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cwarden/calmate/internal/log"
	"github.com/samber/mo"
)

// StaticPolicy decides which events count as static and so cannot be deleted.
type StaticPolicy string

const (
	// PolicyFlag trusts the event's Static flag.
	PolicyFlag StaticPolicy = "flag"
	// PolicySeedMembership treats an event as static when its id was in the
	// loaded seed set, regardless of the flag.
	PolicySeedMembership StaticPolicy = "seed-membership"
)

func ParseStaticPolicy(s string) (StaticPolicy, error) {
	switch StaticPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFlag, "":
		return PolicyFlag, nil
	case PolicySeedMembership, "seed":
		return PolicySeedMembership, nil
	}
	return "", fmt.Errorf("unknown static policy %q", s)
}

// Store owns every event of the session. Order of insertion is kept;
// updates replace an event in place.
type Store struct {
	mu      sync.RWMutex
	events  []Event
	index   map[int64]int
	seedIDs map[int64]struct{}

	policy       StaticPolicy
	ids          IDGenerator
	now          func() time.Time
	protectEdits bool
	notify       func(string)
}

type Option func(*Store)

func WithStaticPolicy(p StaticPolicy) Option {
	return func(s *Store) { s.policy = p }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the source of "today" for the past-date rules.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEditProtection blocks edits of static and past events, not only deletes.
func WithEditProtection(enabled bool) Option {
	return func(s *Store) { s.protectEdits = enabled }
}

// WithNotifier receives the user notice of every blocked operation.
func WithNotifier(fn func(string)) Option {
	return func(s *Store) { s.notify = fn }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		index:   make(map[int64]int),
		seedIDs: make(map[int64]struct{}),
		policy:  PolicyFlag,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	return s
}

func (s *Store) Policy() StaticPolicy {
	return s.policy
}

// LoadSeed appends seed events verbatim, marked static. Events whose id is
// already taken are logged and skipped. It returns how many were loaded.
func (s *Store) LoadSeed(events []Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSeedLocked(events)
}

// Reseed swaps the current seed events for a new set, keeping user events.
func (s *Store) Reseed(events []Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if _, seeded := s.seedIDs[e.ID]; !seeded {
			kept = append(kept, e)
		}
	}
	s.events = kept
	s.seedIDs = make(map[int64]struct{})
	s.reindexLocked()

	return s.loadSeedLocked(events)
}

func (s *Store) loadSeedLocked(events []Event) int {
	loaded := 0
	for _, e := range events {
		if e.ID == 0 {
			e.ID = s.freshIDLocked()
		}
		if _, exists := s.index[e.ID]; exists {
			log.Info("skipping seed event with duplicate id", "id", e.ID, "title", e.Title)
			continue
		}
		if err := e.Validate(); err != nil {
			log.Debug("seed event fails validation, loading anyway", "id", e.ID, "reason", UserMessage(err))
		}
		e.Static = true
		s.index[e.ID] = len(s.events)
		s.events = append(s.events, e)
		s.seedIDs[e.ID] = struct{}{}
		loaded++
	}
	return loaded
}

// Add validates e and appends it as a user event, assigning an id when e has none.
func (s *Store) Add(e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(e)
}

// Upsert replaces the event with e's id in place, or adds e when the id is
// zero or unknown.
func (s *Store) Upsert(e Event) (Event, error) {
	s.mu.Lock()
	if idx, ok := s.index[e.ID]; ok && e.ID != 0 {
		saved, err := s.updateLocked(idx, e)
		s.mu.Unlock()
		s.emit(err)
		return saved, err
	}
	defer s.mu.Unlock()
	return s.insertLocked(e)
}

// Update is Upsert without the fallback: an unknown id is ErrNotFound.
func (s *Store) Update(e Event) (Event, error) {
	s.mu.Lock()
	idx, ok := s.index[e.ID]
	if !ok {
		s.mu.Unlock()
		return Event{}, notFoundError(e.ID)
	}
	saved, err := s.updateLocked(idx, e)
	s.mu.Unlock()
	s.emit(err)
	return saved, err
}

// Remove deletes a user event. Static events and events on past dates are
// kept; the user is notified and the returned error matches ErrPolicy.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	err := s.removeLocked(id)
	s.mu.Unlock()
	s.emit(err)
	return err
}

func (s *Store) removeLocked(id int64) error {
	idx, ok := s.index[id]
	if !ok {
		return notFoundError(id)
	}
	existing := s.events[idx]

	if s.isStaticLocked(existing) {
		return policyError(MsgStaticDelete)
	}
	if s.isPast(existing.Date) {
		return policyError(MsgPastDelete)
	}

	s.events = append(s.events[:idx], s.events[idx+1:]...)
	s.reindexLocked()
	log.Info("event removed", "id", id, "date", existing.Date)
	return nil
}

func (s *Store) insertLocked(e Event) (Event, error) {
	e.Static = false
	if e.Color == "" {
		e.Color = DefaultColor
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if err := s.checkConflictLocked(e, mo.None[int64]()); err != nil {
		return Event{}, err
	}

	if e.ID == 0 {
		e.ID = s.freshIDLocked()
	} else if s.idTakenLocked(e.ID) {
		return Event{}, &Error{Kind: KindDuplicate, Message: fmt.Sprintf("event id %d is already in use", e.ID)}
	}

	s.index[e.ID] = len(s.events)
	s.events = append(s.events, e)
	log.Info("event added", "id", e.ID, "date", e.Date, "start", e.Start, "end", e.End)
	return e, nil
}

func (s *Store) updateLocked(idx int, e Event) (Event, error) {
	existing := s.events[idx]

	if s.protectEdits {
		if s.isStaticLocked(existing) {
			return Event{}, policyError(MsgStaticEdit)
		}
		if s.isPast(existing.Date) {
			return Event{}, policyError(MsgPastEdit)
		}
	}

	if e.Date == "" {
		e.Date = existing.Date
	} else if e.Date != existing.Date {
		return Event{}, validationError(MsgDateImmutable)
	}
	if e.Color == "" {
		e.Color = existing.Color
	}
	e.Static = existing.Static

	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if err := s.checkConflictLocked(e, mo.Some(e.ID)); err != nil {
		return Event{}, err
	}

	s.events[idx] = e
	log.Info("event updated", "id", e.ID, "date", e.Date, "start", e.Start, "end", e.End)
	return e, nil
}

func (s *Store) checkConflictLocked(e Event, exclude mo.Option[int64]) error {
	if other, found := FindConflict(s.events, e.Date, e.Start, e.End, exclude).Get(); found {
		log.Debug("rejected conflicting event", "date", e.Date, "conflicts_with", other.ID)
		return &Error{
			Kind:    KindValidation,
			Message: MsgConflict,
			Err:     fmt.Errorf("overlaps %q (%s)", other.Title, other.TimeRange()),
		}
	}
	return nil
}

// emit forwards policy notices to the notifier. Called without the lock held.
func (s *Store) emit(err error) {
	if err == nil || !errors.Is(err, ErrPolicy) {
		return
	}
	msg := UserMessage(err)
	log.Info("operation blocked", "reason", msg)
	if s.notify != nil {
		s.notify(msg)
	}
}

func (s *Store) freshIDLocked() int64 {
	for {
		id := s.ids.NextID()
		if id != 0 && !s.idTakenLocked(id) {
			return id
		}
	}
}

func (s *Store) idTakenLocked(id int64) bool {
	if _, ok := s.index[id]; ok {
		return true
	}
	_, ok := s.seedIDs[id]
	return ok
}

func (s *Store) reindexLocked() {
	s.index = make(map[int64]int, len(s.events))
	for i, e := range s.events {
		s.index[e.ID] = i
	}
}

func (s *Store) isStaticLocked(e Event) bool {
	if s.policy == PolicySeedMembership {
		_, ok := s.seedIDs[e.ID]
		return ok
	}
	return e.Static
}

// IsStatic reports whether e is protected under the store's policy.
func (s *Store) IsStatic(e Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isStaticLocked(e)
}

// IsPast reports whether date is before today.
func (s *Store) IsPast(date DateKey) bool {
	return s.isPast(date)
}

func (s *Store) isPast(date DateKey) bool {
	return date.Before(KeyOf(s.now()))
}

// Today is the store clock's current day.
func (s *Store) Today() DateKey {
	return KeyOf(s.now())
}

// QueryByDate returns the events of date in insertion order.
func (s *Store) QueryByDate(date DateKey) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// QueryRange returns events with from <= date <= to in insertion order.
func (s *Store) QueryRange(from, to DateKey) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if !e.Date.Before(from) && !to.Before(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Events returns a copy of every event.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) Get(id int64) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return Event{}, notFoundError(id)
	}
	return s.events[idx], nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
