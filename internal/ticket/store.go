package ticket

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/storage"
	"ticketflowapp/ticketflow/internal/validate"
)

var ErrNotFound = errors.New("ticket not found")

const ticketsKey = "ticketapp_tickets"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Ticket struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

// Input carries the mutable fields of a ticket. Having no ID makes the
// create/update distinction a type-level property.
type Input struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

type Store struct {
	kv      storage.Store
	nowFunc func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewStore(kv storage.Store) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Store{kv: kv, nowFunc: time.Now}, nil
}

// List returns the full collection in insertion order.
func (s *Store) List() ([]Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Stats summarizes the collection for the dashboard view.
type Stats struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
}

func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case StatusOpen:
			st.Open++
		case StatusInProgress:
			st.InProgress++
		case StatusClosed:
			st.Closed++
		}
	}
	return st, nil
}

// Validate checks an input without touching the collection. A nil result
// means the input is acceptable. Priority is not re-validated here; it is
// always supplied from a constrained set and defaults to medium.
func (s *Store) Validate(in Input) feedback.FieldErrors {
	errs := feedback.FieldErrors{}
	if !validate.IsNonEmpty(in.Title) {
		errs["title"] = "Title is required"
	}
	if !validate.IsKnownStatus(in.Status) {
		errs["status"] = "Status must be open, in_progress, or closed"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create validates the input, assigns a fresh unique ID, appends the ticket,
// and persists the whole collection.
func (s *Store) Create(in Input) (Ticket, error) {
	if errs := s.Validate(in); errs != nil {
		return Ticket{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return Ticket{}, err
	}

	t := Ticket{
		ID:          s.nextIDLocked(tickets),
		Title:       in.Title,
		Description: in.Description,
		Status:      Status(in.Status),
		Priority:    priorityOrDefault(in.Priority),
	}
	tickets = append(tickets, t)
	if err := s.kv.Set(ticketsKey, tickets); err != nil {
		return Ticket{}, fmt.Errorf("persist tickets: %w", err)
	}
	return t, nil
}

// Update replaces every mutable field of the ticket with the given id,
// keeping its position in the collection. Returns ErrNotFound when no such
// ticket exists.
func (s *Store) Update(id int64, in Input) (Ticket, error) {
	if errs := s.Validate(in); errs != nil {
		return Ticket{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return Ticket{}, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		tickets[i].Title = in.Title
		tickets[i].Description = in.Description
		tickets[i].Status = Status(in.Status)
		tickets[i].Priority = priorityOrDefault(in.Priority)
		if err := s.kv.Set(ticketsKey, tickets); err != nil {
			return Ticket{}, fmt.Errorf("persist tickets: %w", err)
		}
		return tickets[i], nil
	}
	return Ticket{}, ErrNotFound
}

// Delete removes the ticket with the given id. Deleting an absent id is a
// no-op, not an error; the resulting collection is persisted either way.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return err
	}
	out := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.ID != id {
			out = append(out, t)
		}
	}
	if err := s.kv.Set(ticketsKey, out); err != nil {
		return fmt.Errorf("persist tickets: %w", err)
	}
	return nil
}

func (s *Store) load() ([]Ticket, error) {
	var tickets []Ticket
	if _, err := s.kv.Get(ticketsKey, &tickets); err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	return tickets, nil
}

// nextIDLocked derives an ID from the creation instant but never reuses or
// goes below an existing one, so same-millisecond creations stay unique.
func (s *Store) nextIDLocked(existing []Ticket) int64 {
	id := s.nowFunc().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for _, t := range existing {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	s.lastID = id
	return id
}

func priorityOrDefault(p string) Priority {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(p)
	default:
		return PriorityMedium
	}
}
