package ticket

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/storage"
)

// failingStore delegates to a working store until fail is flipped,
// after which every write reports the backend as unavailable.
type failingStore struct {
	storage.Store
	fail bool
}

func (s *failingStore) Set(key string, value any) error {
	if s.fail {
		return fmt.Errorf("%w: disk full", storage.ErrUnavailable)
	}
	return s.Store.Set(key, value)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(Input{Title: "Fix login", Status: "open"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected a non-zero id")
	}
	if created.Status != StatusOpen {
		t.Fatalf("expected status open, got %q", created.Status)
	}
	if created.Priority != PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", created.Priority)
	}
}

func TestCreateEmptyTitleRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(Input{Title: "   ", Status: "open"})
	var fieldErrs feedback.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["title"] != "Title is required" {
		t.Fatalf("unexpected title message: %q", fieldErrs["title"])
	}

	tickets, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected collection unchanged, got %d tickets", len(tickets))
	}
}

func TestCreateUnknownStatusRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(Input{Title: "Fix login", Status: "done"})
	var fieldErrs feedback.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["status"] != "Status must be open, in_progress, or closed" {
		t.Fatalf("unexpected status message: %q", fieldErrs["status"])
	}
}

func TestIDsUniqueUnderFrozenClock(t *testing.T) {
	s := newTestStore(t)
	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return frozen }

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		created, err := s.Create(Input{Title: "Same instant", Status: "open"})
		if err != nil {
			t.Fatalf("Create() #%d error: %v", i, err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %d under frozen clock", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestUpdateChangesOnlyTargetTicket(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.Create(Input{Title: "First", Status: "open"})
	second, _ := s.Create(Input{Title: "Second", Status: "open"})
	third, _ := s.Create(Input{Title: "Third", Status: "open", Priority: "high"})

	updated, err := s.Update(second.ID, Input{
		Title:       "Second (urgent)",
		Description: "escalated",
		Status:      "in_progress",
		Priority:    "high",
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.ID != second.ID {
		t.Fatalf("update changed the id: %d -> %d", second.ID, updated.ID)
	}
	if updated.Status != StatusInProgress || updated.Priority != PriorityHigh {
		t.Fatalf("unexpected updated ticket: %+v", updated)
	}

	tickets, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
	if !reflect.DeepEqual(tickets[0], first) || !reflect.DeepEqual(tickets[2], third) {
		t.Fatalf("update disturbed other tickets: %+v", tickets)
	}
	if !reflect.DeepEqual(tickets[1], updated) {
		t.Fatalf("updated ticket lost its position: %+v", tickets)
	}
}

func TestUpdateMissingTicket(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(12345, Input{Title: "Ghost", Status: "open"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	keep, _ := s.Create(Input{Title: "Keep", Status: "open"})
	gone, _ := s.Create(Input{Title: "Gone", Status: "open"})

	if err := s.Delete(gone.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	tickets, _ := s.List()
	for _, tk := range tickets {
		if tk.ID == gone.ID {
			t.Fatalf("deleted ticket still listed: %+v", tickets)
		}
	}
	if len(tickets) != 1 || tickets[0].ID != keep.ID {
		t.Fatalf("unexpected collection after delete: %+v", tickets)
	}

	// Deleting an absent id leaves the collection as is.
	if err := s.Delete(gone.ID); err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
	again, _ := s.List()
	if !reflect.DeepEqual(again, tickets) {
		t.Fatalf("no-op delete changed the collection: %+v", again)
	}
}

func TestTicketsPersistAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	kv, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	s, _ := NewStore(kv)

	var want []Ticket
	for _, title := range []string{"One", "Two", "Three"} {
		created, err := s.Create(Input{Title: title, Status: "open"})
		if err != nil {
			t.Fatalf("Create(%s) error: %v", title, err)
		}
		want = append(want, created)
	}

	kv2, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() second error: %v", err)
	}
	s2, _ := NewStore(kv2)
	got, err := s2.List()
	if err != nil {
		t.Fatalf("List() after reload error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded collection differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestMutationsSurfaceUnavailableStorage(t *testing.T) {
	fs := &failingStore{Store: storage.NewMemoryStore()}
	s, err := NewStore(fs)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	seeded, err := s.Create(Input{Title: "Fix login", Status: "open"})
	if err != nil {
		t.Fatalf("seed Create() error: %v", err)
	}

	fs.fail = true

	if _, err := s.Create(Input{Title: "Another", Status: "open"}); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Create, got %v", err)
	}
	if _, err := s.Update(seeded.ID, Input{Title: "Renamed", Status: "closed"}); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Update, got %v", err)
	}
	if err := s.Delete(seeded.ID); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Delete, got %v", err)
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], seeded) {
		t.Fatalf("expected collection unchanged after failed writes, got %+v", got)
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty collection error: %v", err)
	}
	if empty != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", empty)
	}

	for _, status := range []string{"open", "open", "in_progress", "closed"} {
		if _, err := s.Create(Input{Title: "T", Status: status}); err != nil {
			t.Fatalf("Create(%s) error: %v", status, err)
		}
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	want := Stats{Total: 4, Open: 2, InProgress: 1, Closed: 1}
	if stats != want {
		t.Fatalf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	s := newTestStore(t)
	if errs := s.Validate(Input{Title: "Fix login", Status: "closed"}); errs != nil {
		t.Fatalf("expected no field errors, got %v", errs)
	}
}
