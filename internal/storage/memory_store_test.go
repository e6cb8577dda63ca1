package storage

import "testing"

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	type payload struct {
		Token string `json:"token"`
	}
	if err := store.Set("session", payload{Token: "t-1"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got payload
	ok, err := store.Get("session", &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || got.Token != "t-1" {
		t.Fatalf("unexpected value: ok=%v got=%+v", ok, got)
	}

	if err := store.Remove("session"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if ok, _ := store.Get("session", &got); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryStoreSerializesThroughJSON(t *testing.T) {
	store := NewMemoryStore()

	in := map[string]int{"a": 1}
	if err := store.Set("m", in); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	in["a"] = 99 // mutating the original must not affect the stored copy

	var out map[string]int
	if _, err := store.Get("m", &out); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if out["a"] != 1 {
		t.Fatalf("stored value aliased caller memory: %v", out)
	}
}
