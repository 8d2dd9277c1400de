package store

import (
	"testing"

	"plantpulse/internal/plant"
)

func TestUpsertAndGet(t *testing.T) {
	r := NewRecords()

	r.Upsert(plant.Plant{ID: "p1", Name: "Fern"})
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	got, ok := r.GetByID("p1")
	if !ok {
		t.Fatal("record should exist")
	}
	if got.Name != "Fern" {
		t.Fatalf("Name = %q", got.Name)
	}
}

func TestUpsertReplaces(t *testing.T) {
	r := NewRecords()

	r.Upsert(plant.Plant{ID: "p1", Name: "Fern"})
	r.Upsert(plant.Plant{ID: "p1", Name: "Boston Fern"})

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	got, _ := r.GetByID("p1")
	if got.Name != "Boston Fern" {
		t.Fatalf("Name = %q, want Boston Fern", got.Name)
	}
}

func TestUpsertEmptyIDIgnored(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{Name: "no id"})
	if r.Len() != 0 {
		t.Fatal("record without ID should not be stored")
	}
}

func TestRemove(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "p1", Name: "Fern"})

	r.Remove("p1")
	if r.Len() != 0 {
		t.Fatal("record should be gone")
	}
	if _, ok := r.GetByID("p1"); ok {
		t.Fatal("GetByID should miss after remove")
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	r := NewRecords()

	notified := 0
	unsub := r.Subscribe(func() { notified++ })
	defer unsub()

	r.Remove("ghost")
	if notified != 0 {
		t.Fatal("removing an absent record should not notify")
	}
}

func TestReplaceAll(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "old", Name: "Old"})

	r.ReplaceAll([]plant.Plant{
		{ID: "p1", Name: "Fern"},
		{ID: "p2", Name: "Palm"},
	})

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if _, ok := r.GetByID("old"); ok {
		t.Fatal("old record should be replaced away")
	}
}

func TestReplaceAllPreservesLocalVersion(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "p1", Name: "Local Edit"})

	// The fetched list carries a stale copy of p1.
	r.ReplaceAll([]plant.Plant{
		{ID: "p1", Name: "Stale"},
		{ID: "p2", Name: "Palm"},
	}, "p1")

	got, _ := r.GetByID("p1")
	if got.Name != "Local Edit" {
		t.Fatalf("Name = %q, want the preserved local version", got.Name)
	}
	if _, ok := r.GetByID("p2"); !ok {
		t.Fatal("non-preserved records should come from the list")
	}
}

func TestReplaceAllPreserveOfDeletedRecord(t *testing.T) {
	r := NewRecords()

	// p1 was deleted locally while the fetch was in flight; the fetched
	// list still carries it. The local delete wins.
	r.ReplaceAll([]plant.Plant{{ID: "p1", Name: "Fern"}}, "p1")

	if _, ok := r.GetByID("p1"); ok {
		t.Fatal("preserved-but-absent record should stay deleted")
	}
}

func TestReplaceAllFuncKeepsLocalVersion(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "p1", Name: "Local Edit"})

	r.ReplaceAllFunc([]plant.Plant{
		{ID: "p1", Name: "Stale"},
		{ID: "p2", Name: "Palm"},
	}, func(id string) bool { return id == "p1" })

	got, _ := r.GetByID("p1")
	if got.Name != "Local Edit" {
		t.Fatalf("Name = %q, want the kept local version", got.Name)
	}
	if _, ok := r.GetByID("p2"); !ok {
		t.Fatal("non-kept records should come from the list")
	}
}

func TestReplaceAllFuncKeepsLocalAbsence(t *testing.T) {
	r := NewRecords()

	r.ReplaceAllFunc([]plant.Plant{{ID: "p1", Name: "Fern"}},
		func(id string) bool { return id == "p1" })

	if _, ok := r.GetByID("p1"); ok {
		t.Fatal("a kept id absent locally should stay absent")
	}
}

func TestReplaceAllFuncKeepsLocalOnlyRecord(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "new", Name: "Monstera"})

	// The fetched list predates the local record entirely.
	r.ReplaceAllFunc([]plant.Plant{{ID: "p1", Name: "Fern"}},
		func(id string) bool { return id == "new" })

	if _, ok := r.GetByID("new"); !ok {
		t.Fatal("a kept record missing from the list should survive the swap")
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}

func TestReplaceAllFuncNilKeep(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "old", Name: "Old"})

	r.ReplaceAllFunc([]plant.Plant{{ID: "p1", Name: "Fern"}}, nil)

	if _, ok := r.GetByID("old"); ok {
		t.Fatal("nil keep should swap everything")
	}
}

func TestGetAllIsACopy(t *testing.T) {
	r := NewRecords()
	r.Upsert(plant.Plant{ID: "p1", Name: "Fern"})

	snapshot := r.GetAll()
	snapshot[0].Name = "Mutated"

	got, _ := r.GetByID("p1")
	if got.Name != "Fern" {
		t.Fatal("mutating a snapshot must not touch the store")
	}
}

func TestSubscribeNotifies(t *testing.T) {
	r := NewRecords()

	notified := 0
	unsub := r.Subscribe(func() { notified++ })

	r.Upsert(plant.Plant{ID: "p1"})
	r.Remove("p1")
	r.ReplaceAll(nil)

	if notified != 3 {
		t.Fatalf("notified = %d, want 3", notified)
	}

	unsub()
	r.Upsert(plant.Plant{ID: "p2"})
	if notified != 3 {
		t.Fatal("unsubscribed listener should not fire")
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	r := NewRecords()

	var seen int
	unsub := r.Subscribe(func() { seen = r.Len() })
	defer unsub()

	r.Upsert(plant.Plant{ID: "p1"})
	if seen != 1 {
		t.Fatalf("listener read Len = %d, want 1", seen)
	}
}
