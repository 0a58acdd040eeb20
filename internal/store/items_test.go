package store

import (
	"errors"
	"testing"

	"github.com/zanvidmar/lostfound/internal/model"
)

func testItem(title string) model.Item {
	return model.Item{
		Title:       title,
		Type:        model.TypeLost,
		Description: "description",
		Location:    "somewhere",
		Date:        "2026-08-29",
		Status:      model.StatusActive,
		Owner:       "alice",
	}
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	items := NewItems(newTestFS(t))

	for i, title := range []string{"first", "second", "third"} {
		stored, err := items.Append(testItem(title))
		if err != nil {
			t.Fatalf("Append %q: %v", title, err)
		}
		if stored.ID != i+1 {
			t.Errorf("expected id %d, got %d", i+1, stored.ID)
		}
	}

	all, err := items.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
	for i, item := range all {
		if item.ID != i+1 {
			t.Errorf("position %d: expected insertion order, got id %d", i, item.ID)
		}
	}
}

func TestLoadAllEmpty(t *testing.T) {
	items := NewItems(newTestFS(t))

	all, err := items.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty collection, got %d items", len(all))
	}
}

func TestDeleteByID(t *testing.T) {
	collection := []model.Item{{ID: 1}, {ID: 2}, {ID: 3}}

	kept, found := DeleteByID(collection, 2)
	if !found {
		t.Fatal("expected id 2 to be found")
	}
	if len(kept) != 2 || kept[0].ID != 1 || kept[1].ID != 3 {
		t.Errorf("expected {1,3} in order, got %v", kept)
	}

	_, found = DeleteByID(collection, 42)
	if found {
		t.Error("expected id 42 to be missing")
	}
}

func TestIDsNotReusedAfterDeletion(t *testing.T) {
	items := NewItems(newTestFS(t))

	for _, title := range []string{"a", "b", "c"} {
		if _, err := items.Append(testItem(title)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	err := items.Mutate(func(all []model.Item) ([]model.Item, error) {
		kept, found := DeleteByID(all, 3)
		if !found {
			return nil, errors.New("id 3 missing")
		}
		return kept, nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	// With len+1 ids this would collide with the surviving records' history.
	stored, err := items.Append(testItem("d"))
	if err != nil {
		t.Fatalf("Append after delete: %v", err)
	}
	if stored.ID != 4 {
		t.Errorf("expected id 4 after deleting id 3, got %d", stored.ID)
	}
}

func TestNextIDSeededFromExistingData(t *testing.T) {
	fs := newTestFS(t)
	items := NewItems(fs)

	// A pre-counter data directory: items exist but no counter file.
	seed := []model.Item{{ID: 1, Title: "a"}, {ID: 5, Title: "gap"}}
	if err := items.SaveAll(seed); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	next, err := items.NextID(seed)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if next != 6 {
		t.Errorf("expected counter seeded past highest id, got %d", next)
	}
}

func TestMutateAbortsWithoutWriting(t *testing.T) {
	items := NewItems(newTestFS(t))
	if _, err := items.Append(testItem("keep me")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	wantErr := errors.New("abort")
	err := items.Mutate(func(all []model.Item) ([]model.Item, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected abort error, got %v", err)
	}

	all, err := items.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 || all[0].Title != "keep me" {
		t.Errorf("expected collection untouched after aborted Mutate, got %v", all)
	}
}

func TestSaveAllRoundTrip(t *testing.T) {
	items := NewItems(newTestFS(t))

	path := "data/images/20260829120000_deadbeef.png"
	in := []model.Item{
		{ID: 1, Title: "Blue Wallet", Type: model.TypeLost, Description: "leather", Location: "Bus 14", Date: "2026-08-20", Owner: "alice", Status: model.StatusActive},
		{ID: 2, Title: "Umbrella", Type: model.TypeFound, Description: "black, broken rib", Location: "Library", Date: "2026-08-21", ImagePath: &path, Owner: "bob", Status: model.StatusResolved},
	}
	if err := items.SaveAll(in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	out, err := items.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].ImagePath != nil {
		t.Error("expected nil image path to survive the round trip")
	}
	if out[1].ImagePath == nil || *out[1].ImagePath != path {
		t.Errorf("expected image path %q, got %v", path, out[1].ImagePath)
	}
	if out[1].Status != model.StatusResolved {
		t.Errorf("expected resolved status to survive, got %q", out[1].Status)
	}
}
