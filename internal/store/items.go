package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/zanvidmar/lostfound/internal/model"
)

// Items is the item store: an ordered JSON array rewritten in full on every
// change, plus a sidecar counter file so ids of deleted items are never
// reused.
type Items struct {
	fs *FS
	mu sync.Mutex
}

// NewItems returns an item store backed by fs.
func NewItems(fs *FS) *Items {
	return &Items{fs: fs}
}

// LoadAll returns every item in insertion order, oldest first.
func (s *Items) LoadAll() ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SaveAll replaces the persisted collection with items, in the order given.
func (s *Items) SaveAll(items []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(items)
}

// NextID returns the id the next appended item will receive.
func (s *Items) NextID(items []model.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID(items)
}

// Append assigns the next id to item, persists the grown collection and the
// advanced counter, and returns the stored item. The whole read-modify-write
// runs under the store mutex.
func (s *Items) Append(item model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return model.Item{}, err
	}
	id, err := s.nextID(items)
	if err != nil {
		return model.Item{}, err
	}

	item.ID = id
	if err := s.save(append(items, item)); err != nil {
		return model.Item{}, err
	}
	if err := s.setCounter(id + 1); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Mutate runs fn over the freshly loaded collection and persists whatever it
// returns, all under the store mutex. An error from fn aborts the cycle
// without writing.
func (s *Items) Mutate(fn func(items []model.Item) ([]model.Item, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return s.save(updated)
}

// DeleteByID returns items without the record identified by id, preserving
// relative order. The boolean reports whether the id was present. The caller
// persists the result.
func DeleteByID(items []model.Item, id int) ([]model.Item, bool) {
	kept := make([]model.Item, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, found
}

func (s *Items) load() ([]model.Item, error) {
	var items []model.Item
	if err := s.fs.readJSON(s.fs.ItemsPath(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Items) save(items []model.Item) error {
	if items == nil {
		items = []model.Item{} // keep the empty collection encoded as []
	}
	return s.fs.writeJSON(s.fs.ItemsPath(), items)
}

// nextID reads the persisted counter. When the counter file is missing, as
// in data directories written before it existed, the counter is seeded from
// the highest stored id so deletions never free up an id for reuse.
func (s *Items) nextID(items []model.Item) (int, error) {
	data, err := os.ReadFile(s.fs.counterPath())
	if os.IsNotExist(err) {
		highest := 0
		for _, item := range items {
			if item.ID > highest {
				highest = item.ID
			}
		}
		return highest + 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading id counter: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing id counter: %w", err)
	}
	return n, nil
}

func (s *Items) setCounter(next int) error {
	if err := replaceFile(s.fs.counterPath(), []byte(strconv.Itoa(next)+"\n")); err != nil {
		return fmt.Errorf("advancing id counter: %w", err)
	}
	return nil
}
