package model

import "fmt"

// ItemType says whether a report is about something lost or something found.
type ItemType string

const (
	TypeLost  ItemType = "Lost"
	TypeFound ItemType = "Found"

	// TypeAll is a filter value only, never stored on an item.
	TypeAll ItemType = "All"
)

// Item statuses.
const (
	StatusActive   = "Active"
	StatusResolved = "Resolved"
)

// Item is a single lost-or-found report. JSON field names match the on-disk
// items.json layout, which existing data directories depend on. ImagePath is
// nil for reports posted without a photo.
type Item struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Type        ItemType `json:"type"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	ImagePath   *string  `json:"image_path"`
	Owner       string   `json:"owner"`
	Status      string   `json:"status"`
}

// Validate checks the fields every new report must carry.
func (i *Item) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidItem)
	}
	if i.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidItem)
	}
	if i.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidItem)
	}
	if i.Type != TypeLost && i.Type != TypeFound {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalidItem, TypeLost, TypeFound)
	}
	return nil
}
