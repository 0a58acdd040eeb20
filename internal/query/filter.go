// Package query implements the predicate filter applied over the item
// collection and the newest-first ordering listings are displayed in.
package query

import (
	"strings"

	"github.com/zanvidmar/lostfound/internal/model"
)

// Filter returns the items matching searchTerm and typeFilter, preserving
// collection order. An item matches when typeFilter is model.TypeAll or
// equals the item's type, and when searchTerm is empty or occurs
// case-insensitively in the title or the description.
func Filter(items []model.Item, searchTerm string, typeFilter model.ItemType) []model.Item {
	term := strings.ToLower(searchTerm)

	var matched []model.Item
	for _, item := range items {
		if typeFilter != model.TypeAll && item.Type != typeFilter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Title), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// DisplayOrder returns a reversed copy of items, so the most recently
// appended report comes first.
func DisplayOrder(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// OwnedBy returns the items posted by owner, preserving collection order.
func OwnedBy(items []model.Item, owner string) []model.Item {
	var matched []model.Item
	for _, item := range items {
		if item.Owner == owner {
			matched = append(matched, item)
		}
	}
	return matched
}
