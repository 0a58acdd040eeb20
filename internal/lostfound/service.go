// Package lostfound wires the stores and the query engine into the single
// surface a presentation layer calls: registration, single-shot credential
// checks, contact lookup, and posting, listing, filtering, resolving and
// deleting reports.
package lostfound

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zanvidmar/lostfound/internal/imaging"
	"github.com/zanvidmar/lostfound/internal/model"
	"github.com/zanvidmar/lostfound/internal/query"
	"github.com/zanvidmar/lostfound/internal/store"
)

// Service is the core's caller-facing surface. All state lives in files
// under the injected data directory; Service itself holds no report or
// session state.
type Service struct {
	fs     *store.FS
	users  *store.Users
	items  *store.Items
	assets *store.Assets
	log    zerolog.Logger
}

// New builds a Service rooted at dataDir. The storage skeleton is created
// lazily by the stores, so New never touches the disk.
func New(dataDir string, log zerolog.Logger) *Service {
	fs := store.NewFS(dataDir)
	return &Service{
		fs:     fs,
		users:  store.NewUsers(fs),
		items:  store.NewItems(fs),
		assets: store.NewAssets(fs),
		log:    log,
	}
}

// Init creates the storage skeleton. The stores also do this lazily; the CLI
// exposes it so a shared data directory can be prepared ahead of first use.
func (s *Service) Init() error {
	return s.fs.EnsureInitialized()
}

// Register creates a new account. Duplicate usernames fail with
// model.ErrAlreadyExists.
func (s *Service) Register(username, password, contactInfo string) error {
	if err := s.users.Register(username, password, contactInfo); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

// Authenticate runs a single-shot credential check. No session state is
// created or kept.
func (s *Service) Authenticate(username, password string) (bool, error) {
	return s.users.Authenticate(username, password)
}

// GetContact returns the poster's contact details, or the "No contact info"
// sentinel for unknown usernames.
func (s *Service) GetContact(username string) (string, error) {
	return s.users.Contact(username)
}

// ListItems returns every report in insertion order, oldest first.
func (s *Service) ListItems() ([]model.Item, error) {
	return s.items.LoadAll()
}

// FilterItems narrows items by search term and type and returns the matches
// newest first, the order listings are displayed in.
func (s *Service) FilterItems(items []model.Item, searchTerm string, typeFilter model.ItemType) []model.Item {
	return query.DisplayOrder(query.Filter(items, searchTerm, typeFilter))
}

// ItemsByOwner returns the reports posted by owner, oldest first.
func (s *Service) ItemsByOwner(owner string) ([]model.Item, error) {
	items, err := s.items.LoadAll()
	if err != nil {
		return nil, err
	}
	return query.OwnedBy(items, owner), nil
}

// NewItem carries the fields of a report being posted.
type NewItem struct {
	Title       string
	Type        model.ItemType
	Description string
	Location    string

	// Date is the calendar date the item was lost or found, as YYYY-MM-DD.
	// Empty means today.
	Date string

	// ImageContent is the optional uploaded photo; ImageFilename supplies
	// the extension for the stored asset name.
	ImageContent  []byte
	ImageFilename string

	Owner string
}

// PostItem validates and persists a new report, returning it with its
// assigned id. A photo, when present, must be a JPEG or PNG: the original
// bytes become the report's asset and a thumbnail is rendered next to it.
func (s *Service) PostItem(p NewItem) (model.Item, error) {
	item := model.Item{
		Title:       p.Title,
		Type:        p.Type,
		Description: p.Description,
		Location:    p.Location,
		Date:        p.Date,
		Owner:       p.Owner,
		Status:      model.StatusActive,
	}
	if item.Date == "" {
		item.Date = time.Now().Format("2006-01-02")
	}
	if err := item.Validate(); err != nil {
		return model.Item{}, err
	}

	if len(p.ImageContent) > 0 {
		if _, err := imaging.Validate(p.ImageContent); err != nil {
			return model.Item{}, fmt.Errorf("%w: %v", model.ErrInvalidItem, err)
		}
		path, err := s.assets.Store(p.ImageContent, p.ImageFilename)
		if err != nil {
			return model.Item{}, err
		}
		item.ImagePath = &path
		s.storeThumbnail(path, p.ImageContent)
	}

	stored, err := s.items.Append(item)
	if err != nil {
		return model.Item{}, err
	}

	s.log.Info().
		Int("id", stored.ID).
		Str("type", string(stored.Type)).
		Str("owner", stored.Owner).
		Msg("item posted")
	return stored, nil
}

// storeThumbnail renders and stores a thumbnail for the asset at path. A
// report is usable without its thumbnail, so failures are logged and the
// post goes through.
func (s *Service) storeThumbnail(path string, content []byte) {
	thumb, err := imaging.Thumbnail(content)
	if err != nil {
		s.log.Warn().Err(err).Str("asset", path).Msg("thumbnail not rendered")
		return
	}
	if _, err := s.assets.StoreThumbnail(path, thumb); err != nil {
		s.log.Warn().Err(err).Str("asset", path).Msg("thumbnail not stored")
	}
}

// DeleteItem removes the report with the given id. actingUser must be the
// report's owner, or the call fails with model.ErrForbidden. When the report
// held the last reference to its photo the asset is garbage-collected; a
// failed cleanup is logged, never returned, since the report is already gone.
func (s *Service) DeleteItem(id int, actingUser string) error {
	var orphaned string
	err := s.items.Mutate(func(items []model.Item) ([]model.Item, error) {
		target, ok := findByID(items, id)
		if !ok {
			return nil, fmt.Errorf("deleting item %d: %w", id, model.ErrNotFound)
		}
		if target.Owner != actingUser {
			return nil, fmt.Errorf("deleting item %d: %w", id, model.ErrForbidden)
		}

		kept, _ := store.DeleteByID(items, id)
		if target.ImagePath != nil && !referencesAsset(kept, *target.ImagePath) {
			orphaned = *target.ImagePath
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	if orphaned != "" {
		if err := s.assets.Remove(orphaned); err != nil {
			s.log.Warn().Err(err).Str("asset", orphaned).Msg("orphaned asset not removed")
		}
	}

	s.log.Info().Int("id", id).Str("owner", actingUser).Msg("item deleted")
	return nil
}

// MarkResolved transitions a report to the Resolved status, with the same
// ownership contract as DeleteItem. Resolving an already resolved report is
// a no-op that still rewrites the collection.
func (s *Service) MarkResolved(id int, actingUser string) error {
	err := s.items.Mutate(func(items []model.Item) ([]model.Item, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].Owner != actingUser {
				return nil, fmt.Errorf("resolving item %d: %w", id, model.ErrForbidden)
			}
			items[i].Status = model.StatusResolved
			return items, nil
		}
		return nil, fmt.Errorf("resolving item %d: %w", id, model.ErrNotFound)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("id", id).Str("owner", actingUser).Msg("item resolved")
	return nil
}

func findByID(items []model.Item, id int) (model.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}

func referencesAsset(items []model.Item, path string) bool {
	for _, item := range items {
		if item.ImagePath != nil && *item.ImagePath == path {
			return true
		}
	}
	return false
}
