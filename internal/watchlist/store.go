package watchlist

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/watchlist/internal/domain"
)

// seedItems is the list every new store starts with
var seedItems = []struct {
	title    string
	favorite bool
}{
	{"Filme 1", false},
	{"Filme 2", true},
	{"Filme 3", false},
}

// Stats summarizes the list for the footer.
type Stats struct {
	Total     int
	Favorites int
	Watched   int
}

// Store is the single source of truth for the watch list.
// All state lives in memory; observers are notified after every mutation.
type Store struct {
	mu     sync.RWMutex
	items  []*domain.Item
	filter domain.FilterMode
	draft  string

	obsMu     sync.Mutex
	observers map[int]domain.Observer
	nextObsID int

	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInitialFilter starts the store on a filter other than All.
// Invalid modes are ignored.
func WithInitialFilter(mode domain.FilterMode) Option {
	return func(s *Store) {
		if mode.Valid() {
			s.filter = mode
		}
	}
}

// NewStore creates a store holding the seed items.
func NewStore(opts ...Option) *Store {
	s := &Store{
		filter:    domain.FilterAll,
		observers: make(map[int]domain.Observer),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, seed := range seedItems {
		s.items = append(s.items, domain.NewItem(seed.title, seed.favorite, s.now()))
	}

	s.logger.Debug("watch list created", "items", len(s.items), "filter", s.filter.String())
	return s
}

// === Mutations ===

// AddItem appends a new item with the given title.
// While the favorites filter is active the new item starts as a favorite.
// Empty titles are accepted.
func (s *Store) AddItem(title string) *domain.Item {
	s.mu.Lock()
	item := s.addLocked(title)
	filter := s.filter
	s.mu.Unlock()

	s.logger.Info("added item", "id", item.ID, "title", title, "favorite", filter == domain.FilterFavorites)
	s.notify(domain.Change{Kind: domain.ChangeAdded, Item: item, Filter: filter})
	return item
}

// CommitDraft adds the draft title as a new item and clears the draft.
func (s *Store) CommitDraft() *domain.Item {
	s.mu.Lock()
	item := s.addLocked(s.draft)
	s.draft = ""
	filter := s.filter
	s.mu.Unlock()

	s.logger.Info("added item from draft", "id", item.ID, "title", item.Title(), "favorite", filter == domain.FilterFavorites)
	s.notify(domain.Change{Kind: domain.ChangeAdded, Item: item, Filter: filter})
	s.notify(domain.Change{Kind: domain.ChangeDraft, Filter: filter})
	return item
}

func (s *Store) addLocked(title string) *domain.Item {
	item := domain.NewItem(title, s.filter == domain.FilterFavorites, s.now())
	s.items = append(s.items, item)
	return item
}

// RemoveItem removes the given instance from the list.
// Returns false and changes nothing if the item is not present.
func (s *Store) RemoveItem(item *domain.Item) bool {
	if item == nil {
		return false
	}

	s.mu.Lock()
	idx := s.indexLocked(item)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("remove ignored, item not in list", "id", item.ID)
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	filter := s.filter
	s.mu.Unlock()

	s.logger.Info("removed item", "id", item.ID, "title", item.Title())
	s.notify(domain.Change{Kind: domain.ChangeRemoved, Item: item, Filter: filter})
	return true
}

// ToggleFavorite flips the favorite flag of item.
// The flag is flipped even when item is not in the list; the result
// reports membership.
func (s *Store) ToggleFavorite(item *domain.Item) bool {
	return s.toggle(item, domain.ChangeFavoriteToggled)
}

// ToggleWatched flips the watched flag of item, with the same semantics as
// ToggleFavorite.
func (s *Store) ToggleWatched(item *domain.Item) bool {
	return s.toggle(item, domain.ChangeWatchedToggled)
}

func (s *Store) toggle(item *domain.Item, kind domain.ChangeKind) bool {
	if item == nil {
		return false
	}

	s.mu.Lock()
	var value bool
	switch kind {
	case domain.ChangeFavoriteToggled:
		value = item.FlipFavorite()
	case domain.ChangeWatchedToggled:
		value = item.FlipWatched()
	}
	member := s.indexLocked(item) >= 0
	filter := s.filter
	s.mu.Unlock()

	s.logger.Debug("toggled item", "id", item.ID, "flag", kind.String(),
		"value", value, "member", member)
	if member {
		s.notify(domain.Change{Kind: kind, Item: item, Filter: filter})
	}
	return member
}

// CycleFilter advances the filter along All → Favorites → Watched → All
// and returns the new mode.
func (s *Store) CycleFilter() domain.FilterMode {
	s.mu.Lock()
	s.filter = s.filter.Next()
	filter := s.filter
	s.mu.Unlock()

	s.logger.Debug("filter changed", "filter", filter.String())
	s.notify(domain.Change{Kind: domain.ChangeFilter, Filter: filter})
	return filter
}

// SetFilter selects a filter mode directly.
func (s *Store) SetFilter(mode domain.FilterMode) error {
	if !mode.Valid() {
		return domain.ErrInvalidFilter
	}

	s.mu.Lock()
	s.filter = mode
	s.mu.Unlock()

	s.logger.Debug("filter set", "filter", mode.String())
	s.notify(domain.Change{Kind: domain.ChangeFilter, Filter: mode})
	return nil
}

// SetDraftTitle replaces the draft text verbatim.
func (s *Store) SetDraftTitle(text string) {
	s.mu.Lock()
	changed := s.draft != text
	s.draft = text
	filter := s.filter
	s.mu.Unlock()

	if changed {
		s.notify(domain.Change{Kind: domain.ChangeDraft, Filter: filter})
	}
}

// === Reads ===

// VisibleItems returns the items matching the current filter, in list order.
// The slice is freshly built on every call.
func (s *Store) VisibleItems() []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := make([]*domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if s.filter.Matches(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Items returns a copy of the full list in insertion order.
func (s *Store) Items() []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.Item, len(s.items))
	copy(items, s.items)
	return items
}

// ItemByID looks up an item by its ID.
// Returns domain.ErrItemNotFound when no item has that ID.
func (s *Store) ItemByID(id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %q: %w", id, domain.ErrItemNotFound)
}

// Contains reports whether item is in the list.
func (s *Store) Contains(item *domain.Item) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(item) >= 0
}

// Len returns the number of items regardless of filter.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter returns the current filter mode.
func (s *Store) Filter() domain.FilterMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// DraftTitle returns the text of the add-item field.
func (s *Store) DraftTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Stats counts the full list regardless of filter.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.items)}
	for _, item := range s.items {
		if item.IsFavorite() {
			st.Favorites++
		}
		if item.IsWatched() {
			st.Watched++
		}
	}
	return st
}

func (s *Store) indexLocked(item *domain.Item) int {
	for i, it := range s.items {
		if it == item {
			return i
		}
	}
	return -1
}

// === Observers ===

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(obs domain.Observer) func() {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(change domain.Change) {
	s.obsMu.Lock()
	observers := make([]domain.Observer, 0, len(s.observers))
	for id := 0; id < s.nextObsID; id++ {
		if obs, ok := s.observers[id]; ok {
			observers = append(observers, obs)
		}
	}
	s.obsMu.Unlock()

	for _, obs := range observers {
		obs.OnChange(change)
	}
}
