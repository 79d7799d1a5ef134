package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Item is a single watch list entry.
// Title is fixed at creation. The flags are atomic so the TUI can read them
// while another goroutine toggles through watchlist.Store. Items must not
// be copied.
type Item struct {
	ID      string    // Generated per instance, never reused
	AddedAt time.Time // When the item entered the list

	title    string
	favorite atomic.Bool
	watched  atomic.Bool
}

// NewItem creates an item with a fresh ID
func NewItem(title string, favorite bool, addedAt time.Time) *Item {
	item := &Item{
		ID:      uuid.NewString(),
		AddedAt: addedAt,
		title:   title,
	}
	item.favorite.Store(favorite)
	return item
}

// Title returns the display title
func (i *Item) Title() string { return i.title }

// IsFavorite reports whether the item is starred
func (i *Item) IsFavorite() bool { return i.favorite.Load() }

// IsWatched reports whether the item has been seen
func (i *Item) IsWatched() bool { return i.watched.Load() }

// FlipFavorite inverts the favorite flag and returns the new value.
// Use watchlist.Store.ToggleFavorite so observers hear about it.
func (i *Item) FlipFavorite() bool { return flip(&i.favorite) }

// FlipWatched inverts the watched flag and returns the new value.
func (i *Item) FlipWatched() bool { return flip(&i.watched) }

func flip(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// FilterValue returns the string used for fuzzy filtering
func (i *Item) FilterValue() string { return i.title }

// FilterMode restricts which items are visible
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterFavorites
	FilterWatched
)

// filterModeCount is the number of modes in the cycle
const filterModeCount = 3

// Next returns the following mode in the cycle All → Favorites → Watched → All
func (f FilterMode) Next() FilterMode {
	return (f + 1) % filterModeCount
}

// Valid reports whether f is a known mode
func (f FilterMode) Valid() bool {
	return f >= FilterAll && f < filterModeCount
}

// String returns the config name of the mode
func (f FilterMode) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterFavorites:
		return "favorites"
	case FilterWatched:
		return "watched"
	default:
		return "unknown"
	}
}

// Label returns the text shown on the filter button
func (f FilterMode) Label() string {
	switch f {
	case FilterFavorites:
		return "Mostrar Favoritos"
	case FilterWatched:
		return "Mostrar Já Vistos"
	default:
		return "Mostrar Todos"
	}
}

// Matches reports whether item belongs in the view for this mode
func (f FilterMode) Matches(item *Item) bool {
	switch f {
	case FilterFavorites:
		return item.IsFavorite()
	case FilterWatched:
		return item.IsWatched()
	default:
		return true
	}
}

// ParseFilterMode converts a config name into a FilterMode
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "all", "":
		return FilterAll, nil
	case "favorites":
		return FilterFavorites, nil
	case "watched":
		return FilterWatched, nil
	default:
		return FilterAll, ErrInvalidFilter
	}
}
