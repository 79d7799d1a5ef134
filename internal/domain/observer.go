package domain

// ChangeKind identifies which mutation produced a Change
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeFavoriteToggled
	ChangeWatchedToggled
	ChangeFilter
	ChangeDraft
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeFavoriteToggled:
		return "favorite"
	case ChangeWatchedToggled:
		return "watched"
	case ChangeFilter:
		return "filter"
	case ChangeDraft:
		return "draft"
	default:
		return "unknown"
	}
}

// Change describes a single store mutation.
type Change struct {
	Kind   ChangeKind
	Item   *Item      // Affected item (nil for filter and draft changes)
	Filter FilterMode // Filter mode after the change
}

// Observer receives store changes.
type Observer interface {
	OnChange(change Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

func (f ObserverFunc) OnChange(change Change) { f(change) }
