package navigation

import (
	"github.com/google/uuid"

	"github.com/matzehuels/conductor/pkg/errors"
	"github.com/matzehuels/conductor/pkg/route"
)

// PresentationStyle selects how a modal entry is displayed by the host
// framework.
type PresentationStyle int

const (
	// StyleSheet presents the route as a partial-height sheet.
	StyleSheet PresentationStyle = iota

	// StyleFullScreenCover presents the route covering the whole screen.
	StyleFullScreenCover
)

// String returns the style's scenario/CLI spelling.
func (s PresentationStyle) String() string {
	switch s {
	case StyleSheet:
		return "sheet"
	case StyleFullScreenCover:
		return "cover"
	default:
		return "unknown"
	}
}

// ParseStyle converts a scenario/CLI spelling into a PresentationStyle.
func ParseStyle(s string) (PresentationStyle, error) {
	switch s {
	case "sheet":
		return StyleSheet, nil
	case "cover", "fullscreen", "full_screen_cover":
		return StyleFullScreenCover, nil
	default:
		return StyleSheet, errors.New(errors.ErrCodeInvalidStyle, "unknown presentation style: %q", s)
	}
}

// ModalEntry is one presented overlay: a route, its presentation style, and a
// unique instance identity.
//
// ID is generated fresh for every presentation and never reused, so the
// render layer can tell apart two presentations of the same route value.
type ModalEntry struct {
	ID    string            `json:"id"`
	Route route.Route       `json:"-"`
	Style PresentationStyle `json:"style"`
}

// newModalEntry mints an entry with a fresh instance identity.
func newModalEntry(r route.Route, style PresentationStyle) ModalEntry {
	return ModalEntry{
		ID:    uuid.NewString(),
		Route: r,
		Style: style,
	}
}

// StackChange is delivered to the coordinator's observer after every modal
// stack mutation. Animated is false for the silent intermediate collapse of a
// multi-dismiss, where the host must commit the state without animating.
type StackChange struct {
	Entries  []ModalEntry
	Animated bool
}
