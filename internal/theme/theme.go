// Package theme tracks the active site theme, persists the choice and
// keeps exactly one theme style-sheet link in the document head.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/angple/internal/kv"
	"github.com/existflow/angple/internal/logger"
)

// StorageKey is where the selected theme id is persisted
const StorageKey = "damoang-theme"

// Theme ids
const (
	Default = "default"
	Modern  = "modern"
	Classic = "classic"
)

// ErrInvalidTheme is returned for ids outside the closed set
var ErrInvalidTheme = errors.New("invalid theme")

// Theme describes one selectable theme
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Version     string `json:"version"`
	Preview     string `json:"preview"`
}

var themes = []Theme{
	{ID: Default, Name: "Default theme", Description: "The standard Damoang look", Author: "Damoang Team", Version: "1.0.0", Preview: "/themes/default/preview.jpg"},
	{ID: Modern, Name: "Modern theme", Description: "Clean, contemporary design", Author: "Damoang Team", Version: "1.0.0", Preview: "/themes/modern/preview.jpg"},
	{ID: Classic, Name: "Classic theme", Description: "Traditional bulletin board style", Author: "Damoang Team", Version: "1.0.0", Preview: "/themes/classic/preview.jpg"},
}

// Available lists every theme
func Available() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// IsValid reports whether id names a known theme
func IsValid(id string) bool {
	_, ok := lookup(id)
	return ok
}

func lookup(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// DetectSystemTheme maps the OS colour-scheme preference to a theme id
func DetectSystemTheme(prefersDark bool) string {
	if prefersDark {
		return Modern
	}
	return Default
}

// Store holds the active theme
type Store struct {
	kv   kv.Store
	head Head
	log  *logger.Logger

	mu        sync.Mutex
	current   string
	listeners []func(Theme)
}

// NewStore creates a store with the default theme active. Call Init to
// restore a persisted choice.
func NewStore(store kv.Store, head Head) *Store {
	if head == nil {
		head = NewMemoryHead()
	}
	return &Store{
		kv:      store,
		head:    head,
		log:     logger.WithFields(logger.F("component", "theme")),
		current: Default,
	}
}

// Init switches to the persisted theme when it is valid. Invalid or
// missing values leave the default in place.
func (s *Store) Init(ctx context.Context) error {
	saved, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok || !IsValid(saved) {
		return nil
	}
	return s.Switch(ctx, saved)
}

// Switch activates id. Unknown ids are rejected with ErrInvalidTheme and
// the active theme stays as it was.
func (s *Store) Switch(ctx context.Context, id string) error {
	t, ok := lookup(id)
	if !ok {
		s.log.Warn("Rejected theme", logger.F("theme", id))
		return fmt.Errorf("%w: %q", ErrInvalidTheme, id)
	}

	s.mu.Lock()
	s.head.RemoveByIDPrefix(LinkIDPrefix)
	if err := s.head.Append(LinkFor(id)); err != nil {
		// put the previous sheet back so the head matches Current
		if restoreErr := s.head.Append(LinkFor(s.current)); restoreErr != nil {
			s.log.Error("Failed to restore theme link", logger.F("theme", s.current), logger.F("error", restoreErr))
		}
		s.mu.Unlock()
		return fmt.Errorf("failed to load theme %s: %w", id, err)
	}
	s.current = id
	listeners := append([]func(Theme){}, s.listeners...)
	s.mu.Unlock()

	if err := s.kv.Set(ctx, StorageKey, id); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	for _, fn := range listeners {
		fn(t)
	}
	s.log.Info("Theme switched", logger.F("theme", id))
	return nil
}

// Current returns the active theme
func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, _ := lookup(s.current)
	return t
}

// Subscribe registers fn to run after every successful switch
func (s *Store) Subscribe(fn func(Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Next returns the theme id after the active one, wrapping around
func (s *Store) Next() string {
	cur := s.Current().ID
	for i, t := range themes {
		if t.ID == cur {
			return themes[(i+1)%len(themes)].ID
		}
	}
	return Default
}
