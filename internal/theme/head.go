package theme

import (
	"fmt"
	"html"
	"strings"
	"sync"
)

// LinkIDPrefix marks theme style-sheet links
const LinkIDPrefix = "theme-"

// Link is a <link> element in the document head
type Link struct {
	Rel  string
	ID   string
	Href string
}

// LinkFor returns the style-sheet link for a theme id
func LinkFor(id string) Link {
	return Link{
		Rel:  "stylesheet",
		ID:   LinkIDPrefix + id,
		Href: fmt.Sprintf("/themes/%s/theme.css", id),
	}
}

// HTML renders the element
func (l Link) HTML() string {
	return fmt.Sprintf(`<link rel="%s" id="%s" href="%s">`,
		html.EscapeString(l.Rel), html.EscapeString(l.ID), html.EscapeString(l.Href))
}

// Head is the part of a document the store edits
type Head interface {
	RemoveByIDPrefix(prefix string) int
	Append(link Link) error
}

// MemoryHead is an in-process document head
type MemoryHead struct {
	mu    sync.Mutex
	links []Link
}

// NewMemoryHead returns an empty head
func NewMemoryHead() *MemoryHead {
	return &MemoryHead{}
}

// RemoveByIDPrefix drops every link whose id starts with prefix
func (h *MemoryHead) RemoveByIDPrefix(prefix string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.links[:0]
	removed := 0
	for _, l := range h.links {
		if strings.HasPrefix(l.ID, prefix) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	h.links = kept
	return removed
}

// Append adds a link
func (h *MemoryHead) Append(link Link) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.links = append(h.links, link)
	return nil
}

// Links returns a copy of the current links
func (h *MemoryHead) Links() []Link {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Link, len(h.links))
	copy(out, h.links)
	return out
}
