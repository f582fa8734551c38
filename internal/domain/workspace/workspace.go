package workspace

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNoOpener = errors.New("no opener registered for uri")

// Item is anything a pane can show.
type Item interface {
	URI() string
	Title() string
}

// Opener builds the item addressed by uri.
type Opener func(ctx context.Context, uri string) (Item, error)

type OpenOptions struct {
	// SearchAllPanes reuses an item with the same uri from any pane instead of
	// only the active one.
	SearchAllPanes bool
}

// Store persists the pane layout between runs.
type Store interface {
	LoadPanes() ([]PaneState, error)
	SavePanes([]PaneState) error
}

type PaneState struct {
	ID         string   `json:"id"`
	URIs       []string `json:"uris"`
	ActiveURI  string   `json:"active_uri,omitempty"`
	ActivePane bool     `json:"active_pane,omitempty"`
}

type Pane struct {
	ID     string
	items  []Item
	active int
}

func (p *Pane) Items() []Item {
	return append([]Item(nil), p.items...)
}

func (p *Pane) ActiveItem() Item {
	if p.active < 0 || p.active >= len(p.items) {
		return nil
	}
	return p.items[p.active]
}

func (p *Pane) indexOf(uri string) int {
	for i, item := range p.items {
		if item.URI() == uri {
			return i
		}
	}
	return -1
}

type Workspace struct {
	mu         sync.Mutex
	panes      []*Pane
	activePane int
	openers    map[string]Opener
	store      Store
}

func New(store Store) *Workspace {
	return &Workspace{
		panes:   []*Pane{newPane()},
		openers: map[string]Opener{},
		store:   store,
	}
}

func newPane() *Pane {
	return &Pane{ID: uuid.New().String(), active: -1}
}

func (w *Workspace) AddOpener(scheme string, opener Opener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.openers[strings.ToLower(strings.TrimSpace(scheme))] = opener
}

// SplitPane adds an empty pane and makes it active.
func (w *Workspace) SplitPane() *Pane {
	w.mu.Lock()
	defer w.mu.Unlock()
	pane := newPane()
	w.panes = append(w.panes, pane)
	w.activePane = len(w.panes) - 1
	return pane
}

func (w *Workspace) ActivatePane(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, pane := range w.panes {
		if pane.ID == id {
			w.activePane = i
			return true
		}
	}
	return false
}

func (w *Workspace) Panes() []*Pane {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*Pane(nil), w.panes...)
}

func (w *Workspace) ActivePane() *Pane {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panes[w.activePane]
}

// Open shows the item addressed by uri, reusing an existing one when found.
// A cancelled ctx leaves the panes and the persisted state untouched.
func (w *Workspace) Open(ctx context.Context, uri string, opts OpenOptions) (Item, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	paneIndex, itemIndex := w.find(uri, opts.SearchAllPanes)
	if paneIndex >= 0 {
		existing := w.panes[paneIndex].items[itemIndex]
		if _, restored := existing.(*restoredItem); !restored {
			w.activate(paneIndex, itemIndex)
			w.mu.Unlock()
			w.persist()
			return existing, nil
		}
	}
	opener, err := w.openerFor(uri)
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	item, err := opener(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	paneIndex, itemIndex = w.find(uri, opts.SearchAllPanes)
	if paneIndex >= 0 {
		w.panes[paneIndex].items[itemIndex] = item
	} else {
		paneIndex = w.activePane
		pane := w.panes[paneIndex]
		pane.items = append(pane.items, item)
		itemIndex = len(pane.items) - 1
	}
	w.activate(paneIndex, itemIndex)
	w.mu.Unlock()
	w.persist()
	return item, nil
}

func (w *Workspace) find(uri string, allPanes bool) (int, int) {
	if !allPanes {
		if idx := w.panes[w.activePane].indexOf(uri); idx >= 0 {
			return w.activePane, idx
		}
		return -1, -1
	}
	for i, pane := range w.panes {
		if idx := pane.indexOf(uri); idx >= 0 {
			return i, idx
		}
	}
	return -1, -1
}

func (w *Workspace) activate(paneIndex, itemIndex int) {
	w.activePane = paneIndex
	w.panes[paneIndex].active = itemIndex
}

func (w *Workspace) openerFor(uri string) (Opener, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse uri %q: %w", uri, err)
	}
	opener, ok := w.openers[strings.ToLower(u.Scheme)]
	if !ok || opener == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoOpener, uri)
	}
	return opener, nil
}
