package workspace

import (
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
)

// restoredItem stands in for an item loaded from the store until it is opened
// again and rebuilt by its opener.
type restoredItem struct {
	uri string
}

func (r *restoredItem) URI() string   { return r.uri }
func (r *restoredItem) Title() string { return r.uri }

// Restore replaces the layout with the one recorded in the store.
func (w *Workspace) Restore() error {
	if w.store == nil {
		return nil
	}
	states, err := w.store.LoadPanes()
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	panes := make([]*Pane, 0, len(states))
	activePane := 0
	for i, st := range states {
		pane := &Pane{ID: st.ID, active: -1}
		if pane.ID == "" {
			pane = newPane()
		}
		for _, uri := range st.URIs {
			if uri == "" || pane.indexOf(uri) >= 0 {
				continue
			}
			pane.items = append(pane.items, &restoredItem{uri: uri})
			if uri == st.ActiveURI {
				pane.active = len(pane.items) - 1
			}
		}
		if st.ActivePane {
			activePane = i
		}
		panes = append(panes, pane)
	}
	w.panes = panes
	w.activePane = activePane
	return nil
}

func (w *Workspace) snapshot() []PaneState {
	w.mu.Lock()
	defer w.mu.Unlock()
	states := make([]PaneState, 0, len(w.panes))
	for i, pane := range w.panes {
		st := PaneState{ID: pane.ID, ActivePane: i == w.activePane}
		for _, item := range pane.items {
			st.URIs = append(st.URIs, item.URI())
		}
		if active := pane.ActiveItem(); active != nil {
			st.ActiveURI = active.URI()
		}
		states = append(states, st)
	}
	return states
}

// persist is best effort.
func (w *Workspace) persist() {
	if w.store == nil {
		return
	}
	if err := w.store.SavePanes(w.snapshot()); err != nil {
		debuglog.Logf(debuglog.NewTrace("workspace"), "save panes: %v", err)
	}
}
