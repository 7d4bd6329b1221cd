package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notedesk/internal/client/api"
	"notedesk/internal/markdown"
)

// NoteDetail drives a single note's screen, including editing.
type NoteDetail struct {
	mu       sync.Mutex
	api      API
	session  SessionReader
	renderer *markdown.Renderer

	noteID string
	gen    uint64

	title     string
	desc      string
	confirmed bool // fields came from a fetch, not a hint
	loaded    bool
	err       string

	// where "back" leads, carried through the hint
	backCategoryID   string
	backCategoryName string
}

// NewNoteDetail creates the controller for one note.
func NewNoteDetail(apiClient API, session SessionReader, noteID string) *NoteDetail {
	return &NoteDetail{
		api:      apiClient,
		session:  session,
		renderer: markdown.NewRenderer(),
		noteID:   noteID,
	}
}

// Load renders the hint immediately, then fetches the note. The fetched
// title and description replace the hinted ones field-for-field; the
// server's copy is ground truth even when it differs from what was just
// typed on a previous screen.
func (n *NoteDetail) Load(ctx context.Context, hint *NavigationHint) error {
	if n.session.Loading() {
		return nil
	}
	if !n.session.IsLoggedIn() {
		n.mu.Lock()
		n.err = errPleaseLogin
		n.mu.Unlock()
		return errors.New(errPleaseLogin)
	}

	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.err = ""
	if hint != nil {
		if hint.Title != "" {
			n.title = hint.Title
			n.confirmed = false
		}
		if hint.Description != "" {
			n.desc = hint.Description
			n.confirmed = false
		}
		n.backCategoryID = hint.CategoryID
		n.backCategoryName = hint.CategoryName
	}
	n.mu.Unlock()

	note, err := n.api.GetSingleNote(ctx, n.session.Token(), n.noteID)

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return nil
	}
	if err != nil {
		n.err = err.Error()
		return err
	}
	n.title = note.NoteTitle
	n.desc = note.NoteDesc
	n.confirmed = true
	n.loaded = true
	return nil
}

// Save validates and submits the edit, then re-fetches the note so the
// screen shows exactly what the backend persisted.
func (n *NoteDetail) Save(ctx context.Context, title, desc string) error {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" || desc == "" {
		return errors.New("note title and description are required")
	}

	token := n.session.Token()
	if _, err := n.api.UpdateNote(ctx, token, n.noteID, api.UpdateNoteData{
		NoteTitle: title,
		NoteDesc:  desc,
	}); err != nil {
		n.mu.Lock()
		n.err = err.Error()
		n.mu.Unlock()
		return err
	}

	note, err := n.api.GetSingleNote(ctx, token, n.noteID)
	if err != nil {
		n.mu.Lock()
		n.err = err.Error()
		n.mu.Unlock()
		return err
	}

	n.mu.Lock()
	n.title = note.NoteTitle
	n.desc = note.NoteDesc
	n.confirmed = true
	n.loaded = true
	n.err = ""
	n.mu.Unlock()
	return nil
}

// HTMLPreview renders the note body's markdown.
func (n *NoteDetail) HTMLPreview() (string, error) {
	n.mu.Lock()
	desc := n.desc
	n.mu.Unlock()
	return n.renderer.Render(desc)
}

// BackPath returns where the back action navigates: the originating
// category when the hint carried one, the category list otherwise.
func (n *NoteDetail) BackPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.backCategoryID != "" {
		return "/category/" + n.backCategoryID
	}
	return "/category"
}

// NoteID returns the note this controller drives.
func (n *NoteDetail) NoteID() string { return n.noteID }

// Title returns the currently displayed title (hint or confirmed).
func (n *NoteDetail) Title() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.title
}

// Desc returns the currently displayed description (hint or confirmed).
func (n *NoteDetail) Desc() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.desc
}

// Confirmed reports whether the displayed fields came from a fetch.
func (n *NoteDetail) Confirmed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.confirmed
}

// Loaded reports whether the authoritative fetch ever succeeded.
func (n *NoteDetail) Loaded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loaded
}

// Err returns the inline error message, empty when none.
func (n *NoteDetail) Err() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}
