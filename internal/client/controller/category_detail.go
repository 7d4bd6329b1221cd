package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notedesk/internal/client/api"
)

// CategoryDetail drives one category's screen: its name, its notes, and
// the note creation form.
type CategoryDetail struct {
	mu      sync.Mutex
	api     API
	session SessionReader

	categoryID string
	gen        uint64

	name      string
	confirmed bool // name came from a fetch, not a hint
	notes     []api.Note
	loaded    bool
	err       string
}

// NewCategoryDetail creates the controller for one category.
func NewCategoryDetail(apiClient API, session SessionReader, categoryID string) *CategoryDetail {
	return &CategoryDetail{api: apiClient, session: session, categoryID: categoryID}
}

// Load renders the hint immediately, then fetches the authoritative
// category and its notes. The fetched name always supersedes the hint.
// A category that no longer exists stops the load before notes are
// requested. A notes fetch failure leaves an empty list rather than
// failing the whole screen.
func (c *CategoryDetail) Load(ctx context.Context, hint *NavigationHint) {
	if c.session.Loading() {
		return
	}
	if !c.session.IsLoggedIn() {
		c.mu.Lock()
		c.err = errPleaseLogin
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.err = ""
	if hint != nil && hint.CategoryName != "" {
		// optimistic pre-render until the fetch lands
		c.name = hint.CategoryName
		c.confirmed = false
	}
	c.mu.Unlock()

	token := c.session.Token()

	categories, err := c.api.GetCategories(ctx, token)
	if err != nil {
		c.fail(gen, err.Error())
		return
	}

	var found *api.Category
	for i := range categories {
		if categories[i].ID == c.categoryID {
			found = &categories[i]
			break
		}
	}
	if found == nil {
		c.fail(gen, "Category not found")
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.name = found.Name
	c.confirmed = true
	c.mu.Unlock()

	notes, err := c.api.GetNotesByCategory(ctx, token, c.categoryID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if err != nil {
		// notes are not fatal to the screen; show the header with an
		// empty list
		c.notes = nil
	} else {
		c.notes = notes
	}
	c.loaded = true
}

// Rename submits a new category name and applies the confirmed value.
func (c *CategoryDetail) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name is required")
	}

	updated, err := c.api.UpdateCategory(ctx, c.session.Token(), c.categoryID, name)
	if err != nil {
		c.mu.Lock()
		c.err = err.Error()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.name = updated.Name
	c.confirmed = true
	c.err = ""
	c.mu.Unlock()
	return nil
}

// AddNote validates and creates a note in this category, then reloads the
// authoritative list.
func (c *CategoryDetail) AddNote(ctx context.Context, title, desc string) error {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" || desc == "" {
		return errors.New("note title and description are required")
	}

	categoryID := c.categoryID
	_, err := c.api.CreateNote(ctx, c.session.Token(), api.CreateNoteData{
		NoteTitle:  title,
		NoteDesc:   desc,
		CategoryID: &categoryID,
	})
	if err != nil {
		c.mu.Lock()
		c.err = err.Error()
		c.mu.Unlock()
		return err
	}

	c.Load(ctx, nil)
	return nil
}

func (c *CategoryDetail) fail(gen uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.err = msg
}

// CategoryID returns the category this controller drives.
func (c *CategoryDetail) CategoryID() string { return c.categoryID }

// Name returns the currently displayed category name (hint or confirmed).
func (c *CategoryDetail) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// Confirmed reports whether the displayed name came from a fetch.
func (c *CategoryDetail) Confirmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed
}

// Notes returns the loaded notes.
func (c *CategoryDetail) Notes() []api.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes
}

// Loaded reports whether the screen finished at least one full load.
func (c *CategoryDetail) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Err returns the inline error message, empty when none.
func (c *CategoryDetail) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
