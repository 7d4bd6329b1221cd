package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notedesk/internal/client/api"
)

// CategoryList drives the category overview screen.
type CategoryList struct {
	mu      sync.Mutex
	api     API
	session SessionReader

	gen        uint64
	categories []api.Category
	loaded     bool
	err        string
}

// NewCategoryList creates the controller.
func NewCategoryList(apiClient API, session SessionReader) *CategoryList {
	return &CategoryList{api: apiClient, session: session}
}

// Load fetches the authoritative category list. While the session is
// restoring nothing happens; an anonymous session produces an inline
// error instead of a request.
func (c *CategoryList) Load(ctx context.Context) {
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
	c.mu.Unlock()

	categories, err := c.api.GetCategories(ctx, c.session.Token())

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// a newer load superseded this one
		return
	}
	if err != nil {
		c.err = err.Error()
		return
	}
	c.categories = categories
	c.loaded = true
}

// CreateCategory validates, submits, and reloads the authoritative list
// on success rather than patching local state.
func (c *CategoryList) CreateCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name is required")
	}
	if !c.session.IsLoggedIn() {
		return errors.New(errPleaseLogin)
	}

	if _, err := c.api.CreateCategory(ctx, c.session.Token(), name); err != nil {
		c.mu.Lock()
		c.err = err.Error()
		c.mu.Unlock()
		return err
	}

	c.Load(ctx)
	return nil
}

// Categories returns the last loaded list.
func (c *CategoryList) Categories() []api.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

// Err returns the inline error message, empty when none.
func (c *CategoryList) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loaded reports whether a list was ever fetched successfully.
func (c *CategoryList) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
