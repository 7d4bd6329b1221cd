package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// DefaultBaseURL is where a locally run backend listens.
const DefaultBaseURL = "http://localhost:8000"

// ErrSessionExpired is returned when the backend rejects the access token.
// By the time a caller sees it the session has already been torn down.
var ErrSessionExpired = errors.New("Session expired. Please login again.")

// SessionInvalidator tears down the stored session when the backend
// reports the token invalid.
type SessionInvalidator interface {
	ForceLogout()
}

// Client is a typed client for the notedesk REST API. Each call is a
// single best-effort round trip: no retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionInvalidator
}

// New creates a client. session may be nil, in which case a 401 surfaces
// as ErrSessionExpired without side effects.
func New(baseURL string, session SessionInvalidator) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		session: session,
	}
}

// errorBody is the backend's error shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// do builds and executes one request. token may be empty for public
// endpoints. On a non-2xx status the JSON {"detail"} body is decoded for a
// message, falling back to fallbackMsg. A 401 on an authenticated call is
// escalated: the session is invalidated and ErrSessionExpired returned.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, fallbackMsg string) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallbackMsg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			if c.session != nil {
				c.session.ForceLogout()
			}
			return ErrSessionExpired
		}

		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Detail != "" {
			return errors.New(eb.Detail)
		}
		return errors.New(fallbackMsg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Login authenticates and returns the token/role pair.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &res, "Failed to login")
	return res, err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	}, nil, "Failed to sign up")
}

// GetCategories lists the caller's categories.
func (c *Client) GetCategories(ctx context.Context, token string) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, http.MethodGet, "/categories/categories", token, nil, &categories, "Failed to fetch categories")
	return categories, err
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, token, name string) (Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPost, "/categories/categories", token, map[string]string{
		"name": name,
	}, &category, "Failed to create category")
	return category, err
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, token, categoryID, name string) (Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPut, "/categories/categories/"+categoryID, token, map[string]string{
		"name": name,
	}, &category, "Failed to update category")
	return category, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, token, categoryID string) error {
	return c.do(ctx, http.MethodDelete, "/categories/categories/"+categoryID, token, nil, nil, "Failed to delete category")
}

// CreateNote adds a note.
func (c *Client) CreateNote(ctx context.Context, token string, data CreateNoteData) (Note, error) {
	var note Note
	err := c.do(ctx, http.MethodPost, "/notes/notes", token, data, &note, "Failed to create note")
	return note, err
}

// GetNotesByCategory lists the notes filed under one category.
func (c *Client) GetNotesByCategory(ctx context.Context, token, categoryID string) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/notes/notes/category/"+categoryID, token, nil, &notes, "Failed to get notes by category")
	return notes, err
}

// GetSingleNote fetches one note. This is the authoritative read for the
// note detail view.
func (c *Client) GetSingleNote(ctx context.Context, token, noteID string) (Note, error) {
	var note Note
	err := c.do(ctx, http.MethodGet, "/notes/notes/"+noteID, token, nil, &note, "Failed to get single note")
	return note, err
}

// UpdateNote replaces a note's content.
func (c *Client) UpdateNote(ctx context.Context, token, noteID string, data UpdateNoteData) (Note, error) {
	var note Note
	err := c.do(ctx, http.MethodPut, "/notes/notes/"+noteID, token, data, &note, "Failed to update note")
	return note, err
}

// PurgeNotes deletes every note. Requires the admin role.
func (c *Client) PurgeNotes(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/notes/admin-only", token, nil, nil, "Failed to purge notes")
}
