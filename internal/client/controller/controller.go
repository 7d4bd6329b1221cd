// Package controller implements the per-screen logic of the client: load
// data through the API, merge it with navigation hints, and manage edits.
//
// Each controller follows the same protocol: do nothing while the session
// is restoring, show an inline error when anonymous, otherwise render any
// navigation hint immediately and let the authoritative fetch supersede it.
package controller

import (
	"context"

	"notedesk/internal/client/api"
)

// API is the slice of the REST client controllers depend on.
type API interface {
	GetCategories(ctx context.Context, token string) ([]api.Category, error)
	CreateCategory(ctx context.Context, token, name string) (api.Category, error)
	UpdateCategory(ctx context.Context, token, categoryID, name string) (api.Category, error)
	DeleteCategory(ctx context.Context, token, categoryID string) error
	CreateNote(ctx context.Context, token string, data api.CreateNoteData) (api.Note, error)
	GetNotesByCategory(ctx context.Context, token, categoryID string) ([]api.Note, error)
	GetSingleNote(ctx context.Context, token, noteID string) (api.Note, error)
	UpdateNote(ctx context.Context, token, noteID string, data api.UpdateNoteData) (api.Note, error)
}

// SessionReader is the view of the session manager controllers consult.
type SessionReader interface {
	Loading() bool
	IsLoggedIn() bool
	Token() string
}

// NavigationHint is data optimistically carried between screens so a
// detail view can pre-render before its authoritative fetch completes.
// Hinted values are untrusted: the fetched result replaces them
// field-for-field once it arrives.
type NavigationHint struct {
	CategoryName string
	CategoryID   string
	Title        string
	Description  string
}

const errPleaseLogin = "Please login to view this page"
