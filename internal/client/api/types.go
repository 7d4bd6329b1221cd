package api

// Category mirrors the backend category resource.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note mirrors the backend note resource.
type Note struct {
	ID         string  `json:"id"`
	NoteTitle  string  `json:"note_title"`
	NoteDesc   string  `json:"note_desc"`
	CategoryID *string `json:"category_id"`
}

// CreateNoteData is the payload for creating a note.
type CreateNoteData struct {
	NoteTitle  string  `json:"note_title"`
	NoteDesc   string  `json:"note_desc"`
	CategoryID *string `json:"category_id,omitempty"`
}

// UpdateNoteData is the payload for updating a note.
type UpdateNoteData struct {
	NoteTitle  string  `json:"note_title"`
	NoteDesc   string  `json:"note_desc"`
	CategoryID *string `json:"category_id,omitempty"`
}

// LoginResult carries the credentials returned by a successful login.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	Role         string `json:"role"`
	RefreshToken string `json:"refresh_token"`
}
