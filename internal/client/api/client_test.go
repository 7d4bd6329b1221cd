package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvalidator struct {
	forced bool
}

func (f *fakeInvalidator) ForceLogout() { f.forced = true }

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "x", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "T1",
			"role":         "user",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	res, err := client.Login(context.Background(), "a@b.com", "x")

	require.NoError(t, err)
	assert.Equal(t, "T1", res.AccessToken)
	assert.Equal(t, "user", res.Role)
}

func TestClient_ErrorDetailParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Category with this name already exists"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.CreateCategory(context.Background(), "T1", "Work")

	require.Error(t, err)
	assert.Equal(t, "Category with this name already exists", err.Error())
}

func TestClient_NonJSONErrorBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.GetCategories(context.Background(), "T1")

	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.Equal(t, "Failed to fetch categories", err.Error())
}

func TestClient_BearerHeaderSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Category{})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.GetCategories(context.Background(), "T1")
	require.NoError(t, err)
}

func TestClient_401ForcesLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token"})
	}))
	defer srv.Close()

	inv := &fakeInvalidator{}
	client := New(srv.URL, inv)

	_, err := client.GetSingleNote(context.Background(), "expired-token", "n1")

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, inv.forced)
}

func TestClient_401EscalatesOnEveryAuthenticatedCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	calls := []func(c *Client) error{
		func(c *Client) error { _, err := c.GetCategories(context.Background(), "T"); return err },
		func(c *Client) error { _, err := c.CreateCategory(context.Background(), "T", "Work"); return err },
		func(c *Client) error { _, err := c.UpdateCategory(context.Background(), "T", "c1", "Work"); return err },
		func(c *Client) error { return c.DeleteCategory(context.Background(), "T", "c1") },
		func(c *Client) error {
			_, err := c.CreateNote(context.Background(), "T", CreateNoteData{NoteTitle: "a", NoteDesc: "b"})
			return err
		},
		func(c *Client) error { _, err := c.GetNotesByCategory(context.Background(), "T", "c1"); return err },
		func(c *Client) error { _, err := c.GetSingleNote(context.Background(), "T", "n1"); return err },
		func(c *Client) error {
			_, err := c.UpdateNote(context.Background(), "T", "n1", UpdateNoteData{NoteTitle: "a", NoteDesc: "b"})
			return err
		},
	}

	for _, call := range calls {
		inv := &fakeInvalidator{}
		client := New(srv.URL, inv)
		err := call(client)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.True(t, inv.forced)
	}
}

func TestClient_401OnPublicCallIsNotEscalated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	inv := &fakeInvalidator{}
	client := New(srv.URL, inv)

	_, err := client.Login(context.Background(), "a@b.com", "wrong")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.False(t, inv.forced)
}

func TestClient_UpdateNoteReturnsServerCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// server normalizes the title regardless of what was sent
		_ = json.NewEncoder(w).Encode(Note{
			ID:        "n1",
			NoteTitle: "Server Title",
			NoteDesc:  "Server Body",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	note, err := client.UpdateNote(context.Background(), "T1", "n1", UpdateNoteData{
		NoteTitle: "typed title",
		NoteDesc:  "typed body",
	})

	require.NoError(t, err)
	assert.Equal(t, "Server Title", note.NoteTitle)
	assert.Equal(t, "Server Body", note.NoteDesc)
}
