package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/internal/client/api"
)

type stubSession struct {
	loading  bool
	loggedIn bool
	token    string
}

func (s *stubSession) Loading() bool    { return s.loading }
func (s *stubSession) IsLoggedIn() bool { return s.loggedIn }
func (s *stubSession) Token() string    { return s.token }

func loggedIn() *stubSession {
	return &stubSession{loggedIn: true, token: "T1"}
}

// fakeAPI implements the API interface with programmable responses and
// call counting.
type fakeAPI struct {
	mu sync.Mutex

	categories    []api.Category
	categoriesErr error
	notes         []api.Note
	notesErr      error
	note          api.Note
	noteErr       error
	updatedNote   api.Note
	updateNoteErr error
	createNoteErr error
	createCatErr  error
	updatedCat    api.Category
	updateCatErr  error

	getCategoriesCalls int
	getNotesCalls      int
	getNoteCalls       int
	createNoteCalls    int
	updateNoteCalls    int

	// when set, GetCategories blocks on it before returning
	categoriesGate chan struct{}
}

func (f *fakeAPI) GetCategories(ctx context.Context, token string) ([]api.Category, error) {
	f.mu.Lock()
	f.getCategoriesCalls++
	gate := f.categoriesGate
	categories, err := f.categories, f.categoriesErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return categories, err
}

func (f *fakeAPI) CreateCategory(ctx context.Context, token, name string) (api.Category, error) {
	return api.Category{ID: "new", Name: name}, f.createCatErr
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, token, categoryID, name string) (api.Category, error) {
	return f.updatedCat, f.updateCatErr
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, token, categoryID string) error {
	return nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, token string, data api.CreateNoteData) (api.Note, error) {
	f.mu.Lock()
	f.createNoteCalls++
	f.mu.Unlock()
	return api.Note{ID: "new", NoteTitle: data.NoteTitle, NoteDesc: data.NoteDesc}, f.createNoteErr
}

func (f *fakeAPI) GetNotesByCategory(ctx context.Context, token, categoryID string) ([]api.Note, error) {
	f.mu.Lock()
	f.getNotesCalls++
	f.mu.Unlock()
	return f.notes, f.notesErr
}

func (f *fakeAPI) GetSingleNote(ctx context.Context, token, noteID string) (api.Note, error) {
	f.mu.Lock()
	f.getNoteCalls++
	f.mu.Unlock()
	return f.note, f.noteErr
}

func (f *fakeAPI) UpdateNote(ctx context.Context, token, noteID string, data api.UpdateNoteData) (api.Note, error) {
	f.mu.Lock()
	f.updateNoteCalls++
	f.mu.Unlock()
	return f.updatedNote, f.updateNoteErr
}

func TestCategoryList_WaitsWhileRestoring(t *testing.T) {
	fake := &fakeAPI{}
	list := NewCategoryList(fake, &stubSession{loading: true})

	list.Load(context.Background())

	assert.Zero(t, fake.getCategoriesCalls)
	assert.Empty(t, list.Err())
	assert.False(t, list.Loaded())
}

func TestCategoryList_AnonymousGetsInlineError(t *testing.T) {
	fake := &fakeAPI{}
	list := NewCategoryList(fake, &stubSession{})

	list.Load(context.Background())

	assert.Zero(t, fake.getCategoriesCalls)
	assert.Equal(t, "Please login to view this page", list.Err())
}

func TestCategoryList_Load(t *testing.T) {
	fake := &fakeAPI{categories: []api.Category{{ID: "c1", Name: "Work"}}}
	list := NewCategoryList(fake, loggedIn())

	list.Load(context.Background())

	assert.True(t, list.Loaded())
	require.Len(t, list.Categories(), 1)
	assert.Equal(t, "Work", list.Categories()[0].Name)
}

func TestCategoryList_StaleLoadDiscarded(t *testing.T) {
	gate := make(chan struct{})
	fake := &fakeAPI{
		categories:     []api.Category{{ID: "c1", Name: "Stale"}},
		categoriesGate: gate,
	}
	list := NewCategoryList(fake, loggedIn())

	done := make(chan struct{})
	go func() {
		list.Load(context.Background())
		close(done)
	}()

	// wait until the first load is in flight, then let a second load
	// run to completion before releasing the first
	for {
		fake.mu.Lock()
		started := fake.getCategoriesCalls == 1
		if started {
			fake.categoriesGate = nil
			fake.categories = []api.Category{{ID: "c2", Name: "Fresh"}}
		}
		fake.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	list.Load(context.Background())
	close(gate)
	<-done

	require.Len(t, list.Categories(), 1)
	assert.Equal(t, "Fresh", list.Categories()[0].Name)
}

func TestCategoryList_CreateRejectsEmptyName(t *testing.T) {
	fake := &fakeAPI{}
	list := NewCategoryList(fake, loggedIn())

	err := list.CreateCategory(context.Background(), "   ")

	require.Error(t, err)
	assert.Equal(t, 0, fake.getCategoriesCalls)
}

func TestCategoryList_CreateReloads(t *testing.T) {
	fake := &fakeAPI{categories: []api.Category{{ID: "c1", Name: "Work"}, {ID: "new", Name: "Ideas"}}}
	list := NewCategoryList(fake, loggedIn())

	err := list.CreateCategory(context.Background(), "Ideas")

	require.NoError(t, err)
	assert.Equal(t, 1, fake.getCategoriesCalls)
	assert.Len(t, list.Categories(), 2)
}

func TestCategoryDetail_HintSupersededByFetch(t *testing.T) {
	fake := &fakeAPI{
		categories: []api.Category{{ID: "c1", Name: "Work (renamed)"}},
		notes:      []api.Note{{ID: "n1", NoteTitle: "standup"}},
	}
	detail := NewCategoryDetail(fake, loggedIn(), "c1")

	detail.Load(context.Background(), &NavigationHint{CategoryName: "Work"})

	assert.Equal(t, "Work (renamed)", detail.Name())
	assert.True(t, detail.Confirmed())
	require.Len(t, detail.Notes(), 1)
	assert.True(t, detail.Loaded())
}

func TestCategoryDetail_NotFoundStopsBeforeNotes(t *testing.T) {
	fake := &fakeAPI{categories: []api.Category{{ID: "other", Name: "Work"}}}
	detail := NewCategoryDetail(fake, loggedIn(), "c1")

	detail.Load(context.Background(), nil)

	assert.Equal(t, "Category not found", detail.Err())
	assert.Zero(t, fake.getNotesCalls)
	assert.False(t, detail.Loaded())
}

func TestCategoryDetail_NotesFailureIsNotFatal(t *testing.T) {
	fake := &fakeAPI{
		categories: []api.Category{{ID: "c1", Name: "Work"}},
		notesErr:   errors.New("Failed to get notes by category"),
	}
	detail := NewCategoryDetail(fake, loggedIn(), "c1")

	detail.Load(context.Background(), nil)

	assert.Equal(t, "Work", detail.Name())
	assert.Empty(t, detail.Err())
	assert.Empty(t, detail.Notes())
	assert.True(t, detail.Loaded())
}

func TestCategoryDetail_AddNoteReloads(t *testing.T) {
	fake := &fakeAPI{
		categories: []api.Category{{ID: "c1", Name: "Work"}},
		notes:      []api.Note{{ID: "new", NoteTitle: "standup"}},
	}
	detail := NewCategoryDetail(fake, loggedIn(), "c1")

	err := detail.AddNote(context.Background(), "standup", "notes from standup")

	require.NoError(t, err)
	assert.Equal(t, 1, fake.createNoteCalls)
	assert.Equal(t, 1, fake.getNotesCalls)
	require.Len(t, detail.Notes(), 1)
}

func TestCategoryDetail_AddNoteRequiresFields(t *testing.T) {
	fake := &fakeAPI{}
	detail := NewCategoryDetail(fake, loggedIn(), "c1")

	require.Error(t, detail.AddNote(context.Background(), "title only", ""))
	require.Error(t, detail.AddNote(context.Background(), "", "desc only"))
	assert.Zero(t, fake.createNoteCalls)
}

func TestNoteDetail_HintRendersThenFetchSupersedes(t *testing.T) {
	fake := &fakeAPI{
		note: api.Note{ID: "n1", NoteTitle: "Server Title", NoteDesc: "Server Body"},
	}
	detail := NewNoteDetail(fake, loggedIn(), "n1")

	err := detail.Load(context.Background(), &NavigationHint{
		Title:        "Hinted Title",
		Description:  "Hinted Body",
		CategoryID:   "c1",
		CategoryName: "Work",
	})

	require.NoError(t, err)
	assert.Equal(t, "Server Title", detail.Title())
	assert.Equal(t, "Server Body", detail.Desc())
	assert.True(t, detail.Confirmed())
	assert.Equal(t, "/category/c1", detail.BackPath())
}

func TestNoteDetail_FetchFailureKeepsError(t *testing.T) {
	fake := &fakeAPI{noteErr: errors.New("Failed to get single note")}
	detail := NewNoteDetail(fake, loggedIn(), "n1")

	err := detail.Load(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, "Failed to get single note", detail.Err())
	assert.False(t, detail.Loaded())
}

func TestNoteDetail_SaveShowsPersistedValues(t *testing.T) {
	fake := &fakeAPI{
		updatedNote: api.Note{ID: "n1", NoteTitle: "typed", NoteDesc: "typed body"},
		// the re-fetch is authoritative, not the update response
		note: api.Note{ID: "n1", NoteTitle: "Persisted", NoteDesc: "Persisted body"},
	}
	detail := NewNoteDetail(fake, loggedIn(), "n1")

	err := detail.Save(context.Background(), "typed", "typed body")

	require.NoError(t, err)
	assert.Equal(t, 1, fake.updateNoteCalls)
	assert.Equal(t, 1, fake.getNoteCalls)
	assert.Equal(t, "Persisted", detail.Title())
	assert.Equal(t, "Persisted body", detail.Desc())
}

func TestNoteDetail_SaveRequiresFields(t *testing.T) {
	fake := &fakeAPI{}
	detail := NewNoteDetail(fake, loggedIn(), "n1")

	require.Error(t, detail.Save(context.Background(), "", "body"))
	require.Error(t, detail.Save(context.Background(), "title", "  "))
	assert.Zero(t, fake.updateNoteCalls)
}

func TestNoteDetail_BackPathDefaultsToList(t *testing.T) {
	fake := &fakeAPI{note: api.Note{ID: "n1"}}
	detail := NewNoteDetail(fake, loggedIn(), "n1")

	require.NoError(t, detail.Load(context.Background(), nil))
	assert.Equal(t, "/category", detail.BackPath())
}

func TestNoteDetail_AnonymousGetsInlineError(t *testing.T) {
	fake := &fakeAPI{}
	detail := NewNoteDetail(fake, &stubSession{}, "n1")

	err := detail.Load(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, "Please login to view this page", detail.Err())
	assert.Zero(t, fake.getNoteCalls)
}
