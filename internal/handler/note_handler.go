package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"notedesk/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteRequest carries note fields for create and update.
type NoteRequest struct {
	NoteTitle  string  `json:"note_title" validate:"required"`
	NoteDesc   string  `json:"note_desc" validate:"required"`
	CategoryID *string `json:"category_id,omitempty"`
}

func (r *NoteRequest) categoryID() (*uuid.UUID, error) {
	if r.CategoryID == nil || *r.CategoryID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*r.CategoryID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Create godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NoteRequest true "Note data"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	categoryID, err := req.categoryID()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	note, err := h.noteService.Create(c.Request().Context(), claims.Email, req.NoteTitle, req.NoteDesc, categoryID)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// ListByCategory godoc
// @Summary List notes in a category
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Success 200 {array} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/notes/category/{categoryId} [get]
func (h *NoteHandler) ListByCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	notes, err := h.noteService.ListByCategory(c.Request().Context(), claims.Email, categoryID)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// Get godoc
// @Summary Get a single note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}

	note, err := h.noteService.Get(c.Request().Context(), claims.Email, id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// Update godoc
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body NoteRequest true "Note data"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	categoryID, err := req.categoryID()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	note, err := h.noteService.Update(c.Request().Context(), claims.Email, id, req.NoteTitle, req.NoteDesc, categoryID)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// PurgeAll godoc
// @Summary Delete every note (admin only)
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /notes/admin-only [delete]
func (h *NoteHandler) PurgeAll(c echo.Context) error {
	if _, err := currentClaims(c); err != nil {
		return err
	}

	if _, err := h.noteService.PurgeAll(c.Request().Context()); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Admin action performed",
	})
}
