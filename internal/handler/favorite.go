package handler

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/ctxkeys"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type favoriteHandler struct {
	favoriteService *service.FavoriteService
	validator       *validation.RequestValidator
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, validator *validation.RequestValidator) *favoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
		validator:       validator,
	}
}

type favoriteStateResponse struct {
	State string `json:"state"`
}

// Toggle flips the favorite for a box and reports the resulting state,
// "added" or "removed".
func (h *favoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	boxID := r.PathValue("id")

	state, err := h.favoriteService.Toggle(r.Context(), user.ID, boxID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, favoriteStateResponse{State: state})
}

type setFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

// Set forces the favorite to an explicit state. Unlike Toggle it is
// safe to retry: repeating the request lands on the same state.
func (h *favoriteHandler) Set(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	boxID := r.PathValue("id")

	var req setFavoriteRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	state, err := h.favoriteService.Set(r.Context(), user.ID, boxID, *req.Favorite)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, favoriteStateResponse{State: state})
}

// Mine lists the boxes the authenticated user favorited, most recent
// first.
func (h *favoriteHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	boxes, err := h.favoriteService.BoxesForUser(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toBoxDTOs(boxes))
}
