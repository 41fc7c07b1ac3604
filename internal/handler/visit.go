package handler

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/ctxkeys"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type visitHandler struct {
	visitService *service.VisitService
	validator    *validation.RequestValidator
}

func NewVisitHandler(visitService *service.VisitService, validator *validation.RequestValidator) *visitHandler {
	return &visitHandler{
		visitService: visitService,
		validator:    validator,
	}
}

type recordVisitRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// Record logs a visit to a box. A rating makes it the canonical visit
// for the pair and consumes freemium quota; comment-only visits don't.
func (h *visitHandler) Record(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	boxID := r.PathValue("id")

	var req recordVisitRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	visit, err := h.visitService.Record(r.Context(), user.ID, boxID, req.Rating, req.Comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, toVisitDTO(visit))
}

// ListForBox returns the review feed for a box, newest first.
func (h *visitHandler) ListForBox(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")

	visits, err := h.visitService.ListForBox(r.Context(), boxID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toVisitDTOs(visits))
}

// Mine returns the authenticated user's visit history across boxes.
func (h *visitHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	visits, err := h.visitService.ByUser(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toVisitDTOs(visits))
}
