package handler

import (
	"net/http"
	"strings"

	"github.com/bookboxapp/bookbox/internal/ctxkeys"
	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type boxHandler struct {
	boxService      *service.BoxService
	favoriteService *service.FavoriteService
	visitService    *service.VisitService
	validator       *validation.RequestValidator
}

func NewBoxHandler(
	boxService *service.BoxService,
	favoriteService *service.FavoriteService,
	visitService *service.VisitService,
	validator *validation.RequestValidator,
) *boxHandler {
	return &boxHandler{
		boxService:      boxService,
		favoriteService: favoriteService,
		visitService:    visitService,
		validator:       validator,
	}
}

// List returns all boxes, or a name/description search when ?q= is set.
// Public: the map view works logged out.
func (h *boxHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var boxes []*model.Box
	var err error
	if query != "" {
		boxes, err = h.boxService.Search(r.Context(), query)
	} else {
		boxes, err = h.boxService.All(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toBoxDTOs(boxes))
}

type boxDetailResponse struct {
	Box        boxDTO     `json:"box"`
	Visits     []visitDTO `json:"visits"`
	IsFavorite bool       `json:"isFavorite"`
	HasVisited bool       `json:"hasVisited"`
}

// Get returns a box with its review feed. For logged-in users it also
// says whether they favorited or already rated it.
func (h *boxHandler) Get(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")

	box, err := h.boxService.ByID(r.Context(), boxID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	visits, err := h.visitService.ListForBox(r.Context(), boxID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	detail := boxDetailResponse{
		Box:    toBoxDTO(box),
		Visits: toVisitDTOs(visits),
	}

	if user := ctxkeys.User(r.Context()); user != nil {
		detail.IsFavorite, err = h.favoriteService.IsFavorite(r.Context(), user.ID, boxID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		detail.HasVisited, err = h.visitService.HasVisited(r.Context(), user.ID, boxID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
	}

	response.Success(w, detail)
}

type createBoxRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
}

func (h *boxHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createBoxRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	box, err := h.boxService.Create(r.Context(), user.ID, user.Username, service.BoxInput{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, toBoxDTO(box))
}

func (h *boxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	boxID := r.PathValue("id")

	err := h.boxService.Delete(r.Context(), user.ID, boxID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *boxHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	boxID := r.PathValue("id")

	err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize)
	if err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	_, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}

	box, err := h.boxService.UploadImage(r.Context(), user.ID, boxID, header)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toBoxDTO(box))
}

// Mine lists the boxes the authenticated user registered.
func (h *boxHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	boxes, err := h.boxService.ByCreator(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toBoxDTOs(boxes))
}
