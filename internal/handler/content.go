package handler

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
)

type contentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *contentHandler {
	return &contentHandler{contentService: contentService}
}

// Page serves a rendered markdown page (privacy, terms, about) by slug.
func (h *contentHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	page, err := h.contentService.Page(slug)
	if err != nil {
		response.NotFound(w, "page not found")
		return
	}

	response.Success(w, page)
}
