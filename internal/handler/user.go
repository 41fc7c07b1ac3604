package handler

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
)

type userHandler struct {
	userService *service.UserService
	boxService  *service.BoxService
}

func NewUserHandler(userService *service.UserService, boxService *service.BoxService) *userHandler {
	return &userHandler{
		userService: userService,
		boxService:  boxService,
	}
}

type publicProfileResponse struct {
	User  userDTO  `json:"user"`
	Boxes []boxDTO `json:"boxes"`
}

// Profile returns a user's public page: profile plus the boxes they
// registered. No email, no plan details.
func (h *userHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, err := h.userService.ByUsername(r.Context(), username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	boxes, err := h.boxService.ByCreator(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, publicProfileResponse{
		User:  toPublicUserDTO(user),
		Boxes: toBoxDTOs(boxes),
	})
}
