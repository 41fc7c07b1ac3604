package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/bookboxapp/bookbox/internal/ctxkeys"
	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type accountHandler struct {
	userService         *service.UserService
	authService         *service.AuthService
	subscriptionService *service.SubscriptionService
	usage               *service.UsageCounter
	guard               *service.EntitlementGuard
	validator           *validation.RequestValidator
}

func NewAccountHandler(
	userService *service.UserService,
	authService *service.AuthService,
	subscriptionService *service.SubscriptionService,
	usage *service.UsageCounter,
	guard *service.EntitlementGuard,
	validator *validation.RequestValidator,
) *accountHandler {
	return &accountHandler{
		userService:         userService,
		authService:         authService,
		subscriptionService: subscriptionService,
		usage:               usage,
		guard:               guard,
		validator:           validator,
	}
}

type meResponse struct {
	User         userDTO         `json:"user"`
	Subscription subscriptionDTO `json:"subscription"`
	Usage        service.Usage   `json:"usage"`
	Limits       service.Limits  `json:"limits"`
}

// Me returns the account with its plan, current usage and limits, so
// the client renders gauges without extra round trips.
func (h *accountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	subscription := ctxkeys.Subscription(r.Context())

	usage, err := h.usage.Snapshot(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limits, err := h.guard.LimitsFor(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, meResponse{
		User:         toUserDTO(user),
		Subscription: toSubscriptionDTO(subscription),
		Usage:        usage,
		Limits:       limits,
	})
}

type updateProfileRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

func (h *accountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, req.FirstName, req.LastName, req.Username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toUserDTO(updated))
}

func (h *accountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "avatar", h.userService.UploadAvatar)
}

func (h *accountHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "banner", h.userService.UploadBanner)
}

func (h *accountHandler) RemoveAvatar(w http.ResponseWriter, r *http.Request) {
	h.removeImage(w, r, h.userService.RemoveAvatar)
}

func (h *accountHandler) RemoveBanner(w http.ResponseWriter, r *http.Request) {
	h.removeImage(w, r, h.userService.RemoveBanner)
}

func (h *accountHandler) removeImage(
	w http.ResponseWriter,
	r *http.Request,
	remove func(ctx context.Context, userID string) (*model.User, error),
) {
	user := ctxkeys.User(r.Context())

	updated, err := remove(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toUserDTO(updated))
}

func (h *accountHandler) uploadImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	upload func(ctx context.Context, userID string, header *multipart.FileHeader) (*model.User, error),
) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize)
	if err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	_, header, err := r.FormFile(field)
	if err != nil {
		response.BadRequest(w, field+" file is required")
		return
	}

	updated, err := upload(r.Context(), user.ID, header)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toUserDTO(updated))
}

func (h *accountHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	subscription, err := h.subscriptionService.Upgrade(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toSubscriptionDTO(subscription))
}

func (h *accountHandler) Downgrade(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	subscription, err := h.subscriptionService.DowngradeToFreemium(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toSubscriptionDTO(subscription))
}

type entitlementsResponse struct {
	CreateBox service.Decision `json:"createBox"`
	Favorite  service.Decision `json:"favorite"`
	Visit     service.Decision `json:"visit"`
}

// Entitlements answers "can I do X right now" for every gated action.
// Advisory only: the store enforces the real limit on write.
func (h *accountHandler) Entitlements(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	createBox, err := h.guard.CanCreateBox(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	favorite, err := h.guard.CanFavorite(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	visit, err := h.guard.CanVisit(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entitlementsResponse{
		CreateBox: createBox,
		Favorite:  favorite,
		Visit:     visit,
	})
}

func (h *accountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.authService.ClearJWTCookie(w)
	response.NoContent(w)
}
