package handler

import (
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
)

// The DTOs below define the JSON wire shapes. Models stay free of json
// tags so internals like the password hash can never leak by accident.

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	BannerURL string    `json:"bannerUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// toUserDTO renders a user for their own account views, email included.
func toUserDTO(u *model.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		BannerURL: u.BannerURL,
		CreatedAt: u.CreatedAt,
	}
}

// toPublicUserDTO renders a user for everyone else, without the email.
func toPublicUserDTO(u *model.User) userDTO {
	dto := toUserDTO(u)
	dto.Email = ""
	return dto
}

type subscriptionDTO struct {
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSubscriptionDTO(s *model.Subscription) subscriptionDTO {
	return subscriptionDTO{
		Plan:      s.Plan,
		Status:    s.Status,
		UpdatedAt: s.UpdatedAt,
	}
}

type boxDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CreatorID       string    `json:"creatorId"`
	CreatorUsername string    `json:"creatorUsername"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toBoxDTO(b *model.Box) boxDTO {
	return boxDTO{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Latitude:        b.Latitude,
		Longitude:       b.Longitude,
		ImageURL:        b.ImageURL,
		CreatorID:       b.CreatorID,
		CreatorUsername: b.CreatorUsername,
		CreatedAt:       b.CreatedAt,
	}
}

func toBoxDTOs(boxes []*model.Box) []boxDTO {
	dtos := make([]boxDTO, 0, len(boxes))
	for _, b := range boxes {
		dtos = append(dtos, toBoxDTO(b))
	}
	return dtos
}

type visitDTO struct {
	ID               string    `json:"id"`
	BoxID            string    `json:"boxId"`
	BoxName          string    `json:"boxName,omitempty"`
	Rating           *int      `json:"rating"`
	Comment          *string   `json:"comment"`
	VisitedAt        time.Time `json:"visitedAt"`
	VisitorUsername  string    `json:"visitorUsername,omitempty"`
	VisitorAvatarURL string    `json:"visitorAvatarUrl,omitempty"`
}

func toVisitDTO(v *model.Visit) visitDTO {
	return visitDTO{
		ID:               v.ID,
		BoxID:            v.BoxID,
		BoxName:          v.BoxName,
		Rating:           v.Rating,
		Comment:          v.Comment,
		VisitedAt:        v.VisitedAt,
		VisitorUsername:  v.VisitorUsername,
		VisitorAvatarURL: v.VisitorAvatarURL,
	}
}

func toVisitDTOs(visits []*model.Visit) []visitDTO {
	dtos := make([]visitDTO, 0, len(visits))
	for _, v := range visits {
		dtos = append(dtos, toVisitDTO(v))
	}
	return dtos
}
