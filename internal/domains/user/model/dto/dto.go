package dto

import (
	"safar/internal/domains/user/model"
	gDto "safar/shared/dto"
	"safar/shared/timezone"
	"time"
)

type UserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Phone       *string  `json:"phone,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      bool     `json:"active"`
	LastLogin   *string  `json:"lastLogin,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Role = model.Role
	r.Permissions = model.Permissions.Names()
	r.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, time.RFC3339)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}
