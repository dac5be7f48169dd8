// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "contacts_backend/internal/feature/auth/domain/entity"

// SignupReq represents the request body for the /auth/register endpoint.
// Email format is not checked; the address is normalized by the usecase.
type SignupReq struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// SignupRes is returned after a successful registration.
type SignupRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// NewSignupRes builds the registration response from the stored user.
func NewSignupRes(u *entity.User) SignupRes {
	return SignupRes{ID: u.ID, Email: u.Email}
}
