package users_dto

import (
	users_enums "vendors-backend/internal/features/users/enums"
)

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type UserProfileResponseDTO struct {
	ID          int64                `json:"id"`
	Login       string               `json:"login"`
	Email       string               `json:"email"`
	DisplayName string               `json:"displayName"`
	Role        users_enums.UserRole `json:"role"`
}

// CreateUserRequest is what the user directory needs to register a
// new account. Login must already be sanitized and unique.
type CreateUserRequest struct {
	Login       string
	Email       string
	Password    string
	DisplayName string
}
