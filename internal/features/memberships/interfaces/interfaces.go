package memberships_interfaces

import (
	users_dto "vendors-backend/internal/features/users/dto"
	users_models "vendors-backend/internal/features/users/models"
)

type AdminChecker interface {
	IsAdmin(userID int64) (bool, error)
}

// UserDirectory is the subset of the user store membership management
// needs. Lookups return nil without error when nothing matches.
type UserDirectory interface {
	GetUserByEmail(email string) (*users_models.User, error)
	GetUserByID(userID int64) (*users_models.User, error)
	IsLoginTaken(login string) (bool, error)
	CreateUser(request *users_dto.CreateUserRequest) (*users_models.User, error)
}

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *int64, vendorID *int64)
}
