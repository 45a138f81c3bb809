package users_models

import (
	"time"

	users_enums "vendors-backend/internal/features/users/enums"
)

type User struct {
	ID                   int64                  `json:"id"          gorm:"column:id;primaryKey;autoIncrement"`
	Login                string                 `json:"login"       gorm:"column:login;size:60;not null;uniqueIndex:idx_users_login"`
	Email                string                 `json:"email"       gorm:"column:email;size:100;not null;uniqueIndex:idx_users_email"`
	DisplayName          string                 `json:"displayName" gorm:"column:display_name;size:250;not null;default:''"`
	HashedPassword       *string                `json:"-"           gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"           gorm:"column:password_creation_time;not null"`
	Role                 users_enums.UserRole   `json:"role"        gorm:"column:role;size:16;not null"`
	Status               users_enums.UserStatus `json:"status"      gorm:"column:status;size:16;not null"`
	CreatedAt            time.Time              `json:"createdAt"   gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
