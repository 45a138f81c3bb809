package users_repositories

import (
	"errors"
	"strings"
	"time"

	users_enums "vendors-backend/internal/features/users/enums"
	users_models "vendors-backend/internal/features/users/models"
	"vendors-backend/internal/storage"

	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) GetUsersCount() (int64, error) {
	var count int64
	if err := storage.GetDb().Model(&users_models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	user.Email = NormalizeEmail(user.Email)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if user.PasswordCreationTime.IsZero() {
		user.PasswordCreationTime = user.CreatedAt
	}

	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	err := storage.GetDb().Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID int64) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) IsLoginTaken(login string) (bool, error) {
	var count int64

	err := storage.GetDb().
		Model(&users_models.User{}).
		Where("login = ?", login).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *UserRepository) UpdateUserPassword(userID int64, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password":        hashedPassword,
			"password_creation_time": time.Now().UTC(),
		}).Error
}

// CreateInitialAdmin inserts the bootstrap administrator unless a user
// with that email already exists.
func (r *UserRepository) CreateInitialAdmin(email string, hashedPassword *string) error {
	admin, err := r.GetUserByEmail(email)
	if err != nil {
		return err
	}

	if admin != nil {
		return nil
	}

	login := strings.SplitN(NormalizeEmail(email), "@", 2)[0]

	return r.CreateUser(&users_models.User{
		Login:          login,
		Email:          email,
		DisplayName:    "Admin",
		HashedPassword: hashedPassword,
		Role:           users_enums.UserRoleAdmin,
		Status:         users_enums.UserStatusActive,
	})
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
