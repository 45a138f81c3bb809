package users_testing

import (
	"fmt"

	users_dto "vendors-backend/internal/features/users/dto"
	users_enums "vendors-backend/internal/features/users/enums"
	users_models "vendors-backend/internal/features/users/models"
	users_repositories "vendors-backend/internal/features/users/repositories"
	users_services "vendors-backend/internal/features/users/services"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const TestUserPassword = "test-password-123"

// CreateTestUser stores a fresh active user with a random email and
// returns a signed token for it.
func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	user := CreateTestUserModel(role)

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func CreateTestUserModel(role users_enums.UserRole) *users_models.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	hashedPasswordStr := string(hashedPassword)
	suffix := uuid.New().String()[:12]

	user := &users_models.User{
		Login:          "test_" + suffix,
		Email:          fmt.Sprintf("test-%s@example.com", suffix),
		DisplayName:    "Test User " + suffix,
		HashedPassword: &hashedPasswordStr,
		Role:           role,
		Status:         users_enums.UserStatusActive,
	}

	if err := users_repositories.GetUserRepository().CreateUser(user); err != nil {
		panic(err)
	}

	return user
}
