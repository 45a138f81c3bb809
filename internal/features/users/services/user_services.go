package users_services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"vendors-backend/internal/config"
	"vendors-backend/internal/features/encryption/secrets"
	users_dto "vendors-backend/internal/features/users/dto"
	users_enums "vendors-backend/internal/features/users/enums"
	users_interfaces "vendors-backend/internal/features/users/interfaces"
	users_models "vendors-backend/internal/features/users/models"
	users_repositories "vendors-backend/internal/features/users/repositories"
	errors_utils "vendors-backend/internal/util/errors"
)

const tokenLifetime = time.Hour * 24 * 30

type UserService struct {
	userRepository   *users_repositories.UserRepository
	secretKeyService *secrets.SecretKeyService
	auditLogWriter   users_interfaces.AuditLogWriter
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("failed to look up user", err)
	}

	// same message for unknown email and bad password
	if user == nil || !user.HasPassword() {
		return nil, errors_utils.Unauthorized("email or password is incorrect")
	}

	if !user.IsActiveUser() {
		return nil, errors_utils.Forbidden("user account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors_utils.Unauthorized("email or password is incorrect")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(fmt.Sprintf("User signed in with email: %s", user.Email), &user.ID)

	return response, nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyService.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user does not exist")
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)
	if !tokenPasswordTime.Equal(user.PasswordCreationTime.Truncate(time.Second)) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyService.GetSecretKey()
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("failed to get secret key", err)
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  strconv.FormatInt(user.ID, 10),
		"exp":                  now.Add(tokenLifetime).Unix(),
		"iat":                  now.Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

// CreateInitialAdmin makes sure the configured administrator exists.
// Without ADMIN_PASSWORD the account is created but cannot sign in
// until a password is set with --new-password.
func (s *UserService) CreateInitialAdmin() error {
	env := config.GetEnv()

	var hashedPassword *string
	if env.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(env.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		hashStr := string(hash)
		hashedPassword = &hashStr
	}

	if err := s.userRepository.CreateInitialAdmin(env.AdminEmail, hashedPassword); err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}

	return nil
}

func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return fmt.Errorf("user with email %s does not exist", email)
	}

	return s.ChangeUserPassword(user.ID, newPassword)
}

func (s *UserService) ChangeUserPassword(userID int64, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.writeAuditLog("Password changed", &userID)

	return nil
}

// CreateUser registers a member account. The caller is responsible for
// choosing a free login.
func (s *UserService) CreateUser(request *users_dto.CreateUserRequest) (*users_models.User, error) {
	if request.Password == "" {
		return nil, errors_utils.Validation("Password is required to create a new user")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	displayName := request.DisplayName
	if displayName == "" {
		displayName = request.Login
	}

	user := &users_models.User{
		Login:          request.Login,
		Email:          request.Email,
		DisplayName:    displayName,
		HashedPassword: &hashedPasswordStr,
		Role:           users_enums.UserRoleMember,
		Status:         users_enums.UserStatusActive,
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.writeAuditLog(fmt.Sprintf("User created with email: %s", user.Email), &user.ID)

	return user, nil
}

func (s *UserService) GetUserByID(userID int64) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) IsLoginTaken(login string) (bool, error) {
	return s.userRepository.IsLoginTaken(login)
}

// IsAdmin reports whether the user holds the system wide administrator
// role. Unknown users are not administrators.
func (s *UserService) IsAdmin(userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsActiveUser() && user.IsAdmin(), nil
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:          user.ID,
		Login:       user.Login,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
}

func (s *UserService) writeAuditLog(message string, userID *int64) {
	if s.auditLogWriter == nil {
		return
	}

	s.auditLogWriter.WriteAuditLog(message, userID, nil)
}
