package users_controllers

import (
	"net/http"
	"strings"
	"testing"

	users_dto "vendors-backend/internal/features/users/dto"
	users_enums "vendors-backend/internal/features/users/enums"
	users_middleware "vendors-backend/internal/features/users/middleware"
	users_models "vendors-backend/internal/features/users/models"
	users_services "vendors-backend/internal/features/users/services"
	users_testing "vendors-backend/internal/features/users/testing"
	"vendors-backend/internal/storage"
	test_utils "vendors-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createTestRouter(limiter *rate.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := &UserController{users_services.GetUserService(), limiter}

	v1 := router.Group("/api/v1")
	controller.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	controller.RegisterProtectedRoutes(protected)

	return router
}

func Test_SignIn_WithValidCredentials_ReturnsUsableToken(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))
	user := users_testing.CreateTestUserModel(users_enums.UserRoleMember)

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: users_testing.TestUserPassword},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, user.ID, response.UserID)
	assert.NotEmpty(t, response.Token)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+response.Token,
		http.StatusOK,
		&profile,
	)

	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, user.Login, profile.Login)
	assert.Equal(t, users_enums.UserRoleMember, profile.Role)
}

func Test_SignIn_EmailIsCaseInsensitive(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))
	user := users_testing.CreateTestUserModel(users_enums.UserRoleMember)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "  " + strings.ToUpper(user.Email) + " ", Password: users_testing.TestUserPassword},
		http.StatusOK,
	)
}

func Test_SignIn_WithWrongCredentials_ReturnsUnauthorized(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))
	user := users_testing.CreateTestUserModel(users_enums.UserRoleMember)

	tests := []struct {
		name    string
		request users_dto.SignInRequestDTO
	}{
		{"wrong password", users_dto.SignInRequestDTO{Email: user.Email, Password: "wrong-password"}},
		{"unknown email", users_dto.SignInRequestDTO{Email: "nobody@example.com", Password: "whatever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/users/signin",
				"",
				tt.request,
				http.StatusUnauthorized,
			)
			assert.Contains(t, string(resp.Body), "email or password is incorrect")
		})
	}
}

func Test_SignIn_WithDeactivatedUser_ReturnsForbidden(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))
	user := users_testing.CreateTestUserModel(users_enums.UserRoleMember)
	deactivateUser(t, user)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: users_testing.TestUserPassword},
		http.StatusForbidden,
	)
}

func Test_SignIn_WithMissingFields_ReturnsBadRequest(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "someone@example.com"},
		http.StatusBadRequest,
	)
}

func Test_SignIn_WhenRateLimited_ReturnsTooManyRequests(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Limit(0.001), 1))
	request := users_dto.SignInRequestDTO{Email: "nobody@example.com", Password: "whatever"}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", request, http.StatusUnauthorized)
	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", request, http.StatusTooManyRequests)
}

func Test_GetCurrentUser_WithoutValidToken_ReturnsUnauthorized(t *testing.T) {
	router := createTestRouter(rate.NewLimiter(rate.Inf, 0))
	user := users_testing.CreateTestUserModel(users_enums.UserRoleMember)
	signIn, err := users_services.GetUserService().GenerateAccessToken(user)
	require.NoError(t, err)

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer not-a-token", http.StatusUnauthorized)

	deactivateUser(t, user)
	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer "+signIn.Token, http.StatusUnauthorized)
}

func deactivateUser(t *testing.T, user *users_models.User) {
	t.Helper()

	err := storage.GetDb().
		Model(&users_models.User{}).
		Where("id = ?", user.ID).
		Update("status", users_enums.UserStatusDeactivated).Error
	require.NoError(t, err)
}
