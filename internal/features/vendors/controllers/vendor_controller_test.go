package vendors_controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"vendors-backend/internal/features/audit_logs"
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	memberships_services "vendors-backend/internal/features/memberships/services"
	memberships_testing "vendors-backend/internal/features/memberships/testing"
	users_enums "vendors-backend/internal/features/users/enums"
	users_middleware "vendors-backend/internal/features/users/middleware"
	users_services "vendors-backend/internal/features/users/services"
	users_testing "vendors-backend/internal/features/users/testing"
	vendors_dto "vendors-backend/internal/features/vendors/dto"
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_testing "vendors-backend/internal/features/vendors/testing"
	test_utils "vendors-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.Use(users_middleware.OptionalAuthMiddleware(users_services.GetUserService()))

	GetVendorController().RegisterRoutes(v1)

	audit_logs.SetupDependencies()
	memberships_services.SetupDependencies()

	return router
}

func Test_CreateVendor_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name           string
		role           *users_enums.UserRole
		expectedStatus int
	}{
		{"admin can create", func() *users_enums.UserRole { r := users_enums.UserRoleAdmin; return &r }(), http.StatusCreated},
		{"member cannot create", func() *users_enums.UserRole { r := users_enums.UserRoleMember; return &r }(), http.StatusForbidden},
		{"anonymous cannot create", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := createTestRouter()

			token := ""
			if tt.role != nil {
				token = "Bearer " + users_testing.CreateTestUser(*tt.role).Token
			}

			test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/vendors",
				token,
				vendors_dto.CreateVendorRequestDTO{Title: "Permission Vendor"},
				tt.expectedStatus,
			)
		})
	}
}

func Test_CreateVendor_WhenPublished_SeedsAuthorAsOwner(t *testing.T) {
	router := createTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var response vendors_dto.VendorResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/vendors",
		"Bearer "+admin.Token,
		vendors_dto.CreateVendorRequestDTO{Title: "Seeded Vendor"},
		http.StatusCreated,
		&response,
	)

	role, err := memberships_repositories.GetMembershipRepository().GetRole(response.ID, admin.UserID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, memberships_enums.VendorRoleOwner, *role)
}

func Test_CreateVendor_AsDraft_DoesNotSeedOwnerUntilPublished(t *testing.T) {
	router := createTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var response vendors_dto.VendorResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/vendors",
		"Bearer "+admin.Token,
		vendors_dto.CreateVendorRequestDTO{Title: "Draft Vendor", Status: "draft"},
		http.StatusCreated,
		&response,
	)

	repository := memberships_repositories.GetMembershipRepository()
	count, err := repository.CountByVendorAndRole(response.ID, "")
	require.NoError(t, err)
	assert.Zero(t, count)

	status := "publish"
	test_utils.MakePatchRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/vendors/%d", response.ID),
		"Bearer "+admin.Token,
		vendors_dto.UpdateVendorRequestDTO{Status: &status},
		http.StatusOK,
	)

	count, err = repository.CountByVendorAndRole(response.ID, memberships_enums.VendorRoleOwner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func Test_CreateVendor_WithMalformedBody_ReturnsValidationError(t *testing.T) {
	router := createTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	test_utils.MakePostRequest(t, router, "/api/v1/vendors", "Bearer "+admin.Token, `{"title":`, http.StatusUnprocessableEntity)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/vendors",
		"Bearer "+admin.Token,
		vendors_dto.CreateVendorRequestDTO{Title: ""},
		http.StatusUnprocessableEntity,
	)
}

func Test_GetVendor_OnlyPublishedVendorsAreVisible(t *testing.T) {
	router := createTestRouter()
	author := users_testing.CreateTestUser(users_enums.UserRoleMember)
	published := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)
	draft := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusDraft)

	var response vendors_dto.VendorResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/vendors/%d", published.ID),
		"",
		http.StatusOK,
		&response,
	)
	assert.Equal(t, published.Title, response.Title)

	test_utils.MakeGetRequest(t, router, fmt.Sprintf("/api/v1/vendors/%d", draft.ID), "", http.StatusNotFound)
	test_utils.MakeGetRequest(t, router, "/api/v1/vendors/abc", "", http.StatusBadRequest)
}

func Test_UpdateVendor_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name           string
		role           *memberships_enums.VendorRole
		isGlobalAdmin  bool
		expectedStatus int
	}{
		{"owner can edit", rolePtr(memberships_enums.VendorRoleOwner), false, http.StatusOK},
		{"manager can edit", rolePtr(memberships_enums.VendorRoleManager), false, http.StatusOK},
		{"editor can edit", rolePtr(memberships_enums.VendorRoleEditor), false, http.StatusOK},
		{"viewer cannot edit", rolePtr(memberships_enums.VendorRoleViewer), false, http.StatusForbidden},
		{"non-member cannot edit", nil, false, http.StatusForbidden},
		{"global admin can edit", nil, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := createTestRouter()
			author := users_testing.CreateTestUser(users_enums.UserRoleMember)
			vendor := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)
			token := callerToken(vendor.ID, tt.role, tt.isGlobalAdmin)

			title := "Renamed " + uuid.New().String()[:8]
			test_utils.MakePatchRequest(
				t,
				router,
				fmt.Sprintf("/api/v1/vendors/%d", vendor.ID),
				token,
				vendors_dto.UpdateVendorRequestDTO{Title: &title},
				tt.expectedStatus,
			)
		})
	}
}

func Test_DeleteVendor_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name           string
		role           *memberships_enums.VendorRole
		isGlobalAdmin  bool
		expectedStatus int
	}{
		{"owner can delete", rolePtr(memberships_enums.VendorRoleOwner), false, http.StatusOK},
		{"manager cannot delete", rolePtr(memberships_enums.VendorRoleManager), false, http.StatusForbidden},
		{"editor cannot delete", rolePtr(memberships_enums.VendorRoleEditor), false, http.StatusForbidden},
		{"viewer cannot delete", rolePtr(memberships_enums.VendorRoleViewer), false, http.StatusForbidden},
		{"non-member cannot delete", nil, false, http.StatusForbidden},
		{"global admin can delete", nil, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := createTestRouter()
			author := users_testing.CreateTestUser(users_enums.UserRoleMember)
			vendor := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)
			token := callerToken(vendor.ID, tt.role, tt.isGlobalAdmin)

			test_utils.MakeDeleteRequest(
				t,
				router,
				fmt.Sprintf("/api/v1/vendors/%d", vendor.ID),
				token,
				tt.expectedStatus,
			)
		})
	}
}

func Test_DeleteVendor_RemovesMemberships(t *testing.T) {
	router := createTestRouter()
	author := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)
	memberships_testing.AddMember(vendor.ID, author.UserID, memberships_enums.VendorRoleOwner)
	memberships_testing.CreateTestMember(vendor.ID, memberships_enums.VendorRoleEditor)

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/vendors/%d", vendor.ID),
		"Bearer "+author.Token,
		http.StatusOK,
	)

	var response vendors_dto.DeleteVendorResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &response))
	assert.True(t, response.Deleted)
	assert.Equal(t, vendor.ID, response.ID)

	count, err := memberships_repositories.GetMembershipRepository().CountByVendorAndRole(vendor.ID, "")
	require.NoError(t, err)
	assert.Zero(t, count)

	test_utils.MakeGetRequest(t, router, fmt.Sprintf("/api/v1/vendors/%d", vendor.ID), "", http.StatusNotFound)
}

func Test_SearchVendors_IsPublic(t *testing.T) {
	router := createTestRouter()
	author := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)

	var response vendors_dto.SearchVendorsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/vendors/search?q="+vendor.Title[len("Test Vendor "):]+"&per_page=500",
		"",
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Items, 1)
	assert.Equal(t, vendor.ID, response.Items[0].ID)
	assert.Equal(t, int64(1), response.Total)
}

func rolePtr(role memberships_enums.VendorRole) *memberships_enums.VendorRole {
	return &role
}

func callerToken(vendorID int64, role *memberships_enums.VendorRole, isGlobalAdmin bool) string {
	if isGlobalAdmin {
		return "Bearer " + users_testing.CreateTestUser(users_enums.UserRoleAdmin).Token
	}

	if role != nil {
		return "Bearer " + memberships_testing.CreateTestMember(vendorID, *role).Token
	}

	return "Bearer " + users_testing.CreateTestUser(users_enums.UserRoleMember).Token
}
