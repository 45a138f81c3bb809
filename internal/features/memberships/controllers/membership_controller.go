package memberships_controllers

import (
	"net/http"

	memberships_dto "vendors-backend/internal/features/memberships/dto"
	memberships_services "vendors-backend/internal/features/memberships/services"
	users_middleware "vendors-backend/internal/features/users/middleware"
	errors_utils "vendors-backend/internal/util/errors"
	request_utils "vendors-backend/internal/util/request"

	"github.com/gin-gonic/gin"
)

const (
	defaultMembersPerPage = 100
	maxMembersPerPage     = 200
)

type MembershipController struct {
	membershipService    *memberships_services.MembershipService
	authorizationService *memberships_services.AuthorizationService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/vendors/roles", c.ListRoles)
	router.GET("/vendors/:id/members", c.ListMembers)
	router.POST("/vendors/:id/members", c.AddMember)
	router.PATCH("/vendors/:id/members/:userId", c.UpdateMemberRole)
	router.DELETE("/vendors/:id/members/:userId", c.RemoveMember)
	router.GET("/vendors/:id/my-role", c.GetMyRole)
}

// ListRoles
// @Summary List vendor roles
// @Description Role catalog with the capabilities of each role
// @Tags memberships
// @Produce json
// @Success 200 {object} memberships_dto.ListRolesResponseDTO
// @Router /vendors/roles [get]
func (c *MembershipController) ListRoles(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.membershipService.ListRoles())
}

// ListMembers
// @Summary List vendor members
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param per_page query int false "Page size (1-200)"
// @Param page query int false "Page number"
// @Success 200 {object} memberships_dto.ListMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vendors/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeListMembers(callerID, vendorID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	perPage := request_utils.Clamp(
		request_utils.QueryInt(ctx, "per_page", defaultMembersPerPage),
		1,
		maxMembersPerPage,
	)
	page := max(request_utils.QueryInt(ctx, "page", 1), 1)

	response, err := c.membershipService.ListMembers(vendorID, perPage, (page-1)*perPage)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add vendor member
// @Description Adds an existing user by email, or registers a new user when a password is supplied
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param request body memberships_dto.AddMemberRequestDTO true "Member data"
// @Success 201 {object} memberships_dto.MemberDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vendors/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	var request memberships_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errors_utils.RespondWithError(ctx, errors_utils.Validation("Invalid request format"))
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeAddMember(callerID, vendorID, request.Role); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	member, err := c.membershipService.AddMember(vendorID, &request, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// UpdateMemberRole
// @Summary Change member role
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param userId path int true "User ID"
// @Param request body memberships_dto.UpdateMemberRoleRequestDTO true "New role"
// @Success 200 {object} memberships_dto.MemberDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vendors/{id}/members/{userId} [patch]
func (c *MembershipController) UpdateMemberRole(ctx *gin.Context) {
	vendorID, userID, ok := c.parseMemberPath(ctx)
	if !ok {
		return
	}

	var request memberships_dto.UpdateMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errors_utils.RespondWithError(ctx, errors_utils.Validation("Invalid request format"))
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	err := c.authorizationService.AuthorizeChangeRole(callerID, vendorID, userID, request.Role)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	member, err := c.membershipService.UpdateMemberRole(vendorID, userID, request.Role, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// RemoveMember
// @Summary Remove vendor member
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param userId path int true "User ID"
// @Success 200 {object} memberships_dto.RemoveMemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vendors/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	vendorID, userID, ok := c.parseMemberPath(ctx)
	if !ok {
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeRemoveMember(callerID, vendorID, userID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	response, err := c.membershipService.RemoveMember(vendorID, userID, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMyRole
// @Summary Caller's role on a vendor
// @Description Role is null for anonymous callers and non-members
// @Tags memberships
// @Produce json
// @Param id path int true "Vendor ID"
// @Success 200 {object} memberships_dto.MyRoleResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vendors/{id}/my-role [get]
func (c *MembershipController) GetMyRole(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	response, err := c.membershipService.GetMyRole(vendorID, users_middleware.GetUserIDFromContext(ctx))
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *MembershipController) parseMemberPath(ctx *gin.Context) (int64, int64, bool) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return 0, 0, false
	}

	userID, err := request_utils.ParseIDParam(ctx, "userId", "Invalid user ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return 0, 0, false
	}

	return vendorID, userID, true
}
