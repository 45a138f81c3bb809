package vendors_controllers

import (
	"net/http"

	memberships_services "vendors-backend/internal/features/memberships/services"
	users_middleware "vendors-backend/internal/features/users/middleware"
	vendors_dto "vendors-backend/internal/features/vendors/dto"
	vendors_services "vendors-backend/internal/features/vendors/services"
	errors_utils "vendors-backend/internal/util/errors"
	request_utils "vendors-backend/internal/util/request"

	"github.com/gin-gonic/gin"
)

type VendorController struct {
	vendorService        *vendors_services.VendorService
	authorizationService *memberships_services.AuthorizationService
}

func (c *VendorController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/vendors/search", c.SearchVendors)
	router.GET("/vendors/:id", c.GetVendor)
	router.POST("/vendors", c.CreateVendor)
	router.PATCH("/vendors/:id", c.UpdateVendor)
	router.DELETE("/vendors/:id", c.DeleteVendor)
}

// SearchVendors
// @Summary Search published vendors
// @Tags vendors
// @Produce json
// @Param q query string false "Title filter"
// @Param location query string false "Location term id or slug"
// @Param cert query string false "Certification term id or slug"
// @Param per_page query int false "Page size (1-100)"
// @Param page query int false "Page number"
// @Success 200 {object} vendors_dto.SearchVendorsResponseDTO
// @Router /vendors/search [get]
func (c *VendorController) SearchVendors(ctx *gin.Context) {
	request := &vendors_dto.SearchVendorsRequestDTO{
		Query:    ctx.Query("q"),
		Location: ctx.Query("location"),
		Cert:     ctx.Query("cert"),
		PerPage:  request_utils.QueryInt(ctx, "per_page", 0),
		Page:     request_utils.QueryInt(ctx, "page", 1),
	}

	response, err := c.vendorService.SearchVendors(request)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetVendor
// @Summary Get published vendor profile
// @Tags vendors
// @Produce json
// @Param id path int true "Vendor ID"
// @Success 200 {object} vendors_dto.VendorResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vendors/{id} [get]
func (c *VendorController) GetVendor(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	response, err := c.vendorService.GetPublishedVendor(vendorID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateVendor
// @Summary Create vendor
// @Description Administrators only. Publishing seeds the author as owner.
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body vendors_dto.CreateVendorRequestDTO true "Vendor data"
// @Success 201 {object} vendors_dto.VendorResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vendors [post]
func (c *VendorController) CreateVendor(ctx *gin.Context) {
	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeCreateVendor(callerID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	var request vendors_dto.CreateVendorRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errors_utils.RespondWithError(ctx, errors_utils.Validation("Invalid request format"))
		return
	}

	response, err := c.vendorService.CreateVendor(&request, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// UpdateVendor
// @Summary Update vendor
// @Description Only supplied fields change
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param request body vendors_dto.UpdateVendorRequestDTO true "Changed fields"
// @Success 200 {object} vendors_dto.VendorResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vendors/{id} [patch]
func (c *VendorController) UpdateVendor(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeEditVendor(callerID, vendorID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	var request vendors_dto.UpdateVendorRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errors_utils.RespondWithError(ctx, errors_utils.Validation("Invalid request format"))
		return
	}

	response, err := c.vendorService.UpdateVendor(vendorID, &request, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteVendor
// @Summary Delete vendor
// @Description Removes the vendor together with its memberships
// @Tags vendors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} vendors_dto.DeleteVendorResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vendors/{id} [delete]
func (c *VendorController) DeleteVendor(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeDeleteVendor(callerID, vendorID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	response, err := c.vendorService.DeleteVendor(vendorID, callerID)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
