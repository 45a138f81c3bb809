package vendors_controllers

import (
	memberships_services "vendors-backend/internal/features/memberships/services"
	vendors_services "vendors-backend/internal/features/vendors/services"
)

var vendorController = &VendorController{
	vendors_services.GetVendorService(),
	memberships_services.GetAuthorizationService(),
}

func GetVendorController() *VendorController {
	return vendorController
}
