package vendors_services

import (
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"
	"vendors-backend/internal/util/logger"
)

var vendorService = &VendorService{
	vendorRepository: vendors_repositories.GetVendorRepository(),
	termRepository:   vendors_repositories.GetTermRepository(),
	logger:           logger.GetLogger(),
}

func GetVendorService() *VendorService {
	return vendorService
}
