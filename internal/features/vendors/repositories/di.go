package vendors_repositories

var vendorRepository = &VendorRepository{}
var termRepository = &TermRepository{}

func GetVendorRepository() *VendorRepository {
	return vendorRepository
}

func GetTermRepository() *TermRepository {
	return termRepository
}
