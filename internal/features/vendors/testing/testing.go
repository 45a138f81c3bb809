package vendors_testing

import (
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_models "vendors-backend/internal/features/vendors/models"
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"

	"github.com/google/uuid"
)

// CreateTestVendor stores a vendor directly in the repository. No
// publish listeners run, so the vendor starts without members.
func CreateTestVendor(authorID int64, status vendors_enums.VendorStatus) *vendors_models.Vendor {
	vendor := &vendors_models.Vendor{
		Title:    "Test Vendor " + uuid.New().String()[:8],
		Status:   status,
		AuthorID: authorID,
	}

	if err := vendors_repositories.GetVendorRepository().CreateVendor(vendor, nil); err != nil {
		panic(err)
	}

	return vendor
}

func CreateTestTerm(taxonomy vendors_enums.Taxonomy, name string) *vendors_models.Term {
	term := &vendors_models.Term{
		Taxonomy: taxonomy,
		Name:     name,
		Slug:     "term-" + uuid.New().String()[:8],
	}

	if err := vendors_repositories.GetTermRepository().CreateTerm(term); err != nil {
		panic(err)
	}

	return term
}
