package vendors_repositories

import (
	"errors"

	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_models "vendors-backend/internal/features/vendors/models"
	"vendors-backend/internal/storage"

	"gorm.io/gorm"
)

type TermRepository struct{}

// VendorTermRow is a term joined with the vendor it is assigned to.
type VendorTermRow struct {
	VendorID int64                  `gorm:"column:vendor_id"`
	TermID   int64                  `gorm:"column:term_id"`
	Taxonomy vendors_enums.Taxonomy `gorm:"column:taxonomy"`
	Name     string                 `gorm:"column:name"`
	Slug     string                 `gorm:"column:slug"`
}

func (r *TermRepository) CreateTerm(term *vendors_models.Term) error {
	return storage.GetDb().Create(term).Error
}

func (r *TermRepository) GetTermsByIDs(
	taxonomy vendors_enums.Taxonomy,
	termIDs []int64,
) ([]*vendors_models.Term, error) {
	var terms []*vendors_models.Term
	if len(termIDs) == 0 {
		return terms, nil
	}

	err := storage.GetDb().
		Where("taxonomy = ? AND id IN ?", taxonomy, termIDs).
		Find(&terms).Error

	return terms, err
}

func (r *TermRepository) GetTermByID(
	taxonomy vendors_enums.Taxonomy,
	termID int64,
) (*vendors_models.Term, error) {
	return r.findTerm(storage.GetDb().Where("taxonomy = ? AND id = ?", taxonomy, termID))
}

func (r *TermRepository) GetTermBySlug(
	taxonomy vendors_enums.Taxonomy,
	slug string,
) (*vendors_models.Term, error) {
	return r.findTerm(storage.GetDb().Where("taxonomy = ? AND slug = ?", taxonomy, slug))
}

func (r *TermRepository) GetTermsForVendors(vendorIDs []int64) ([]*VendorTermRow, error) {
	var rows []*VendorTermRow
	if len(vendorIDs) == 0 {
		return rows, nil
	}

	err := storage.GetDb().
		Table("vendor_term_assignments a").
		Select("a.vendor_id, t.id AS term_id, t.taxonomy, t.name, t.slug").
		Joins("JOIN vendor_terms t ON t.id = a.term_id").
		Where("a.vendor_id IN ?", vendorIDs).
		Order("t.name ASC, t.id ASC").
		Scan(&rows).Error

	return rows, err
}

func (r *TermRepository) findTerm(query *gorm.DB) (*vendors_models.Term, error) {
	var term vendors_models.Term

	if err := query.First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &term, nil
}

// replaceVendorTerms drops every assignment of the taxonomy for the
// vendor and stores termIDs instead.
func replaceVendorTerms(
	tx *gorm.DB,
	vendorID int64,
	taxonomy vendors_enums.Taxonomy,
	termIDs []int64,
) error {
	err := tx.
		Where("vendor_id = ? AND taxonomy = ?", vendorID, taxonomy).
		Delete(&vendors_models.TermAssignment{}).Error
	if err != nil {
		return err
	}

	seen := make(map[int64]bool, len(termIDs))
	assignments := make([]*vendors_models.TermAssignment, 0, len(termIDs))

	for _, termID := range termIDs {
		if seen[termID] {
			continue
		}
		seen[termID] = true

		assignments = append(assignments, &vendors_models.TermAssignment{
			VendorID: vendorID,
			TermID:   termID,
			Taxonomy: taxonomy,
		})
	}

	if len(assignments) == 0 {
		return nil
	}

	return tx.Create(&assignments).Error
}
