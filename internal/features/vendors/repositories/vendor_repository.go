package vendors_repositories

import (
	"errors"
	"strings"
	"time"

	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_models "vendors-backend/internal/features/vendors/models"
	"vendors-backend/internal/storage"

	"gorm.io/gorm"
)

type VendorRepository struct{}

type VendorSearchFilter struct {
	Query string
	// every listed term must be assigned to the vendor
	TermIDs []int64
	Limit   int
	Offset  int
}

// CreateVendor stores the vendor together with its term assignments.
func (r *VendorRepository) CreateVendor(
	vendor *vendors_models.Vendor,
	terms map[vendors_enums.Taxonomy][]int64,
) error {
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vendor).Error; err != nil {
			return err
		}

		for taxonomy, termIDs := range terms {
			if err := replaceVendorTerms(tx, vendor.ID, taxonomy, termIDs); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateVendor saves every column of vendor and replaces the term
// assignments of the taxonomies present in terms.
func (r *VendorRepository) UpdateVendor(
	vendor *vendors_models.Vendor,
	terms map[vendors_enums.Taxonomy][]int64,
) error {
	vendor.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(vendor).Error; err != nil {
			return err
		}

		for taxonomy, termIDs := range terms {
			if err := replaceVendorTerms(tx, vendor.ID, taxonomy, termIDs); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *VendorRepository) GetVendorByID(vendorID int64) (*vendors_models.Vendor, error) {
	var vendor vendors_models.Vendor

	if err := storage.GetDb().Where("id = ?", vendorID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &vendor, nil
}

func (r *VendorRepository) Exists(vendorID int64) (bool, error) {
	var count int64

	err := storage.GetDb().
		Model(&vendors_models.Vendor{}).
		Where("id = ?", vendorID).
		Count(&count).Error

	return count > 0, err
}

// LockVendor takes a row lock on the vendor inside tx and reports
// whether the vendor exists. Membership writes that count before they
// act hold this lock so they serialize per vendor.
func (r *VendorRepository) LockVendor(tx *gorm.DB, vendorID int64) (bool, error) {
	var ids []int64

	err := storage.LockForUpdate(tx).
		Model(&vendors_models.Vendor{}).
		Where("id = ?", vendorID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}

	return len(ids) > 0, nil
}

// DeleteVendor removes the vendor and its term assignments. It reports
// false when there was nothing to delete.
func (r *VendorRepository) DeleteVendor(vendorID int64) (bool, error) {
	var deleted bool

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("vendor_id = ?", vendorID).
			Delete(&vendors_models.TermAssignment{}).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ?", vendorID).Delete(&vendors_models.Vendor{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

func (r *VendorRepository) SearchPublished(
	filter VendorSearchFilter,
) ([]*vendors_models.Vendor, int64, error) {
	var total int64
	if err := r.searchQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []*vendors_models.Vendor
	err := r.searchQuery(filter).
		Order("title ASC").
		Order("id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&vendors).Error

	return vendors, total, err
}

func (r *VendorRepository) searchQuery(filter VendorSearchFilter) *gorm.DB {
	db := storage.GetDb()

	query := db.
		Model(&vendors_models.Vendor{}).
		Where("status = ?", vendors_enums.VendorStatusPublish)

	if filter.Query != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern)
	}

	for _, termID := range filter.TermIDs {
		query = query.Where(
			"id IN (?)",
			db.Model(&vendors_models.TermAssignment{}).
				Select("vendor_id").
				Where("term_id = ?", termID),
		)
	}

	return query
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
