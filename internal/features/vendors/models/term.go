package vendors_models

import (
	vendors_enums "vendors-backend/internal/features/vendors/enums"
)

// Term is a classification entry owned by the taxonomy store. Vendors
// only reference terms, they never create them.
type Term struct {
	ID       int64                  `json:"id"       gorm:"column:id;primaryKey;autoIncrement"`
	Taxonomy vendors_enums.Taxonomy `json:"taxonomy" gorm:"column:taxonomy;size:32;not null;uniqueIndex:idx_vendor_terms_taxonomy_slug,priority:1"`
	Name     string                 `json:"name"     gorm:"column:name;size:200;not null"`
	Slug     string                 `json:"slug"     gorm:"column:slug;size:200;not null;uniqueIndex:idx_vendor_terms_taxonomy_slug,priority:2"`
}

func (Term) TableName() string {
	return "vendor_terms"
}

type TermAssignment struct {
	VendorID int64                  `gorm:"column:vendor_id;primaryKey"`
	TermID   int64                  `gorm:"column:term_id;primaryKey;index:idx_vendor_term_assignments_term_id"`
	Taxonomy vendors_enums.Taxonomy `gorm:"column:taxonomy;size:32;not null"`
}

func (TermAssignment) TableName() string {
	return "vendor_term_assignments"
}
