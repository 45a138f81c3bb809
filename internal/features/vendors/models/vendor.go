package vendors_models

import (
	"time"

	vendors_enums "vendors-backend/internal/features/vendors/enums"
)

type Vendor struct {
	ID               int64                      `json:"id"               gorm:"column:id;primaryKey;autoIncrement"`
	Title            string                     `json:"title"            gorm:"column:title;size:255;not null"`
	Status           vendors_enums.VendorStatus `json:"status"           gorm:"column:status;size:20;not null;index:idx_vendors_status"`
	AuthorID         int64                      `json:"authorId"         gorm:"column:author_id;not null;index:idx_vendors_author_id"`
	Headquarters     string                     `json:"headquarters"     gorm:"column:headquarters;size:255;not null;default:''"`
	YearsInOperation int                        `json:"yearsInOperation" gorm:"column:years_in_operation;not null;default:0"`
	WebsiteURL       string                     `json:"websiteUrl"       gorm:"column:website_url;size:2048;not null;default:''"`
	Contact          VendorContact              `json:"contact"          gorm:"embedded;embeddedPrefix:contact_"`
	LogoMediaID      int64                      `json:"logoMediaId"      gorm:"column:logo_media_id;not null;default:0"`
	CreatedAt        time.Time                  `json:"createdAt"        gorm:"column:created_at;not null"`
	UpdatedAt        time.Time                  `json:"updatedAt"        gorm:"column:updated_at;not null"`
}

func (Vendor) TableName() string {
	return "vendors"
}

func (v *Vendor) IsPublished() bool {
	return v.Status == vendors_enums.VendorStatusPublish
}

type VendorContact struct {
	Email    string `json:"email"    gorm:"column:email;size:100;not null;default:''"`
	Phone    string `json:"phone"    gorm:"column:phone;size:32;not null;default:''"`
	Whatsapp string `json:"whatsapp" gorm:"column:whatsapp;size:32;not null;default:''"`
}
