package vendors_dto

type VendorContactDTO struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

type VendorMetaDTO struct {
	Headquarters     string           `json:"headquarters"`
	YearsInOperation int              `json:"yearsInOperation"`
	WebsiteURL       string           `json:"websiteUrl"`
	Contact          VendorContactDTO `json:"contact"`
}

type CreateVendorRequestDTO struct {
	Title          string         `json:"title"`
	Status         string         `json:"status"`
	AuthorID       *int64         `json:"authorId"`
	Meta           *VendorMetaDTO `json:"meta"`
	Locations      []int64        `json:"locations"`
	Certifications []int64        `json:"certifications"`
	LogoMediaID    *int64         `json:"logoMediaId"`
}

// UpdateVendorMetaDTO changes only the fields that are present.
type UpdateVendorMetaDTO struct {
	Headquarters     *string           `json:"headquarters"`
	YearsInOperation *int              `json:"yearsInOperation"`
	WebsiteURL       *string           `json:"websiteUrl"`
	Contact          *VendorContactDTO `json:"contact"`
}

type UpdateVendorRequestDTO struct {
	Title          *string              `json:"title"`
	Status         *string              `json:"status"`
	Meta           *UpdateVendorMetaDTO `json:"meta"`
	Locations      *[]int64             `json:"locations"`
	Certifications *[]int64             `json:"certifications"`
	LogoMediaID    *int64               `json:"logoMediaId"`
}

type VendorTaxonomyDTO struct {
	Locations      []string `json:"locations"`
	Certifications []string `json:"certifications"`
}

type BasicInfoSummaryDTO struct {
	Meta           VendorMetaDTO `json:"meta"`
	Locations      []string      `json:"locations"`
	Certifications []string      `json:"certifications"`
	LogoMediaID    int64         `json:"logoMediaId"`
}

type VendorResponseDTO struct {
	ID               int64               `json:"id"`
	Title            string              `json:"title"`
	Status           string              `json:"status"`
	Permalink        string              `json:"permalink"`
	Meta             VendorMetaDTO       `json:"meta"`
	Tax              VendorTaxonomyDTO   `json:"tax"`
	LogoMediaID      int64               `json:"logoMediaId"`
	BasicInfoSummary BasicInfoSummaryDTO `json:"basicInfoSummary"`
}

type VendorSummaryDTO struct {
	ID               int64               `json:"id"`
	Title            string              `json:"title"`
	Permalink        string              `json:"permalink"`
	BasicInfoSummary BasicInfoSummaryDTO `json:"basicInfoSummary"`
}

type SearchVendorsRequestDTO struct {
	Query    string
	Location string
	Cert     string
	PerPage  int
	Page     int
}

type SearchVendorsResponseDTO struct {
	Items []*VendorSummaryDTO `json:"items"`
	Total int64               `json:"total"`
	Pages int                 `json:"pages"`
}

type DeleteVendorResponseDTO struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}
