package vendors_enums

type Taxonomy string

const (
	TaxonomyLocation      Taxonomy = "vendor_location"
	TaxonomyCertification Taxonomy = "vendor_certification"
)

func (t Taxonomy) IsValid() bool {
	return t == TaxonomyLocation || t == TaxonomyCertification
}
