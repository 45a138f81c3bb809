package vendors_services

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"vendors-backend/internal/config"
	vendors_dto "vendors-backend/internal/features/vendors/dto"
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_interfaces "vendors-backend/internal/features/vendors/interfaces"
	vendors_models "vendors-backend/internal/features/vendors/models"
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"
	errors_utils "vendors-backend/internal/util/errors"
	request_utils "vendors-backend/internal/util/request"
)

const (
	defaultSearchPerPage = 10
	maxSearchPerPage     = 100
)

type VendorService struct {
	vendorRepository *vendors_repositories.VendorRepository
	termRepository   *vendors_repositories.TermRepository
	logger           *slog.Logger

	publishListeners  []vendors_interfaces.VendorPublishListener
	deletionListeners []vendors_interfaces.VendorDeletionListener
	auditLogWriter    vendors_interfaces.AuditLogWriter
}

func (s *VendorService) AddVendorPublishListener(listener vendors_interfaces.VendorPublishListener) {
	s.publishListeners = append(s.publishListeners, listener)
}

func (s *VendorService) AddVendorDeletionListener(listener vendors_interfaces.VendorDeletionListener) {
	s.deletionListeners = append(s.deletionListeners, listener)
}

func (s *VendorService) SetAuditLogWriter(writer vendors_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// CreateVendor stores a new vendor. authorID defaults to the acting
// user and becomes the seeded owner once the vendor is published.
func (s *VendorService) CreateVendor(
	request *vendors_dto.CreateVendorRequestDTO,
	actorID int64,
) (*vendors_dto.VendorResponseDTO, error) {
	title := sanitizeText(request.Title)
	if title == "" {
		return nil, errors_utils.Validation("Title is required")
	}

	authorID := actorID
	if request.AuthorID != nil && *request.AuthorID > 0 {
		authorID = *request.AuthorID
	}

	vendor := &vendors_models.Vendor{
		Title:    title,
		Status:   vendors_enums.ParseVendorStatus(request.Status),
		AuthorID: authorID,
	}

	if request.Meta != nil {
		vendor.Headquarters = sanitizeText(request.Meta.Headquarters)
		vendor.YearsInOperation = sanitizeYears(request.Meta.YearsInOperation)
		vendor.WebsiteURL = sanitizeURL(request.Meta.WebsiteURL)
		applyContact(vendor, request.Meta.Contact)
	}

	if request.LogoMediaID != nil && *request.LogoMediaID > 0 {
		vendor.LogoMediaID = *request.LogoMediaID
	}

	terms := map[vendors_enums.Taxonomy][]int64{}
	if request.Locations != nil {
		terms[vendors_enums.TaxonomyLocation] = request.Locations
	}
	if request.Certifications != nil {
		terms[vendors_enums.TaxonomyCertification] = request.Certifications
	}

	if err := s.validateTerms(terms); err != nil {
		return nil, err
	}

	if err := s.vendorRepository.CreateVendor(vendor, terms); err != nil {
		return nil, errors_utils.CreateFailed("Failed to create vendor", err)
	}

	s.writeAuditLog(fmt.Sprintf("Vendor created: %s", vendor.Title), actorID, vendor.ID)
	s.notifyPublished(vendor)

	return s.toResponse(vendor)
}

// GetPublishedVendor hides drafts and pending vendors behind not found.
func (s *VendorService) GetPublishedVendor(vendorID int64) (*vendors_dto.VendorResponseDTO, error) {
	vendor, err := s.vendorRepository.GetVendorByID(vendorID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load vendor", err)
	}

	if vendor == nil || !vendor.IsPublished() {
		return nil, errors_utils.NotFound("Vendor not found")
	}

	return s.toResponse(vendor)
}

func (s *VendorService) UpdateVendor(
	vendorID int64,
	request *vendors_dto.UpdateVendorRequestDTO,
	actorID int64,
) (*vendors_dto.VendorResponseDTO, error) {
	vendor, err := s.vendorRepository.GetVendorByID(vendorID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load vendor", err)
	}

	if vendor == nil {
		return nil, errors_utils.NotFound("Vendor not found")
	}

	if request.Title != nil {
		title := sanitizeText(*request.Title)
		if title == "" {
			return nil, errors_utils.Validation("Title cannot be empty")
		}
		vendor.Title = title
	}

	if request.Status != nil {
		vendor.Status = vendors_enums.ParseVendorStatus(*request.Status)
	}

	if meta := request.Meta; meta != nil {
		if meta.Headquarters != nil {
			vendor.Headquarters = sanitizeText(*meta.Headquarters)
		}
		if meta.YearsInOperation != nil {
			vendor.YearsInOperation = sanitizeYears(*meta.YearsInOperation)
		}
		if meta.WebsiteURL != nil {
			vendor.WebsiteURL = sanitizeURL(*meta.WebsiteURL)
		}
		if meta.Contact != nil {
			applyContact(vendor, *meta.Contact)
		}
	}

	if request.LogoMediaID != nil {
		vendor.LogoMediaID = max(*request.LogoMediaID, 0)
	}

	terms := map[vendors_enums.Taxonomy][]int64{}
	if request.Locations != nil {
		terms[vendors_enums.TaxonomyLocation] = *request.Locations
	}
	if request.Certifications != nil {
		terms[vendors_enums.TaxonomyCertification] = *request.Certifications
	}

	if err := s.validateTerms(terms); err != nil {
		return nil, err
	}

	if err := s.vendorRepository.UpdateVendor(vendor, terms); err != nil {
		return nil, errors_utils.UpdateFailed("Failed to update vendor", err)
	}

	s.writeAuditLog(fmt.Sprintf("Vendor updated: %s", vendor.Title), actorID, vendor.ID)
	s.notifyPublished(vendor)

	return s.toResponse(vendor)
}

// DeleteVendor removes the vendor, then lets deletion listeners clean up
// what they own. Listener failures do not affect the result.
func (s *VendorService) DeleteVendor(
	vendorID int64,
	actorID int64,
) (*vendors_dto.DeleteVendorResponseDTO, error) {
	vendor, err := s.vendorRepository.GetVendorByID(vendorID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load vendor", err)
	}

	if vendor == nil {
		return nil, errors_utils.NotFound("Vendor not found")
	}

	deleted, err := s.vendorRepository.DeleteVendor(vendorID)
	if err != nil {
		return nil, errors_utils.DeleteFailed("Failed to delete vendor", err)
	}

	if !deleted {
		return nil, errors_utils.DeleteFailed("Failed to delete vendor", nil)
	}

	s.logger.Info("vendor deleted", "vendorId", vendorID, "actorId", actorID)

	for _, listener := range s.deletionListeners {
		listener.OnVendorDeleted(vendorID)
	}

	s.writeAuditLog(fmt.Sprintf("Vendor deleted: %s", vendor.Title), actorID, vendorID)

	return &vendors_dto.DeleteVendorResponseDTO{Deleted: true, ID: vendorID}, nil
}

func (s *VendorService) SearchVendors(
	request *vendors_dto.SearchVendorsRequestDTO,
) (*vendors_dto.SearchVendorsResponseDTO, error) {
	perPage := request.PerPage
	if perPage == 0 {
		perPage = defaultSearchPerPage
	}
	perPage = request_utils.Clamp(perPage, 1, maxSearchPerPage)
	page := max(request.Page, 1)

	filter := vendors_repositories.VendorSearchFilter{
		Query:  strings.TrimSpace(request.Query),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	for taxonomy, value := range map[vendors_enums.Taxonomy]string{
		vendors_enums.TaxonomyLocation:      request.Location,
		vendors_enums.TaxonomyCertification: request.Cert,
	} {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		termID, found, err := s.resolveTerm(taxonomy, value)
		if err != nil {
			return nil, errors_utils.DependencyUnavailable("Failed to resolve taxonomy filter", err)
		}

		// an unknown term cannot match any vendor
		if !found {
			return &vendors_dto.SearchVendorsResponseDTO{
				Items: []*vendors_dto.VendorSummaryDTO{},
			}, nil
		}

		filter.TermIDs = append(filter.TermIDs, termID)
	}

	vendors, total, err := s.vendorRepository.SearchPublished(filter)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to search vendors", err)
	}

	termsByVendor, err := s.loadTerms(vendors)
	if err != nil {
		return nil, err
	}

	items := make([]*vendors_dto.VendorSummaryDTO, 0, len(vendors))
	for _, vendor := range vendors {
		summary := buildSummary(vendor, termsByVendor[vendor.ID])

		items = append(items, &vendors_dto.VendorSummaryDTO{
			ID:               vendor.ID,
			Title:            vendor.Title,
			Permalink:        permalink(vendor.ID),
			BasicInfoSummary: summary,
		})
	}

	return &vendors_dto.SearchVendorsResponseDTO{
		Items: items,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(perPage))),
	}, nil
}

func (s *VendorService) resolveTerm(
	taxonomy vendors_enums.Taxonomy,
	value string,
) (int64, bool, error) {
	var term *vendors_models.Term
	var err error

	if termID, parseErr := strconv.ParseInt(value, 10, 64); parseErr == nil {
		term, err = s.termRepository.GetTermByID(taxonomy, termID)
	} else {
		term, err = s.termRepository.GetTermBySlug(taxonomy, value)
	}

	if err != nil || term == nil {
		return 0, false, err
	}

	return term.ID, true, nil
}

func (s *VendorService) validateTerms(terms map[vendors_enums.Taxonomy][]int64) error {
	for taxonomy, termIDs := range terms {
		unique := map[int64]bool{}
		for _, termID := range termIDs {
			if termID <= 0 {
				return errors_utils.Validation(fmt.Sprintf("Invalid %s term id", taxonomyLabel(taxonomy)))
			}
			unique[termID] = true
		}

		if len(unique) == 0 {
			continue
		}

		ids := make([]int64, 0, len(unique))
		for termID := range unique {
			ids = append(ids, termID)
		}

		found, err := s.termRepository.GetTermsByIDs(taxonomy, ids)
		if err != nil {
			return errors_utils.DependencyUnavailable("Failed to load taxonomy terms", err)
		}

		if len(found) != len(unique) {
			return errors_utils.Validation(fmt.Sprintf("Unknown %s term id", taxonomyLabel(taxonomy)))
		}
	}

	return nil
}

func (s *VendorService) loadTerms(
	vendors []*vendors_models.Vendor,
) (map[int64][]*vendors_repositories.VendorTermRow, error) {
	vendorIDs := make([]int64, 0, len(vendors))
	for _, vendor := range vendors {
		vendorIDs = append(vendorIDs, vendor.ID)
	}

	rows, err := s.termRepository.GetTermsForVendors(vendorIDs)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load vendor terms", err)
	}

	termsByVendor := make(map[int64][]*vendors_repositories.VendorTermRow, len(vendors))
	for _, row := range rows {
		termsByVendor[row.VendorID] = append(termsByVendor[row.VendorID], row)
	}

	return termsByVendor, nil
}

func (s *VendorService) toResponse(vendor *vendors_models.Vendor) (*vendors_dto.VendorResponseDTO, error) {
	termsByVendor, err := s.loadTerms([]*vendors_models.Vendor{vendor})
	if err != nil {
		return nil, err
	}

	summary := buildSummary(vendor, termsByVendor[vendor.ID])

	return &vendors_dto.VendorResponseDTO{
		ID:        vendor.ID,
		Title:     vendor.Title,
		Status:    string(vendor.Status),
		Permalink: permalink(vendor.ID),
		Meta:      summary.Meta,
		Tax: vendors_dto.VendorTaxonomyDTO{
			Locations:      summary.Locations,
			Certifications: summary.Certifications,
		},
		LogoMediaID:      vendor.LogoMediaID,
		BasicInfoSummary: summary,
	}, nil
}

func (s *VendorService) notifyPublished(vendor *vendors_models.Vendor) {
	if !vendor.IsPublished() {
		return
	}

	for _, listener := range s.publishListeners {
		listener.OnVendorPublished(vendor.ID, vendor.AuthorID)
	}
}

func (s *VendorService) writeAuditLog(message string, actorID int64, vendorID int64) {
	if s.auditLogWriter == nil {
		return
	}

	var userID *int64
	if actorID > 0 {
		userID = &actorID
	}

	s.auditLogWriter.WriteAuditLog(message, userID, &vendorID)
}

func buildSummary(
	vendor *vendors_models.Vendor,
	terms []*vendors_repositories.VendorTermRow,
) vendors_dto.BasicInfoSummaryDTO {
	summary := vendors_dto.BasicInfoSummaryDTO{
		Meta: vendors_dto.VendorMetaDTO{
			Headquarters:     vendor.Headquarters,
			YearsInOperation: vendor.YearsInOperation,
			WebsiteURL:       vendor.WebsiteURL,
			Contact: vendors_dto.VendorContactDTO{
				Email:    vendor.Contact.Email,
				Phone:    vendor.Contact.Phone,
				Whatsapp: vendor.Contact.Whatsapp,
			},
		},
		Locations:      []string{},
		Certifications: []string{},
		LogoMediaID:    vendor.LogoMediaID,
	}

	for _, term := range terms {
		switch term.Taxonomy {
		case vendors_enums.TaxonomyLocation:
			summary.Locations = append(summary.Locations, term.Name)
		case vendors_enums.TaxonomyCertification:
			summary.Certifications = append(summary.Certifications, term.Name)
		}
	}

	return summary
}

func applyContact(vendor *vendors_models.Vendor, contact vendors_dto.VendorContactDTO) {
	sanitized := sanitizeContact(contact)

	vendor.Contact = vendors_models.VendorContact{
		Email:    sanitized.Email,
		Phone:    sanitized.Phone,
		Whatsapp: sanitized.Whatsapp,
	}
}

func permalink(vendorID int64) string {
	return fmt.Sprintf("%s/vendors/%d", config.GetEnv().PublicBaseURL, vendorID)
}

func taxonomyLabel(taxonomy vendors_enums.Taxonomy) string {
	if taxonomy == vendors_enums.TaxonomyCertification {
		return "certification"
	}

	return "location"
}
