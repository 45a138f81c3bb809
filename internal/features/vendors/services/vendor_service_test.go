package vendors_services

import (
	"fmt"
	"strconv"
	"testing"

	users_enums "vendors-backend/internal/features/users/enums"
	users_testing "vendors-backend/internal/features/users/testing"
	vendors_dto "vendors-backend/internal/features/vendors/dto"
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"
	vendors_testing "vendors-backend/internal/features/vendors/testing"
	errors_utils "vendors-backend/internal/util/errors"
	"vendors-backend/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishEvent struct {
	vendorID int64
	authorID int64
}

type recordingListener struct {
	published []publishEvent
	deleted   []int64
}

func (l *recordingListener) OnVendorPublished(vendorID int64, authorID int64) {
	l.published = append(l.published, publishEvent{vendorID, authorID})
}

func (l *recordingListener) OnVendorDeleted(vendorID int64) {
	l.deleted = append(l.deleted, vendorID)
}

func createTestService() (*VendorService, *recordingListener) {
	listener := &recordingListener{}

	service := &VendorService{
		vendorRepository: vendors_repositories.GetVendorRepository(),
		termRepository:   vendors_repositories.GetTermRepository(),
		logger:           logger.GetLogger(),
	}
	service.AddVendorPublishListener(listener)
	service.AddVendorDeletionListener(listener)

	return service, listener
}

func Test_CreateVendor_SanitizesInputAndNotifiesPublish(t *testing.T) {
	service, listener := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	location := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyLocation, "Lisbon")
	certification := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyCertification, "ISO 9001")

	response, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
		Title: "  <b>Acme</b>   Supplies ",
		Meta: &vendors_dto.VendorMetaDTO{
			Headquarters:     "<i>Lisbon</i>, Portugal",
			YearsInOperation: -15,
			WebsiteURL:       "not a url",
			Contact: vendors_dto.VendorContactDTO{
				Email: "sales@acme.example.com",
				Phone: "+351 21 000 0000",
			},
		},
		Locations:      []int64{location.ID},
		Certifications: []int64{certification.ID},
	}, admin.UserID)
	require.NoError(t, err)

	assert.Equal(t, "Acme Supplies", response.Title)
	assert.Equal(t, string(vendors_enums.VendorStatusPublish), response.Status)
	assert.Equal(t, "Lisbon, Portugal", response.Meta.Headquarters)
	assert.Equal(t, 15, response.Meta.YearsInOperation)
	assert.Equal(t, "", response.Meta.WebsiteURL)
	assert.Equal(t, "+351210000000", response.Meta.Contact.Phone)
	assert.Equal(t, []string{"Lisbon"}, response.Tax.Locations)
	assert.Equal(t, []string{"ISO 9001"}, response.Tax.Certifications)
	assert.Equal(t, response.Tax.Locations, response.BasicInfoSummary.Locations)
	assert.Contains(t, response.Permalink, fmt.Sprintf("/vendors/%d", response.ID))

	require.Len(t, listener.published, 1)
	assert.Equal(t, publishEvent{response.ID, admin.UserID}, listener.published[0])
}

func Test_CreateVendor_WithAuthor_NotifiesAuthor(t *testing.T) {
	service, listener := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	author := users_testing.CreateTestUser(users_enums.UserRoleMember)

	response, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
		Title:    "Authored Vendor",
		AuthorID: &author.UserID,
	}, admin.UserID)
	require.NoError(t, err)

	require.Len(t, listener.published, 1)
	assert.Equal(t, publishEvent{response.ID, author.UserID}, listener.published[0])
}

func Test_CreateVendor_AsDraft_DoesNotNotify(t *testing.T) {
	service, listener := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	response, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
		Title:  "Draft Vendor",
		Status: string(vendors_enums.VendorStatusDraft),
	}, admin.UserID)
	require.NoError(t, err)

	assert.Equal(t, string(vendors_enums.VendorStatusDraft), response.Status)
	assert.Empty(t, listener.published)

	_, err = service.GetPublishedVendor(response.ID)
	assert.True(t, errors_utils.IsKind(err, errors_utils.KindNotFound))
}

func Test_CreateVendor_ValidatesInput(t *testing.T) {
	service, _ := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	location := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyLocation, "Porto")

	tests := []struct {
		name    string
		request vendors_dto.CreateVendorRequestDTO
	}{
		{"empty title", vendors_dto.CreateVendorRequestDTO{Title: "   "}},
		{"markup only title", vendors_dto.CreateVendorRequestDTO{Title: "<br/>"}},
		{"unknown location", vendors_dto.CreateVendorRequestDTO{Title: "X", Locations: []int64{999999999}}},
		{"location used as certification", vendors_dto.CreateVendorRequestDTO{Title: "X", Certifications: []int64{location.ID}}},
		{"non positive term id", vendors_dto.CreateVendorRequestDTO{Title: "X", Locations: []int64{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateVendor(&tt.request, admin.UserID)
			assert.True(t, errors_utils.IsKind(err, errors_utils.KindValidation), "got %v", err)
		})
	}
}

func Test_UpdateVendor_ChangesOnlySuppliedFields(t *testing.T) {
	service, listener := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	lisbon := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyLocation, "Lisbon")
	porto := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyLocation, "Porto")

	created, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
		Title:     "Original",
		Status:    string(vendors_enums.VendorStatusDraft),
		Meta:      &vendors_dto.VendorMetaDTO{Headquarters: "Lisbon", YearsInOperation: 4},
		Locations: []int64{lisbon.ID},
	}, admin.UserID)
	require.NoError(t, err)

	website := "https://original.example.com"
	status := string(vendors_enums.VendorStatusPublish)
	locations := []int64{porto.ID}

	updated, err := service.UpdateVendor(created.ID, &vendors_dto.UpdateVendorRequestDTO{
		Status:    &status,
		Meta:      &vendors_dto.UpdateVendorMetaDTO{WebsiteURL: &website},
		Locations: &locations,
	}, admin.UserID)
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "Lisbon", updated.Meta.Headquarters)
	assert.Equal(t, 4, updated.Meta.YearsInOperation)
	assert.Equal(t, website, updated.Meta.WebsiteURL)
	assert.Equal(t, []string{"Porto"}, updated.Tax.Locations)

	require.Len(t, listener.published, 1)
	assert.Equal(t, created.ID, listener.published[0].vendorID)

	emptyTitle := "  "
	_, err = service.UpdateVendor(created.ID, &vendors_dto.UpdateVendorRequestDTO{Title: &emptyTitle}, admin.UserID)
	assert.True(t, errors_utils.IsKind(err, errors_utils.KindValidation))

	_, err = service.UpdateVendor(999999999, &vendors_dto.UpdateVendorRequestDTO{}, admin.UserID)
	assert.True(t, errors_utils.IsKind(err, errors_utils.KindNotFound))
}

func Test_UpdateVendor_EmptyTermListClearsAssignments(t *testing.T) {
	service, _ := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	certification := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyCertification, "Organic")

	created, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
		Title:          "Certified",
		Certifications: []int64{certification.ID},
	}, admin.UserID)
	require.NoError(t, err)
	require.Equal(t, []string{"Organic"}, created.Tax.Certifications)

	empty := []int64{}
	updated, err := service.UpdateVendor(created.ID, &vendors_dto.UpdateVendorRequestDTO{
		Certifications: &empty,
	}, admin.UserID)
	require.NoError(t, err)

	assert.Empty(t, updated.Tax.Certifications)
}

func Test_DeleteVendor_RemovesVendorAndNotifiesListeners(t *testing.T) {
	service, listener := createTestService()
	author := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(author.UserID, vendors_enums.VendorStatusPublish)

	response, err := service.DeleteVendor(vendor.ID, author.UserID)
	require.NoError(t, err)

	assert.Equal(t, &vendors_dto.DeleteVendorResponseDTO{Deleted: true, ID: vendor.ID}, response)
	assert.Equal(t, []int64{vendor.ID}, listener.deleted)

	exists, err := vendors_repositories.GetVendorRepository().Exists(vendor.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = service.DeleteVendor(vendor.ID, author.UserID)
	assert.True(t, errors_utils.IsKind(err, errors_utils.KindNotFound))
	assert.Len(t, listener.deleted, 1)
}

func Test_SearchVendors_FiltersPublishedByTitleAndTerms(t *testing.T) {
	service, _ := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	marker := "srch" + uuid.New().String()[:8]
	location := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyLocation, "Faro")
	certification := vendors_testing.CreateTestTerm(vendors_enums.TaxonomyCertification, "Fair Trade")

	create := func(title string, status vendors_enums.VendorStatus, locations, certifications []int64) int64 {
		response, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{
			Title:          title,
			Status:         string(status),
			Locations:      locations,
			Certifications: certifications,
		}, admin.UserID)
		require.NoError(t, err)
		return response.ID
	}

	bravo := create("Bravo "+marker, vendors_enums.VendorStatusPublish, []int64{location.ID}, nil)
	alpha := create("Alpha "+marker, vendors_enums.VendorStatusPublish, []int64{location.ID}, []int64{certification.ID})
	create("Charlie "+marker, vendors_enums.VendorStatusDraft, []int64{location.ID}, nil)
	create("Delta "+marker, vendors_enums.VendorStatusPending, nil, nil)

	response, err := service.SearchVendors(&vendors_dto.SearchVendorsRequestDTO{Query: marker})
	require.NoError(t, err)
	require.Len(t, response.Items, 2)
	assert.Equal(t, int64(2), response.Total)
	assert.Equal(t, 1, response.Pages)
	assert.Equal(t, alpha, response.Items[0].ID)
	assert.Equal(t, bravo, response.Items[1].ID)

	response, err = service.SearchVendors(&vendors_dto.SearchVendorsRequestDTO{
		Query:    marker,
		Location: location.Slug,
		Cert:     strconv.FormatInt(certification.ID, 10),
	})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	assert.Equal(t, alpha, response.Items[0].ID)
	assert.Equal(t, []string{"Fair Trade"}, response.Items[0].BasicInfoSummary.Certifications)

	response, err = service.SearchVendors(&vendors_dto.SearchVendorsRequestDTO{Query: marker, PerPage: 1, Page: 2})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	assert.Equal(t, bravo, response.Items[0].ID)
	assert.Equal(t, 2, response.Pages)
}

func Test_SearchVendors_WithUnknownTerm_ReturnsEmptyResult(t *testing.T) {
	service, _ := createTestService()

	response, err := service.SearchVendors(&vendors_dto.SearchVendorsRequestDTO{Location: "nowhere-" + uuid.New().String()})
	require.NoError(t, err)

	assert.NotNil(t, response.Items)
	assert.Empty(t, response.Items)
	assert.Zero(t, response.Total)
}

func Test_SearchVendors_TreatsLikeWildcardsLiterally(t *testing.T) {
	service, _ := createTestService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	marker := uuid.New().String()[:8]

	_, err := service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{Title: "100% Pure " + marker}, admin.UserID)
	require.NoError(t, err)
	_, err = service.CreateVendor(&vendors_dto.CreateVendorRequestDTO{Title: "1000 Pure " + marker}, admin.UserID)
	require.NoError(t, err)

	response, err := service.SearchVendors(&vendors_dto.SearchVendorsRequestDTO{Query: "100% pure " + marker})
	require.NoError(t, err)

	require.Len(t, response.Items, 1)
	assert.Equal(t, "100% Pure "+marker, response.Items[0].Title)
}
