package memberships_services

import (
	"sync"
	"testing"

	memberships_dto "vendors-backend/internal/features/memberships/dto"
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	memberships_testing "vendors-backend/internal/features/memberships/testing"
	users_enums "vendors-backend/internal/features/users/enums"
	users_testing "vendors-backend/internal/features/users/testing"
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_testing "vendors-backend/internal/features/vendors/testing"
	errors_utils "vendors-backend/internal/util/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RemoveMember_ConcurrentOwnerRemovals_KeepOneOwner(t *testing.T) {
	service := GetMembershipService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	firstOwner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(firstOwner.UserID, vendors_enums.VendorStatusPublish)
	memberships_testing.AddMember(vendor.ID, firstOwner.UserID, memberships_enums.VendorRoleOwner)
	secondOwner := memberships_testing.CreateTestMember(vendor.ID, memberships_enums.VendorRoleOwner)

	errs := runConcurrently(
		func() error {
			_, err := service.RemoveMember(vendor.ID, firstOwner.UserID, admin.UserID)
			return err
		},
		func() error {
			_, err := service.RemoveMember(vendor.ID, secondOwner.UserID, admin.UserID)
			return err
		},
	)

	assertOneSucceededOneConflicted(t, errs)
	assertOwnerCount(t, vendor.ID, 1)
}

func Test_UpdateMemberRole_ConcurrentOwnerDemotions_KeepOneOwner(t *testing.T) {
	service := GetMembershipService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	firstOwner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(firstOwner.UserID, vendors_enums.VendorStatusPublish)
	memberships_testing.AddMember(vendor.ID, firstOwner.UserID, memberships_enums.VendorRoleOwner)
	secondOwner := memberships_testing.CreateTestMember(vendor.ID, memberships_enums.VendorRoleOwner)

	errs := runConcurrently(
		func() error {
			_, err := service.UpdateMemberRole(
				vendor.ID, firstOwner.UserID, memberships_enums.VendorRoleManager, admin.UserID,
			)
			return err
		},
		func() error {
			_, err := service.UpdateMemberRole(
				vendor.ID, secondOwner.UserID, memberships_enums.VendorRoleEditor, admin.UserID,
			)
			return err
		},
	)

	assertOneSucceededOneConflicted(t, errs)
	assertOwnerCount(t, vendor.ID, 1)
}

func Test_AddMember_ConcurrentSameUser_AddsOnce(t *testing.T) {
	service := GetMembershipService()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(owner.UserID, vendors_enums.VendorStatusPublish)
	newcomer := users_testing.CreateTestUser(users_enums.UserRoleMember)

	add := func() error {
		_, err := service.AddMember(vendor.ID, &memberships_dto.AddMemberRequestDTO{
			Role:  memberships_enums.VendorRoleViewer,
			Email: newcomer.Email,
		}, admin.UserID)
		return err
	}

	errs := runConcurrently(add, add)

	assertOneSucceededOneConflicted(t, errs)

	count, err := memberships_repositories.GetMembershipRepository().CountByVendorAndRole(vendor.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func runConcurrently(operations ...func() error) []error {
	errs := make([]error, len(operations))

	var wg sync.WaitGroup
	start := make(chan struct{})

	for i, operation := range operations {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = operation()
		}()
	}

	close(start)
	wg.Wait()

	return errs
}

func assertOneSucceededOneConflicted(t *testing.T, errs []error) {
	t.Helper()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors_utils.IsKind(err, errors_utils.KindConflict):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func assertOwnerCount(t *testing.T, vendorID int64, expected int64) {
	t.Helper()

	owners, err := memberships_repositories.GetMembershipRepository().
		CountByVendorAndRole(vendorID, memberships_enums.VendorRoleOwner)
	require.NoError(t, err)
	assert.Equal(t, expected, owners)
}
