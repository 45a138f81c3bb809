package memberships_repositories

import (
	"errors"
	"time"

	memberships_dto "vendors-backend/internal/features/memberships/dto"
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_models "vendors-backend/internal/features/memberships/models"
	"vendors-backend/internal/storage"

	"gorm.io/gorm"
)

var ErrMembershipExists = errors.New("membership already exists")

type MembershipRepository struct {
	tx *gorm.DB
}

// WithTx returns a repository bound to tx. The zero repository uses the
// shared connection.
func (r *MembershipRepository) WithTx(tx *gorm.DB) *MembershipRepository {
	return &MembershipRepository{tx: tx}
}

func (r *MembershipRepository) FindMembership(
	vendorID, userID int64,
) (*memberships_models.VendorMembership, error) {
	var membership memberships_models.VendorMembership

	err := r.db().
		Where("vendor_id = ? AND user_id = ?", vendorID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetRole(
	vendorID, userID int64,
) (*memberships_enums.VendorRole, error) {
	membership, err := r.FindMembership(vendorID, userID)
	if err != nil || membership == nil {
		return nil, err
	}

	return &membership.Role, nil
}

// ListByVendor returns members oldest assignment first. Missing user
// rows yield empty display name and email.
func (r *MembershipRepository) ListByVendor(
	vendorID int64,
	limit, offset int,
) ([]*memberships_dto.MemberDTO, error) {
	var members []*memberships_dto.MemberDTO

	err := r.memberQuery().
		Where("vm.vendor_id = ?", vendorID).
		Order("vm.assigned_at ASC").
		Order("vm.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) FindMember(
	vendorID, userID int64,
) (*memberships_dto.MemberDTO, error) {
	var members []*memberships_dto.MemberDTO

	err := r.memberQuery().
		Where("vm.vendor_id = ? AND vm.user_id = ?", vendorID, userID).
		Limit(1).
		Scan(&members).Error
	if err != nil || len(members) == 0 {
		return nil, err
	}

	return members[0], nil
}

// CountByVendorAndRole counts memberships of the vendor. An empty role
// counts every membership.
func (r *MembershipRepository) CountByVendorAndRole(
	vendorID int64,
	role memberships_enums.VendorRole,
) (int64, error) {
	var count int64

	query := r.db().
		Model(&memberships_models.VendorMembership{}).
		Where("vendor_id = ?", vendorID)

	if role != "" {
		query = query.Where("role = ?", role)
	}

	err := query.Count(&count).Error
	return count, err
}

// Insert fails with ErrMembershipExists when the (vendor, user) pair is
// already present.
func (r *MembershipRepository) Insert(membership *memberships_models.VendorMembership) error {
	if membership.AssignedAt.IsZero() {
		membership.AssignedAt = time.Now().UTC()
	}

	err := r.db().Create(membership).Error
	if storage.IsUniqueViolation(err) {
		return ErrMembershipExists
	}

	return err
}

// UpdateRole changes the role only; assigned_at keeps the original
// assignment time.
func (r *MembershipRepository) UpdateRole(
	vendorID, userID int64,
	role memberships_enums.VendorRole,
) (int64, error) {
	result := r.db().
		Model(&memberships_models.VendorMembership{}).
		Where("vendor_id = ? AND user_id = ?", vendorID, userID).
		Update("role", role)

	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) DeleteOne(vendorID, userID int64) (int64, error) {
	result := r.db().
		Where("vendor_id = ? AND user_id = ?", vendorID, userID).
		Delete(&memberships_models.VendorMembership{})

	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) DeleteAllForVendor(vendorID int64) (int64, error) {
	result := r.db().
		Where("vendor_id = ?", vendorID).
		Delete(&memberships_models.VendorMembership{})

	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) memberQuery() *gorm.DB {
	return r.db().
		Table("vendor_memberships vm").
		Select(`
			vm.user_id,
			COALESCE(u.display_name, '') AS display_name,
			COALESCE(u.email, '') AS email,
			vm.role,
			vm.assigned_at`).
		Joins("LEFT JOIN users u ON u.id = vm.user_id")
}

func (r *MembershipRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}
