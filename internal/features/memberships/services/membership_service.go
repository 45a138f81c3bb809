package memberships_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	memberships_dto "vendors-backend/internal/features/memberships/dto"
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_interfaces "vendors-backend/internal/features/memberships/interfaces"
	memberships_models "vendors-backend/internal/features/memberships/models"
	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	memberships_roles "vendors-backend/internal/features/memberships/roles"
	users_dto "vendors-backend/internal/features/users/dto"
	users_models "vendors-backend/internal/features/users/models"
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"
	"vendors-backend/internal/storage"
	errors_utils "vendors-backend/internal/util/errors"
	metrics_utils "vendors-backend/internal/util/metrics"
	validation_utils "vendors-backend/internal/util/validation"

	"gorm.io/gorm"
)

const defaultMembersLimit = 100

var errVendorGone = errors.New("vendor no longer exists")

type MembershipService struct {
	membershipRepository *memberships_repositories.MembershipRepository
	vendorRepository     *vendors_repositories.VendorRepository
	userDirectory        memberships_interfaces.UserDirectory
	rolePolicy           *memberships_roles.RolePolicy
	metrics              *metrics_utils.Metrics
	logger               *slog.Logger
	auditLogWriter       memberships_interfaces.AuditLogWriter
}

func (s *MembershipService) SetAuditLogWriter(writer memberships_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// SeedOwner makes authorID the owner of a vendor that has no members at
// all. Any existing membership, owner or not, makes it a no-op, so
// repeated publish events seed at most once.
func (s *MembershipService) SeedOwner(vendorID, authorID int64) error {
	if vendorID <= 0 || authorID <= 0 {
		return nil
	}

	var seeded bool

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		exists, err := s.vendorRepository.LockVendor(tx, vendorID)
		if err != nil {
			return err
		}
		if !exists {
			return errVendorGone
		}

		repository := s.membershipRepository.WithTx(tx)

		count, err := repository.CountByVendorAndRole(vendorID, "")
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		err = repository.Insert(&memberships_models.VendorMembership{
			VendorID:   vendorID,
			UserID:     authorID,
			Role:       memberships_enums.VendorRoleOwner,
			AssignedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		seeded = true
		return nil
	})

	if errors.Is(err, errVendorGone) || errors.Is(err, memberships_repositories.ErrMembershipExists) {
		return nil
	}

	if err != nil {
		s.metrics.RecordMembershipMutation("seed_owner", err)
		return errors_utils.CreateFailed("Failed to seed vendor owner", err)
	}

	if seeded {
		s.metrics.RecordMembershipMutation("seed_owner", nil)
		s.writeAuditLog(
			fmt.Sprintf("User %d seeded as vendor owner", authorID),
			authorID,
			vendorID,
		)
	}

	return nil
}

// OnVendorPublished seeds the author as owner. Errors are logged only;
// publishing never fails because of membership bookkeeping.
func (s *MembershipService) OnVendorPublished(vendorID int64, authorID int64) {
	if err := s.SeedOwner(vendorID, authorID); err != nil {
		s.logger.Error(
			"failed to seed vendor owner",
			"vendorId", vendorID,
			"authorId", authorID,
			"error", err,
		)
	}
}

// OnVendorDeleted removes every membership of the vendor, best effort.
func (s *MembershipService) OnVendorDeleted(vendorID int64) {
	removed, err := s.membershipRepository.DeleteAllForVendor(vendorID)
	s.metrics.RecordMembershipMutation("cascade_delete", err)

	if err != nil {
		s.logger.Error("failed to delete memberships of deleted vendor", "vendorId", vendorID, "error", err)
		return
	}

	s.logger.Info("deleted memberships of deleted vendor", "vendorId", vendorID, "count", removed)
}

func (s *MembershipService) ListMembers(
	vendorID int64,
	limit, offset int,
) (*memberships_dto.ListMembersResponseDTO, error) {
	if err := s.ensureVendorExists(vendorID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultMembersLimit
	}
	offset = max(offset, 0)

	members, err := s.membershipRepository.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load members", err)
	}

	if members == nil {
		members = []*memberships_dto.MemberDTO{}
	}

	return &memberships_dto.ListMembersResponseDTO{Items: members}, nil
}

// AddMember attaches the user with the given email to the vendor,
// registering the user first when the email is unknown.
func (s *MembershipService) AddMember(
	vendorID int64,
	request *memberships_dto.AddMemberRequestDTO,
	actorID int64,
) (*memberships_dto.MemberDTO, error) {
	if err := s.ensureVendorExists(vendorID); err != nil {
		return nil, err
	}

	role, err := s.validateRole(request.Role)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(request.Email)
	if !validation_utils.IsEmail(email) {
		return nil, errors_utils.Validation("A valid email is required")
	}

	user, err := s.resolveUser(email, request)
	if err != nil {
		return nil, err
	}

	assignedAt := time.Now().UTC()

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		exists, err := s.vendorRepository.LockVendor(tx, vendorID)
		if err != nil {
			return errors_utils.CreateFailed("Failed to add member", err)
		}
		if !exists {
			return errors_utils.NotFound("Vendor not found")
		}

		repository := s.membershipRepository.WithTx(tx)

		existing, err := repository.FindMembership(vendorID, user.ID)
		if err != nil {
			return errors_utils.DependencyUnavailable("Failed to look up membership", err)
		}
		if existing != nil {
			return errors_utils.Conflict("User is already a member of this vendor")
		}

		err = repository.Insert(&memberships_models.VendorMembership{
			VendorID:   vendorID,
			UserID:     user.ID,
			Role:       role,
			AssignedAt: assignedAt,
		})
		if errors.Is(err, memberships_repositories.ErrMembershipExists) {
			return errors_utils.Conflict("User is already a member of this vendor")
		}
		if err != nil {
			return errors_utils.CreateFailed("Failed to add member", err)
		}

		return nil
	})

	s.metrics.RecordMembershipMutation("add_member", err)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(
		fmt.Sprintf("User %s added to vendor with role %s", user.Email, role),
		actorID,
		vendorID,
	)

	displayName := strings.TrimSpace(request.DisplayName)
	if displayName == "" {
		displayName = user.DisplayName
	}

	return &memberships_dto.MemberDTO{
		UserID:      user.ID,
		DisplayName: displayName,
		Email:       user.Email,
		Role:        role,
		AssignedAt:  assignedAt,
	}, nil
}

// UpdateMemberRole changes the member's role in place. assigned_at is
// never touched and setting the current role again is a no-op.
func (s *MembershipService) UpdateMemberRole(
	vendorID int64,
	userID int64,
	newRole memberships_enums.VendorRole,
	actorID int64,
) (*memberships_dto.MemberDTO, error) {
	if err := s.ensureVendorExists(vendorID); err != nil {
		return nil, err
	}

	role, err := s.validateRole(newRole)
	if err != nil {
		return nil, err
	}

	var previousRole memberships_enums.VendorRole

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		membership, err := s.lockMembership(tx, vendorID, userID)
		if err != nil {
			return err
		}

		previousRole = membership.Role
		repository := s.membershipRepository.WithTx(tx)

		if membership.Role == memberships_enums.VendorRoleOwner && role != memberships_enums.VendorRoleOwner {
			hasAnother, err := s.hasAnotherOwner(repository, vendorID)
			if err != nil {
				return errors_utils.DependencyUnavailable("Failed to count owners", err)
			}
			if !hasAnother {
				return errors_utils.Conflict("Cannot demote the last owner")
			}
		}

		if membership.Role == role {
			return nil
		}

		updated, err := repository.UpdateRole(vendorID, userID, role)
		if err != nil {
			return errors_utils.UpdateFailed("Failed to update member role", err)
		}
		if updated == 0 {
			return errors_utils.UpdateFailed("Failed to update member role", nil)
		}

		return nil
	})

	if previousRole != role {
		s.metrics.RecordMembershipMutation("update_role", err)
	}
	if err != nil {
		return nil, err
	}

	if previousRole != role {
		s.writeAuditLog(
			fmt.Sprintf("User %d role changed from %s to %s", userID, previousRole, role),
			actorID,
			vendorID,
		)
	}

	member, err := s.membershipRepository.FindMember(vendorID, userID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load member", err)
	}
	if member == nil {
		return nil, errors_utils.NotFound("Membership not found")
	}

	return member, nil
}

func (s *MembershipService) RemoveMember(
	vendorID int64,
	userID int64,
	actorID int64,
) (*memberships_dto.RemoveMemberResponseDTO, error) {
	if err := s.ensureVendorExists(vendorID); err != nil {
		return nil, err
	}

	var removedRole memberships_enums.VendorRole

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		membership, err := s.lockMembership(tx, vendorID, userID)
		if err != nil {
			return err
		}

		repository := s.membershipRepository.WithTx(tx)

		if membership.Role == memberships_enums.VendorRoleOwner {
			hasAnother, err := s.hasAnotherOwner(repository, vendorID)
			if err != nil {
				return errors_utils.DependencyUnavailable("Failed to count owners", err)
			}
			if !hasAnother {
				return errors_utils.Conflict("Cannot remove the last owner")
			}
		}

		deleted, err := repository.DeleteOne(vendorID, userID)
		if err != nil {
			return errors_utils.DeleteFailed("Failed to remove member", err)
		}
		if deleted == 0 {
			return errors_utils.DeleteFailed("Failed to remove member", nil)
		}

		removedRole = membership.Role
		return nil
	})

	s.metrics.RecordMembershipMutation("remove_member", err)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(
		fmt.Sprintf("User %d removed from vendor, role was %s", userID, removedRole),
		actorID,
		vendorID,
	)

	return &memberships_dto.RemoveMemberResponseDTO{
		Removed: true,
		UserID:  userID,
		Role:    removedRole,
	}, nil
}

// GetMyRole never fails for anonymous callers, they simply have no role.
func (s *MembershipService) GetMyRole(
	vendorID int64,
	userID int64,
) (*memberships_dto.MyRoleResponseDTO, error) {
	if err := s.ensureVendorExists(vendorID); err != nil {
		return nil, err
	}

	if userID <= 0 {
		return &memberships_dto.MyRoleResponseDTO{Role: nil}, nil
	}

	role, err := s.membershipRepository.GetRole(vendorID, userID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to look up membership", err)
	}

	return &memberships_dto.MyRoleResponseDTO{Role: role}, nil
}

func (s *MembershipService) ListRoles() *memberships_dto.ListRolesResponseDTO {
	roles := s.rolePolicy.ListRoles()

	items := make([]*memberships_dto.RoleDTO, 0, len(roles))
	for _, role := range roles {
		items = append(items, &memberships_dto.RoleDTO{
			Role:         role,
			Capabilities: s.rolePolicy.CapabilitiesFor(role),
		})
	}

	return &memberships_dto.ListRolesResponseDTO{Items: items}
}

func (s *MembershipService) resolveUser(
	email string,
	request *memberships_dto.AddMemberRequestDTO,
) (*users_models.User, error) {
	user, err := s.userDirectory.GetUserByEmail(email)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to look up user", err)
	}

	if user != nil {
		return user, nil
	}

	if request.Password == "" {
		return nil, errors_utils.Validation("Password is required to create a new user")
	}

	login := loginFromEmail(email)

	taken, err := s.userDirectory.IsLoginTaken(login)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to look up user", err)
	}
	if taken {
		login = disambiguateLogin(login, email)
	}

	user, err = s.userDirectory.CreateUser(&users_dto.CreateUserRequest{
		Login:       login,
		Email:       email,
		Password:    request.Password,
		DisplayName: strings.TrimSpace(request.DisplayName),
	})
	if err != nil {
		if errors_utils.IsKind(err, errors_utils.KindValidation) {
			return nil, err
		}

		return nil, errors_utils.CreateFailed("Failed to create user", err)
	}

	return user, nil
}

// lockMembership locks the vendor row for the rest of tx and returns
// the current membership of the user.
func (s *MembershipService) lockMembership(
	tx *gorm.DB,
	vendorID, userID int64,
) (*memberships_models.VendorMembership, error) {
	exists, err := s.vendorRepository.LockVendor(tx, vendorID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to lock vendor", err)
	}
	if !exists {
		return nil, errors_utils.NotFound("Vendor not found")
	}

	membership, err := s.membershipRepository.WithTx(tx).FindMembership(vendorID, userID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to look up membership", err)
	}
	if membership == nil {
		return nil, errors_utils.NotFound("Membership not found")
	}

	return membership, nil
}

// hasAnotherOwner reports whether the vendor has more than one owner.
// Must run under the vendor lock.
func (s *MembershipService) hasAnotherOwner(
	repository *memberships_repositories.MembershipRepository,
	vendorID int64,
) (bool, error) {
	owners, err := repository.CountByVendorAndRole(vendorID, memberships_enums.VendorRoleOwner)
	if err != nil {
		return false, err
	}

	return owners > 1, nil
}

func (s *MembershipService) ensureVendorExists(vendorID int64) error {
	if vendorID <= 0 {
		return errors_utils.InvalidID("Invalid vendor ID")
	}

	exists, err := s.vendorRepository.Exists(vendorID)
	if err != nil {
		return errors_utils.DependencyUnavailable("Failed to look up vendor", err)
	}

	if !exists {
		return errors_utils.NotFound("Vendor not found")
	}

	return nil
}

// validateRole matches the catalog exactly. Padded values are rejected
// so that the guard and the store always see the same role.
func (s *MembershipService) validateRole(
	role memberships_enums.VendorRole,
) (memberships_enums.VendorRole, error) {
	if role == "" {
		return "", errors_utils.Validation("Role is required")
	}

	if !s.rolePolicy.IsValidRole(role) {
		return "", errors_utils.Validation(fmt.Sprintf("Invalid role: %s", role))
	}

	return role, nil
}

func (s *MembershipService) writeAuditLog(message string, actorID int64, vendorID int64) {
	if s.auditLogWriter == nil {
		return
	}

	var userID *int64
	if actorID > 0 {
		userID = &actorID
	}

	s.auditLogWriter.WriteAuditLog(message, userID, &vendorID)
}
