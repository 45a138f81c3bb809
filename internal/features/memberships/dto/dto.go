package memberships_dto

import (
	"time"

	memberships_enums "vendors-backend/internal/features/memberships/enums"
)

type MemberDTO struct {
	UserID      int64                        `json:"userId"      gorm:"column:user_id"`
	DisplayName string                       `json:"displayName" gorm:"column:display_name"`
	Email       string                       `json:"email"       gorm:"column:email"`
	Role        memberships_enums.VendorRole `json:"role"        gorm:"column:role"`
	AssignedAt  time.Time                    `json:"assignedAt"  gorm:"column:assigned_at"`
}

type ListMembersResponseDTO struct {
	Items []*MemberDTO `json:"items"`
}

type AddMemberRequestDTO struct {
	Role        memberships_enums.VendorRole `json:"role"`
	Email       string                       `json:"email"`
	DisplayName string                       `json:"displayName"`
	Password    string                       `json:"password"`
}

type UpdateMemberRoleRequestDTO struct {
	Role memberships_enums.VendorRole `json:"role"`
}

type RemoveMemberResponseDTO struct {
	Removed bool                         `json:"removed"`
	UserID  int64                        `json:"userId"`
	Role    memberships_enums.VendorRole `json:"role"`
}

type MyRoleResponseDTO struct {
	Role *memberships_enums.VendorRole `json:"role"`
}

type RoleDTO struct {
	Role         memberships_enums.VendorRole          `json:"role"`
	Capabilities map[memberships_enums.Capability]bool `json:"capabilities"`
}

type ListRolesResponseDTO struct {
	Items []*RoleDTO `json:"items"`
}
