package memberships_repositories

var membershipRepository = &MembershipRepository{}

func GetMembershipRepository() *MembershipRepository {
	return membershipRepository
}
