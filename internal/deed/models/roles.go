package models

// Role is the closed set of actor roles. Capability checks go through the
// predicates below instead of comparing role strings at call sites.
type Role string

const (
	RoleCitizen           Role = "citizen"
	RoleOfficial          Role = "official"
	RoleLegalProfessional Role = "legal_professional"
	RoleBankOfficial      Role = "bank_official"
	RoleAdmin             Role = "admin"
)

// ParseRole maps a claim string onto a known role, defaulting to citizen for
// anything unrecognized so unknown roles never gain privileges.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOfficial, RoleLegalProfessional, RoleBankOfficial, RoleAdmin:
		return Role(s)
	default:
		return RoleCitizen
	}
}

// CanVerify reports whether the role may decide verification requests.
func (r Role) CanVerify() bool {
	switch r {
	case RoleOfficial, RoleLegalProfessional, RoleAdmin:
		return true
	}
	return false
}

// CanCreateDeed reports whether the role may register new deeds.
func (r Role) CanCreateDeed() bool {
	switch r {
	case RoleCitizen, RoleOfficial, RoleLegalProfessional, RoleAdmin:
		return true
	}
	return false
}

// CanTransfer reports whether the role may initiate ownership transfers.
func (r Role) CanTransfer() bool {
	switch r {
	case RoleOfficial, RoleLegalProfessional, RoleBankOfficial, RoleAdmin:
		return true
	}
	return false
}

// Elevated reports whether the role may act on deeds it does not own, e.g.
// request verification of someone else's deed.
func (r Role) Elevated() bool {
	return r != RoleCitizen
}
