package entity

import "github.com/samber/lo"

// RoleGroup identifies a role or approval group held by a principal.
type RoleGroup string

const (
	RoleAdmin        RoleGroup = "admin"
	RoleReleaseAdmin RoleGroup = "release-admin"
	RoleDevOps       RoleGroup = "devops"
	RoleUser         RoleGroup = "user"

	// GroupReleaseManagement is the sign-off group that revocation targets.
	GroupReleaseManagement RoleGroup = "release-management"
)

// MandatoryApproverGroups are seeded on every release in addition to the
// groups supplied by the creator.
var MandatoryApproverGroups = []RoleGroup{GroupReleaseManagement, RoleDevOps}

// nonApprovingGroups never map to approver rows, whatever the caller holds.
var nonApprovingGroups = []RoleGroup{RoleAdmin, RoleUser}

// Principal is an authenticated caller and its role memberships.
type Principal struct {
	ID    ID
	Email string
	Roles []RoleGroup
}

func (p *Principal) HasRole(r RoleGroup) bool {
	return lo.Contains(p.Roles, r)
}

// ApprovalGroups returns the principal's roles that may hold approver rows.
func (p *Principal) ApprovalGroups() []RoleGroup {
	return lo.Filter(p.Roles, func(r RoleGroup, _ int) bool {
		return !lo.Contains(nonApprovingGroups, r)
	})
}
