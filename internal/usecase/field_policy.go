package usecase

import "github.com/relgate/relgate/internal/entity"

// fieldPolicy names item fields that only specific roles may write. A field
// absent from the policy is open to any caller allowed to update at all.
type fieldPolicy map[string]entity.RoleGroup

// itemFieldPolicy: devops_notes stays as stored unless the caller holds the
// devops role, even when the payload supplies a value.
var itemFieldPolicy = fieldPolicy{
	"devops_notes": entity.RoleDevOps,
}

func (p fieldPolicy) writable(field string, principal *entity.Principal) bool {
	role, restricted := p[field]
	if !restricted {
		return true
	}
	return principal.HasRole(role)
}
