// Package authz decides, per resource class, whether a caller may perform an
// operation on a specific entity. Authentication itself is enforced earlier
// by the middleware; every policy here assumes an authenticated caller.
//
// Two axes govern every decision: project membership (who may read) and
// authorship (who may write). Reads on an entity outside the caller's
// contributed projects are hidden rather than forbidden, matching the scoped
// listing behavior; writes by a contributor who is not the author are an
// explicit forbid.
package authz

// Action classifies a controller operation.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action is read-only.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// Decision is the outcome of a policy check.
type Decision int

const (
	// Allow permits the operation.
	Allow Decision = iota
	// Deny rejects with Forbidden: the caller can see the entity but lacks
	// the right to act on it.
	Deny
	// Hide rejects with NotFound: the entity is outside the caller's
	// visible scope, so its existence is not revealed.
	Hide
)

// Membership carries the caller's relationship to the entity's owner chain.
type Membership struct {
	// IsAuthor is true when the caller authored the target entity.
	IsAuthor bool
	// IsContributor is true when the caller is a contributor of the
	// entity's owning project.
	IsContributor bool
}

// ProjectOwned is implemented by every entity whose visibility is governed
// by a project (Project, Issue, Comment). It replaces runtime attribute
// probing with a typed accessor.
type ProjectOwned interface {
	OwningProjectID() uint
}

// forOwned is the shared rule for single-author, project-scoped resources.
// Authorship is checked directly for unsafe actions; membership never grants
// write rights.
func forOwned(m Membership, a Action) Decision {
	if a.Safe() {
		if m.IsContributor {
			return Allow
		}
		return Hide
	}

	if m.IsAuthor {
		return Allow
	}

	if m.IsContributor {
		return Deny
	}

	return Hide
}

// ForProject decides access to a project.
func ForProject(m Membership, a Action) Decision { return forOwned(m, a) }

// ForIssue decides access to an issue through its project's contributors.
func ForIssue(m Membership, a Action) Decision { return forOwned(m, a) }

// ForComment decides access to a comment through its issue's project.
func ForComment(m Membership, a Action) Decision { return forOwned(m, a) }

// ForUser decides access to a user account. Any authenticated caller may
// read; only the account owner may mutate or delete.
func ForUser(isSelf bool, a Action) Decision {
	if a.Safe() {
		return Allow
	}

	if isSelf {
		return Allow
	}

	return Deny
}
