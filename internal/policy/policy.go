// Package policy decides whether an identity may perform an action on a
// resource. Decisions are pure: ownership facts are passed in by the caller,
// nothing here touches the database.
package policy

import (
	"github.com/google/uuid"
)

// Role is a closed enumeration with a total order: Viewer < Editor < Admin.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleAdmin:  2,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above min in the role hierarchy.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Action names the operations the policy knows about.
type Action string

const (
	ActionReadRecipe    Action = "recipe:read"
	ActionCreateRecipe  Action = "recipe:create"
	ActionUpdateRecipe  Action = "recipe:update"
	ActionDeleteRecipe  Action = "recipe:delete"
	ActionAttachImage   Action = "recipe:image"
	ActionReadCategory  Action = "category:read"
	ActionWriteCategory Action = "category:write"
	ActionManageUsers   Action = "user:manage"
)

// Identity is the resolved current user for a request.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

// Resource carries the ownership facts a rule may need. AuthorID is the
// recipe author for recipe actions and the zero UUID otherwise.
type Resource struct {
	AuthorID uuid.UUID
}

// Decision is the outcome of a policy check. A deny is a normal outcome,
// never an error.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// rules maps each action to its decision function. Admins short-circuit in
// Allow before rules are consulted.
var rules = map[Action]func(id *Identity, res Resource) Decision{
	ActionReadRecipe:   anyAuthenticated,
	ActionReadCategory: anyAuthenticated,
	ActionCreateRecipe: func(id *Identity, _ Resource) Decision {
		if id.Role.AtLeast(RoleEditor) {
			return allow()
		}
		return deny("viewers cannot create recipes")
	},
	ActionUpdateRecipe:  editorOwnsRecipe,
	ActionDeleteRecipe:  editorOwnsRecipe,
	ActionAttachImage:   editorOwnsRecipe,
	ActionWriteCategory: adminOnly,
	ActionManageUsers:   adminOnly,
}

func anyAuthenticated(_ *Identity, _ Resource) Decision {
	return allow()
}

func adminOnly(_ *Identity, _ Resource) Decision {
	return deny("administrator role required")
}

func editorOwnsRecipe(id *Identity, res Resource) Decision {
	if !id.Role.AtLeast(RoleEditor) {
		return deny("viewers cannot modify recipes")
	}
	if id.ID != res.AuthorID {
		return deny("only the recipe author may modify it")
	}
	return allow()
}

// Allow evaluates the rule for action. A nil identity means the caller is
// unauthenticated and is denied everything.
func Allow(id *Identity, action Action, res Resource) Decision {
	if id == nil {
		return deny("authentication required")
	}
	if id.Role == RoleAdmin {
		return allow()
	}
	rule, ok := rules[action]
	if !ok {
		return deny("unknown action")
	}
	return rule(id, res)
}
