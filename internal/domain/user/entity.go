package user

import "strings"

type Role string

const (
	RoleAdmin             Role = "admin"             // Full access
	RoleTopManagement     Role = "topManagement"     // Full visibility, can mark attendance
	RoleMiddleManagement  Role = "middleManagement"  // Full visibility, can correct records
	RoleSiteManager       Role = "siteManager"       // Bound to one store
	RoleAssistantManager  Role = "assistantManager"  // Bound to one store, read only
	RoleClient            Role = "client"            // Sees and verifies its own stores
	RoleHousekeeper       Role = "housekeeper"       // Operational staff
	RoleFOE               Role = "FOE"               // Operational staff
	RolePermanentReliever Role = "permanentReliever" // Operational staff
)

// IsManagement reports roles with visibility over every store.
func (r Role) IsManagement() bool {
	return r == RoleAdmin || r == RoleTopManagement || r == RoleMiddleManagement
}

// IsSingleStore reports roles that are bound to their assigned store.
func (r Role) IsSingleStore() bool {
	return r == RoleSiteManager || r == RoleAssistantManager
}

// IsWorker reports operational staff roles.
func (r Role) IsWorker() bool {
	return r == RoleHousekeeper || r == RoleFOE || r == RolePermanentReliever
}

func (r Role) IsClient() bool {
	return r == RoleClient
}

// Identity is the authenticated caller as seen by the attendance core.
type Identity struct {
	UserID        string
	Name          string
	Role          Role
	EmployeeID    *string
	AssignedStore *string
	Stores        []string
}

// ActorName is recorded as markedBy on records the caller mutates.
func (i Identity) ActorName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return "System"
}

// AssignedStoreCode returns the assigned store or an empty string.
func (i Identity) AssignedStoreCode() string {
	if i.AssignedStore == nil {
		return ""
	}
	return strings.TrimSpace(*i.AssignedStore)
}
