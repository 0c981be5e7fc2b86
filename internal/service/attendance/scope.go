package attendance

import (
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
)

// ResolveStoreScope decides which stores the caller may see. A requested
// store narrows the scope but never widens it past what the role allows.
func ResolveStoreScope(caller user.Identity, requested string) (attendance.StoreScope, error) {
	requested = strings.TrimSpace(requested)

	switch {
	case caller.Role.IsManagement():
		if requested != "" {
			return attendance.StoreScope{Codes: []string{requested}}, nil
		}
		return attendance.StoreScope{All: true}, nil

	case caller.Role.IsSingleStore(), caller.Role.IsWorker():
		assigned := caller.AssignedStoreCode()
		if assigned == "" {
			return attendance.StoreScope{}, attendance.ErrNoStoreAssigned
		}
		if requested != "" && !strings.EqualFold(requested, assigned) {
			return attendance.StoreScope{}, attendance.ErrStoreAccessDenied
		}
		return attendance.StoreScope{Codes: []string{assigned}}, nil

	case caller.Role.IsClient():
		stores := clientStores(caller)
		if len(stores) == 0 {
			return attendance.StoreScope{}, attendance.ErrNoStoreAssigned
		}
		if requested != "" {
			scope := attendance.StoreScope{Codes: stores}
			if !scope.Allows(requested) {
				return attendance.StoreScope{}, attendance.ErrStoreAccessDenied
			}
			return attendance.StoreScope{Codes: []string{requested}}, nil
		}
		return attendance.StoreScope{Codes: stores}, nil
	}

	return attendance.StoreScope{}, attendance.ErrRoleNotPermitted
}

func clientStores(caller user.Identity) []string {
	stores := make([]string, 0, len(caller.Stores))
	for _, s := range caller.Stores {
		if s = strings.TrimSpace(s); s != "" {
			stores = append(stores, s)
		}
	}
	return stores
}

// authorizeEmployee stops operational staff from acting on a colleague's day.
// A worker account with no linked employee owns no records at all.
func authorizeEmployee(caller user.Identity, employeeID string) error {
	if !caller.Role.IsWorker() {
		return nil
	}
	if caller.EmployeeID == nil || strings.TrimSpace(*caller.EmployeeID) != employeeID {
		return attendance.ErrOwnRecordsOnly
	}
	return nil
}

// authorizeRecord checks that a stored record falls inside the caller's scope.
func authorizeRecord(caller user.Identity, rec attendance.Attendance) error {
	scope, err := ResolveStoreScope(caller, "")
	if err != nil {
		return err
	}
	if !scope.Allows(rec.StoreCode) {
		return attendance.ErrStoreAccessDenied
	}
	return authorizeEmployee(caller, rec.EmployeeID)
}
