package user

type Permission string

const (
	// Reporting
	PermissionAttendanceView      Permission = "attendance.view"
	PermissionAttendanceViewStore Permission = "attendance.view_store"
	PermissionAttendanceStats     Permission = "attendance.stats"
	PermissionAttendanceExport    Permission = "attendance.export"

	// Mutations
	PermissionAttendanceMark   Permission = "attendance.mark"
	PermissionAttendanceUpdate Permission = "attendance.update"
	PermissionAttendanceVerify Permission = "attendance.verify"

	// Sessions
	PermissionAttendanceSession Permission = "attendance.session"
	PermissionAttendanceHistory Permission = "attendance.history"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceView,
		PermissionAttendanceViewStore,
		PermissionAttendanceStats,
		PermissionAttendanceExport,
		PermissionAttendanceMark,
		PermissionAttendanceUpdate,
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
	RoleTopManagement: {
		PermissionAttendanceView,
		PermissionAttendanceViewStore,
		PermissionAttendanceStats,
		PermissionAttendanceExport,
		PermissionAttendanceMark,
		PermissionAttendanceUpdate,
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
	RoleMiddleManagement: {
		PermissionAttendanceView,
		PermissionAttendanceViewStore,
		PermissionAttendanceStats,
		PermissionAttendanceExport,
		PermissionAttendanceUpdate,
	},
	RoleSiteManager: {
		PermissionAttendanceView,
		PermissionAttendanceViewStore,
		PermissionAttendanceStats,
		PermissionAttendanceExport,
		PermissionAttendanceMark,
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
	RoleAssistantManager: {
		PermissionAttendanceView,
		PermissionAttendanceViewStore,
		PermissionAttendanceStats,
		PermissionAttendanceExport,
	},
	RoleClient: {
		PermissionAttendanceView,
		PermissionAttendanceVerify,
		PermissionAttendanceHistory,
	},
	RoleHousekeeper: {
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
	RoleFOE: {
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
	RolePermanentReliever: {
		PermissionAttendanceSession,
		PermissionAttendanceHistory,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
