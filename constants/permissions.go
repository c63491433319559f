package constants

// Role permissions
const (
	PermAdminFull      = "fleetflow.admin.full-permit"
	PermManagerFull    = "fleetflow.manager.full-permit"
	PermDispatcherFull = "fleetflow.dispatcher.full-permit"
	PermViewerRead     = "fleetflow.viewer.read-only"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	// FleetWritePermissions may create and mutate vehicles, drivers and logs
	FleetWritePermissions = []string{
		PermAdminFull,
		PermManagerFull,
	}

	// DispatchPermissions may create trips and drive the trip lifecycle
	DispatchPermissions = []string{
		PermAdminFull,
		PermManagerFull,
		PermDispatcherFull,
	}

	// ReadPermissions may read everything
	ReadPermissions = []string{
		PermAdminFull,
		PermManagerFull,
		PermDispatcherFull,
		PermViewerRead,
	}
)

// PermissionsForRole maps a role name to its permission strings
func PermissionsForRole(role string) []string {
	switch role {
	case "ADMIN":
		return []string{PermAdminFull}
	case "MANAGER":
		return []string{PermManagerFull}
	case "DISPATCHER":
		return []string{PermDispatcherFull}
	case "VIEWER":
		return []string{PermViewerRead}
	default:
		return nil
	}
}
