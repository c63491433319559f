package driver

// Helper methods for DriverStatus
func (ds DriverStatus) String() string {
	return string(ds)
}

func (ds DriverStatus) IsValid() bool {
	switch ds {
	case DriverStatusOnDuty, DriverStatusOnTrip, DriverStatusOffDuty, DriverStatusSuspended:
		return true
	default:
		return false
	}
}

// IsDispatchable returns true if a trip can be dispatched with this driver
func (ds DriverStatus) IsDispatchable() bool {
	return ds == DriverStatusOnDuty
}

// IsManuallySettable returns true for statuses an operator may set directly.
// ON_TRIP is owned by the trip lifecycle.
func (ds DriverStatus) IsManuallySettable() bool {
	return ds == DriverStatusOnDuty || ds == DriverStatusOffDuty || ds == DriverStatusSuspended
}

// GetAllDriverStatuses returns all valid driver statuses
func GetAllDriverStatuses() []DriverStatus {
	return []DriverStatus{
		DriverStatusOnDuty,
		DriverStatusOnTrip,
		DriverStatusOffDuty,
		DriverStatusSuspended,
	}
}
