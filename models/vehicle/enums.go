package vehicle

// Helper methods for VehicleStatus
func (vs VehicleStatus) String() string {
	return string(vs)
}

func (vs VehicleStatus) IsValid() bool {
	switch vs {
	case VehicleStatusAvailable, VehicleStatusOnTrip, VehicleStatusInShop, VehicleStatusRetired:
		return true
	default:
		return false
	}
}

// IsDispatchable returns true if a trip can be dispatched with this vehicle
func (vs VehicleStatus) IsDispatchable() bool {
	return vs == VehicleStatusAvailable
}

// IsManuallySettable returns true for statuses an operator may set directly.
// ON_TRIP and IN_SHOP are owned by the trip lifecycle and maintenance flow.
func (vs VehicleStatus) IsManuallySettable() bool {
	return vs == VehicleStatusAvailable || vs == VehicleStatusRetired
}

// GetAllVehicleStatuses returns all valid vehicle statuses
func GetAllVehicleStatuses() []VehicleStatus {
	return []VehicleStatus{
		VehicleStatusAvailable,
		VehicleStatusOnTrip,
		VehicleStatusInShop,
		VehicleStatusRetired,
	}
}
