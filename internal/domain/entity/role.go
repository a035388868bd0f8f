// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of actor a user can be in the supply chain.
type Role string

const (
	// RoleFarmer registers produce batches at origin.
	RoleFarmer Role = "farmer"
	// RoleDistributor moves batches between farms and retail.
	RoleDistributor Role = "distributor"
	// RoleRetailer sells batches to end consumers.
	RoleRetailer Role = "retailer"
	// RoleConsumer buys and verifies batches.
	RoleConsumer Role = "consumer"
	// RoleAdmin administers the platform. Admin accounts are only ever seeded,
	// never self-registered.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleFarmer, RoleDistributor, RoleRetailer, RoleConsumer, RoleAdmin:
		return true
	default:
		return false
	}
}

// SelfRegistrable reports whether a role may be chosen during public registration.
func (r Role) SelfRegistrable() bool {
	return r.IsValid() && r != RoleAdmin
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for route declarations and JWT claims.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
