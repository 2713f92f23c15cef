// Package domain holds the persistent entities of the diagnosis service.
//
// Primary keys are auto-increment integers: rule evaluation order is the
// insertion order of rules, so identifiers must be monotonically assigned.
package domain

// Roles a User may hold.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleUser       = "user"
)
