package rbac

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidRole is returned when a role value is not one of the known roles
	ErrInvalidRole = errors.New("invalid role")

	// ErrInconsistentTable is returned when the permission tables fail validation
	ErrInconsistentTable = errors.New("inconsistent permission table")
)

// Role is the access-control identity a session is classified under
type Role string

const (
	RoleLandlord  Role = "landlord"
	RoleCaretaker Role = "caretaker"
	RoleTenant    Role = "tenant"
)

// allRoles lists every role in display order
var allRoles = []Role{RoleLandlord, RoleCaretaker, RoleTenant}

// ParseRole normalizes a role string and returns ErrInvalidRole for unknown values
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleLandlord, RoleCaretaker, RoleTenant:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// PermissionID is a dot-namespaced capability identifier
type PermissionID string

// Category groups permissions for presentation
type Category string

const (
	CategoryDashboard     Category = "dashboard"
	CategoryProperties    Category = "properties"
	CategoryTenants       Category = "tenants"
	CategoryPayments      Category = "payments"
	CategoryReports       Category = "reports"
	CategorySettings      Category = "settings"
	CategoryNotifications Category = "notifications"
)

var allCategories = []Category{
	CategoryDashboard,
	CategoryProperties,
	CategoryTenants,
	CategoryPayments,
	CategoryReports,
	CategorySettings,
	CategoryNotifications,
}

// MenuID identifies a navigable dashboard section
type MenuID string

const (
	MenuDashboard     MenuID = "dashboard"
	MenuRooms         MenuID = "rooms"
	MenuTenants       MenuID = "tenants"
	MenuPayments      MenuID = "payments"
	MenuReports       MenuID = "reports"
	MenuNotifications MenuID = "notifications"
	MenuSettings      MenuID = "settings"
)

var allMenus = []MenuID{
	MenuDashboard,
	MenuRooms,
	MenuTenants,
	MenuPayments,
	MenuReports,
	MenuNotifications,
	MenuSettings,
}

// Feature names one of the coarse data-access flags
type Feature string

const (
	FeatureViewAllTenants   Feature = "canViewAllTenants"
	FeatureViewAllPayments  Feature = "canViewAllPayments"
	FeatureViewReports      Feature = "canViewReports"
	FeatureManageProperties Feature = "canManageProperties"
	FeatureManageSettings   Feature = "canManageSettings"
	FeatureAssignTenants    Feature = "canAssignTenants"
)

var allFeatures = []Feature{
	FeatureViewAllTenants,
	FeatureViewAllPayments,
	FeatureViewReports,
	FeatureManageProperties,
	FeatureManageSettings,
	FeatureAssignTenants,
}

// Permission is a catalog entry describing a capability
type Permission struct {
	ID          PermissionID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
}

// DataAccess summarizes whether a role may see data across all records
type DataAccess struct {
	CanViewAllTenants   bool `json:"canViewAllTenants"`
	CanViewAllPayments  bool `json:"canViewAllPayments"`
	CanViewReports      bool `json:"canViewReports"`
	CanManageProperties bool `json:"canManageProperties"`
	CanManageSettings   bool `json:"canManageSettings"`
	CanAssignTenants    bool `json:"canAssignTenants"`
}

// Flag returns the value of the named flag. Unknown names report false.
func (d DataAccess) Flag(f Feature) (value bool, known bool) {
	switch f {
	case FeatureViewAllTenants:
		return d.CanViewAllTenants, true
	case FeatureViewAllPayments:
		return d.CanViewAllPayments, true
	case FeatureViewReports:
		return d.CanViewReports, true
	case FeatureManageProperties:
		return d.CanManageProperties, true
	case FeatureManageSettings:
		return d.CanManageSettings, true
	case FeatureAssignTenants:
		return d.CanAssignTenants, true
	}
	return false, false
}

// RolePermissions is the full permission profile of a role
type RolePermissions struct {
	Role        Role           `json:"role"`
	DisplayName string         `json:"displayName"`
	Description string         `json:"description"`
	Permissions []PermissionID `json:"permissions"`
	MenuAccess  []MenuID       `json:"menuAccess"`
	DataAccess  DataAccess     `json:"dataAccess"`
}
