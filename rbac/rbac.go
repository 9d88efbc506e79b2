// Package rbac holds the dashboard's role-based access-control model.
//
// The model is a static mapping from each role (landlord, caretaker, tenant)
// to the permissions, menu sections and data-access flags it is granted, plus
// a reference catalog of every permission. Tables are built and validated once
// at package initialization and never change afterwards.
//
// Every check is deny-by-default: unknown roles, permission ids, menu ids and
// feature names all evaluate to false.
package rbac

import "fmt"

var defaultTable = mustDefaultTable()

func mustDefaultTable() *Table {
	t, err := NewTable(defaultCatalog(), defaultRoles())
	if err != nil {
		panic(fmt.Sprintf("rbac: %v", err))
	}
	return t
}

// Default returns the process-wide permission table
func Default() *Table {
	return defaultTable
}

// Validate rebuilds the default tables and reports any inconsistency.
// Intended for startup checks and tests.
func Validate() error {
	_, err := NewTable(defaultCatalog(), defaultRoles())
	return err
}

// HasPermission reports whether role is granted the permission id
func HasPermission(role Role, id string) bool {
	return defaultTable.HasPermission(role, id)
}

// HasMenuAccess reports whether role may navigate to the menu section id
func HasMenuAccess(role Role, id string) bool {
	return defaultTable.HasMenuAccess(role, id)
}

// CanAccessFeature returns the role's data-access flag f
func CanAccessFeature(role Role, f Feature) bool {
	return defaultTable.CanAccessFeature(role, f)
}

// GetRolePermissions returns the full profile for role, or ErrInvalidRole
func GetRolePermissions(role Role) (RolePermissions, error) {
	return defaultTable.GetRolePermissions(role)
}

// GetPermissionsByCategory returns the catalog entries in category c
func GetPermissionsByCategory(c Category) []Permission {
	return defaultTable.GetPermissionsByCategory(c)
}

// Roles returns every known role
func Roles() []Role {
	return append([]Role(nil), allRoles...)
}

// Categories returns every permission category
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// Menus returns every menu section id
func Menus() []MenuID {
	return append([]MenuID(nil), allMenus...)
}

// Features returns every data-access flag name
func Features() []Feature {
	return append([]Feature(nil), allFeatures...)
}

// ParseFeature returns the Feature named s, or false if s names no flag
func ParseFeature(s string) (Feature, bool) {
	for _, f := range allFeatures {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// ParseCategory returns the Category named s, or false if unknown
func ParseCategory(s string) (Category, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
