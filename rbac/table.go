package rbac

import (
	"errors"
	"fmt"
	"sort"
)

// Table is an immutable, validated set of permission tables.
// All methods are safe for concurrent use.
type Table struct {
	catalog    map[PermissionID]Permission
	byCategory map[Category][]Permission
	roles      map[Role]*roleEntry
}

type roleEntry struct {
	profile     RolePermissions
	permissions map[PermissionID]struct{}
	menus       map[MenuID]struct{}
}

// NewTable validates the catalog and role definitions and builds a Table.
// Every known role must be defined, every granted permission must exist in the
// catalog, every catalog entry must be granted to at least one role and every
// menu id must be a known menu.
func NewTable(catalog []Permission, roles map[Role]RoleDefinition) (*Table, error) {
	var errs []error

	t := &Table{
		catalog:    make(map[PermissionID]Permission, len(catalog)),
		byCategory: make(map[Category][]Permission),
		roles:      make(map[Role]*roleEntry, len(roles)),
	}

	knownCategories := make(map[Category]struct{}, len(allCategories))
	for _, c := range allCategories {
		knownCategories[c] = struct{}{}
	}
	for _, p := range catalog {
		if p.ID == "" {
			errs = append(errs, errors.New("catalog entry with empty id"))
			continue
		}
		if _, dup := t.catalog[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate catalog entry %q", p.ID))
			continue
		}
		if _, ok := knownCategories[p.Category]; !ok {
			errs = append(errs, fmt.Errorf("permission %q has unknown category %q", p.ID, p.Category))
		}
		t.catalog[p.ID] = p
		t.byCategory[p.Category] = append(t.byCategory[p.Category], p)
	}
	for c := range t.byCategory {
		entries := t.byCategory[c]
		sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	}

	knownMenus := make(map[MenuID]struct{}, len(allMenus))
	for _, m := range allMenus {
		knownMenus[m] = struct{}{}
	}

	granted := make(map[PermissionID]struct{}, len(catalog))
	for _, role := range allRoles {
		def, ok := roles[role]
		if !ok {
			errs = append(errs, fmt.Errorf("role %q has no definition", role))
			continue
		}
		entry := &roleEntry{
			permissions: make(map[PermissionID]struct{}, len(def.Permissions)),
			menus:       make(map[MenuID]struct{}, len(def.MenuAccess)),
		}
		for _, id := range def.Permissions {
			if _, ok := t.catalog[id]; !ok {
				errs = append(errs, fmt.Errorf("role %q grants unknown permission %q", role, id))
				continue
			}
			entry.permissions[id] = struct{}{}
			granted[id] = struct{}{}
		}
		for _, m := range def.MenuAccess {
			if _, ok := knownMenus[m]; !ok {
				errs = append(errs, fmt.Errorf("role %q grants unknown menu %q", role, m))
				continue
			}
			entry.menus[m] = struct{}{}
		}
		entry.profile = RolePermissions{
			Role:        role,
			DisplayName: def.DisplayName,
			Description: def.Description,
			Permissions: sortedKeys(entry.permissions),
			MenuAccess:  sortedMenus(entry.menus),
			DataAccess:  def.DataAccess,
		}
		t.roles[role] = entry
	}
	for role := range roles {
		if !role.Valid() {
			errs = append(errs, fmt.Errorf("definition for unknown role %q", role))
		}
	}

	for _, p := range catalog {
		if _, ok := granted[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("permission %q is not granted to any role", p.ID))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInconsistentTable, errors.Join(errs...))
	}
	return t, nil
}

// HasPermission reports whether role is granted the permission id.
// Unknown roles and unknown ids are denied.
func (t *Table) HasPermission(role Role, id string) bool {
	entry, ok := t.roles[role]
	if !ok {
		return false
	}
	_, ok = entry.permissions[PermissionID(id)]
	return ok
}

// HasMenuAccess reports whether role may navigate to the menu section id
func (t *Table) HasMenuAccess(role Role, id string) bool {
	entry, ok := t.roles[role]
	if !ok {
		return false
	}
	_, ok = entry.menus[MenuID(id)]
	return ok
}

// CanAccessFeature returns the role's data-access flag f
func (t *Table) CanAccessFeature(role Role, f Feature) bool {
	entry, ok := t.roles[role]
	if !ok {
		return false
	}
	v, _ := entry.profile.DataAccess.Flag(f)
	return v
}

// GetRolePermissions returns a copy of the role's profile
func (t *Table) GetRolePermissions(role Role) (RolePermissions, error) {
	entry, ok := t.roles[role]
	if !ok {
		return RolePermissions{}, ErrInvalidRole
	}
	p := entry.profile
	p.Permissions = append([]PermissionID(nil), p.Permissions...)
	p.MenuAccess = append([]MenuID(nil), p.MenuAccess...)
	return p, nil
}

// GetPermissionsByCategory returns catalog entries in category c sorted by id.
// An unknown or empty category yields an empty slice.
func (t *Table) GetPermissionsByCategory(c Category) []Permission {
	return append([]Permission{}, t.byCategory[c]...)
}

// Catalog returns every catalog entry sorted by category then id
func (t *Table) Catalog() []Permission {
	out := make([]Permission, 0, len(t.catalog))
	for _, c := range allCategories {
		out = append(out, t.byCategory[c]...)
	}
	return out
}

// Lookup returns the catalog entry for id. Access checks use it to label
// results with the permission's display name.
func (t *Table) Lookup(id string) (Permission, bool) {
	p, ok := t.catalog[PermissionID(id)]
	return p, ok
}

func sortedKeys(set map[PermissionID]struct{}) []PermissionID {
	out := make([]PermissionID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedMenus(set map[MenuID]struct{}) []MenuID {
	out := make([]MenuID, 0, len(set))
	for _, m := range allMenus {
		if _, ok := set[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
