package rbac

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsConsistent(t *testing.T) {
	require.NoError(t, Validate())
	require.NotNil(t, Default())
}

func TestGetRolePermissions_Totality(t *testing.T) {
	for _, role := range Roles() {
		t.Run(string(role), func(t *testing.T) {
			profile, err := GetRolePermissions(role)
			require.NoError(t, err)
			assert.Equal(t, role, profile.Role)
			assert.NotEmpty(t, profile.DisplayName)
			assert.NotEmpty(t, profile.Description)
		})
	}

	landlord, err := GetRolePermissions(RoleLandlord)
	require.NoError(t, err)
	assert.NotEmpty(t, landlord.Permissions)
	assert.NotEmpty(t, landlord.MenuAccess)
}

func TestGetRolePermissions_InvalidRole(t *testing.T) {
	profile, err := GetRolePermissions(Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, profile.Permissions)
	assert.Empty(t, profile.MenuAccess)
	assert.Equal(t, DataAccess{}, profile.DataAccess)
}

func TestGetRolePermissions_ReturnsCopy(t *testing.T) {
	first, err := GetRolePermissions(RoleTenant)
	require.NoError(t, err)
	first.Permissions[0] = PermSettingsUsers
	first.MenuAccess = append(first.MenuAccess, MenuSettings)

	second, err := GetRolePermissions(RoleTenant)
	require.NoError(t, err)
	assert.NotContains(t, second.Permissions, PermSettingsUsers)
	assert.False(t, HasPermission(RoleTenant, string(PermSettingsUsers)))
	assert.False(t, HasMenuAccess(RoleTenant, string(MenuSettings)))
}

func TestHasPermission_UnknownIDDenied(t *testing.T) {
	unknown := []string{"", "payments", "payments.*", "settings.users.extra", "PAYMENTS.VIEW", "rooms.delete"}
	for _, role := range Roles() {
		for _, id := range unknown {
			_, inCatalog := Default().Lookup(id)
			require.False(t, inCatalog, id)
			assert.False(t, HasPermission(role, id), "%s/%s", role, id)
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	invalid := []Role{"", "admin", "Landlord", "owner"}
	for _, role := range invalid {
		t.Run(string(role), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, HasMenuAccess(role, "dashboard"))
				assert.False(t, HasPermission(role, "dashboard.view"))
				for _, f := range Features() {
					assert.False(t, CanAccessFeature(role, f))
				}
			})
		})
	}
}

func TestCatalogCompleteness(t *testing.T) {
	for _, role := range Roles() {
		profile, err := GetRolePermissions(role)
		require.NoError(t, err)
		for _, id := range profile.Permissions {
			_, ok := Default().Lookup(string(id))
			assert.True(t, ok, "role %s grants %s which is missing from the catalog", role, id)
		}
	}
}

func TestTenantHasNoDataAccess(t *testing.T) {
	profile, err := GetRolePermissions(RoleTenant)
	require.NoError(t, err)
	assert.Equal(t, DataAccess{}, profile.DataAccess)
	for _, f := range Features() {
		assert.False(t, CanAccessFeature(RoleTenant, f), string(f))
	}
}

func TestGetPermissionsByCategory(t *testing.T) {
	t.Run("payments returns exactly the payment permissions", func(t *testing.T) {
		perms := GetPermissionsByCategory(CategoryPayments)
		ids := make([]PermissionID, 0, len(perms))
		for _, p := range perms {
			assert.Equal(t, CategoryPayments, p.Category)
			ids = append(ids, p.ID)
		}
		assert.ElementsMatch(t, []PermissionID{
			"payments.view",
			"payments.view_all",
			"payments.manage",
			"payments.collect",
		}, ids)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		perms := GetPermissionsByCategory(Category("billing"))
		assert.NotNil(t, perms)
		assert.Empty(t, perms)
	})

	t.Run("every category is populated", func(t *testing.T) {
		total := 0
		for _, c := range Categories() {
			perms := GetPermissionsByCategory(c)
			assert.NotEmpty(t, perms, string(c))
			total += len(perms)
		}
		assert.Len(t, Default().Catalog(), total)
	})
}

func TestScenarios(t *testing.T) {
	t.Run("landlord full access", func(t *testing.T) {
		assert.True(t, HasPermission(RoleLandlord, "settings.users"))
		assert.True(t, HasMenuAccess(RoleLandlord, "reports"))
		for _, f := range Features() {
			assert.True(t, CanAccessFeature(RoleLandlord, f), string(f))
		}
	})

	t.Run("caretaker restricted reports", func(t *testing.T) {
		assert.False(t, HasMenuAccess(RoleCaretaker, "reports"))
		assert.False(t, HasPermission(RoleCaretaker, "payments.view_all"))
		assert.True(t, HasPermission(RoleCaretaker, "payments.collect"))
		assert.True(t, CanAccessFeature(RoleCaretaker, FeatureAssignTenants))
		assert.False(t, CanAccessFeature(RoleCaretaker, FeatureViewReports))
	})

	t.Run("tenant minimal access", func(t *testing.T) {
		profile, err := GetRolePermissions(RoleTenant)
		require.NoError(t, err)
		assert.ElementsMatch(t, []MenuID{MenuDashboard, MenuPayments, MenuNotifications}, profile.MenuAccess)
		assert.False(t, CanAccessFeature(RoleTenant, FeatureAssignTenants))
	})
}

func TestCanAccessFeature_UnknownFlag(t *testing.T) {
	assert.False(t, CanAccessFeature(RoleLandlord, Feature("canDoAnything")))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "landlord", want: RoleLandlord},
		{in: " Caretaker ", want: RoleCaretaker},
		{in: "TENANT", want: RoleTenant},
		{in: "", wantErr: true},
		{in: "admin", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeatureAndCategory(t *testing.T) {
	f, ok := ParseFeature("canViewReports")
	assert.True(t, ok)
	assert.Equal(t, FeatureViewReports, f)

	_, ok = ParseFeature("canviewreports")
	assert.False(t, ok)

	c, ok := ParseCategory("notifications")
	assert.True(t, ok)
	assert.Equal(t, CategoryNotifications, c)

	_, ok = ParseCategory("billing")
	assert.False(t, ok)
}

func TestConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = HasPermission(RoleCaretaker, "tenants.assign")
				_ = HasMenuAccess(RoleTenant, "payments")
				_, _ = GetRolePermissions(RoleLandlord)
				_ = GetPermissionsByCategory(CategoryTenants)
			}
		}()
	}
	wg.Wait()
	assert.True(t, HasPermission(RoleCaretaker, "tenants.assign"))
}
