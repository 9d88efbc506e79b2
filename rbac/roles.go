package rbac

// RoleDefinition is the authored form of a role's permissions.
// Each role is listed in full; there is no inheritance between roles.
type RoleDefinition struct {
	DisplayName string
	Description string
	Permissions []PermissionID
	MenuAccess  []MenuID
	DataAccess  DataAccess
}

func defaultRoles() map[Role]RoleDefinition {
	return map[Role]RoleDefinition{
		RoleLandlord: {
			DisplayName: "Landlord",
			Description: "Property owner with full access to every property, tenant, payment and setting",
			Permissions: []PermissionID{
				PermDashboardView,
				PermDashboardAnalytics,
				PermPropertiesView,
				PermPropertiesManage,
				PermRoomsView,
				PermRoomsManage,
				PermTenantsView,
				PermTenantsViewAll,
				PermTenantsManage,
				PermTenantsAssign,
				PermPaymentsView,
				PermPaymentsViewAll,
				PermPaymentsManage,
				PermPaymentsCollect,
				PermReportsView,
				PermReportsExport,
				PermSettingsView,
				PermSettingsManage,
				PermSettingsUsers,
				PermNotificationsView,
				PermNotificationsSend,
			},
			MenuAccess: []MenuID{
				MenuDashboard,
				MenuRooms,
				MenuTenants,
				MenuPayments,
				MenuReports,
				MenuNotifications,
				MenuSettings,
			},
			DataAccess: DataAccess{
				CanViewAllTenants:   true,
				CanViewAllPayments:  true,
				CanViewReports:      true,
				CanManageProperties: true,
				CanManageSettings:   true,
				CanAssignTenants:    true,
			},
		},
		RoleCaretaker: {
			DisplayName: "Caretaker",
			Description: "On-site manager who looks after rooms, tenants and day-to-day collections",
			Permissions: []PermissionID{
				PermDashboardView,
				PermPropertiesView,
				PermRoomsView,
				PermRoomsManage,
				PermTenantsView,
				PermTenantsViewAll,
				PermTenantsAssign,
				PermPaymentsView,
				PermPaymentsCollect,
				PermNotificationsView,
				PermNotificationsSend,
			},
			MenuAccess: []MenuID{
				MenuDashboard,
				MenuRooms,
				MenuTenants,
				MenuPayments,
				MenuNotifications,
			},
			DataAccess: DataAccess{
				CanViewAllTenants: true,
				CanAssignTenants:  true,
			},
		},
		RoleTenant: {
			DisplayName: "Tenant",
			Description: "Resident who can see their own payments and notifications",
			Permissions: []PermissionID{
				PermDashboardView,
				PermPaymentsView,
				PermNotificationsView,
			},
			MenuAccess: []MenuID{
				MenuDashboard,
				MenuPayments,
				MenuNotifications,
			},
		},
	}
}
