package rbac

// Permission identifiers
const (
	PermDashboardView      PermissionID = "dashboard.view"
	PermDashboardAnalytics PermissionID = "dashboard.analytics"

	PermPropertiesView   PermissionID = "properties.view"
	PermPropertiesManage PermissionID = "properties.manage"
	PermRoomsView        PermissionID = "rooms.view"
	PermRoomsManage      PermissionID = "rooms.manage"

	PermTenantsView    PermissionID = "tenants.view"
	PermTenantsViewAll PermissionID = "tenants.view_all"
	PermTenantsManage  PermissionID = "tenants.manage"
	PermTenantsAssign  PermissionID = "tenants.assign"

	PermPaymentsView    PermissionID = "payments.view"
	PermPaymentsViewAll PermissionID = "payments.view_all"
	PermPaymentsManage  PermissionID = "payments.manage"
	PermPaymentsCollect PermissionID = "payments.collect"

	PermReportsView   PermissionID = "reports.view"
	PermReportsExport PermissionID = "reports.export"

	PermSettingsView   PermissionID = "settings.view"
	PermSettingsManage PermissionID = "settings.manage"
	PermSettingsUsers  PermissionID = "settings.users"

	PermNotificationsView PermissionID = "notifications.view"
	PermNotificationsSend PermissionID = "notifications.send"
)

// defaultCatalog is the reference list of every permission the dashboard knows about.
// Authorization decisions read the role tables, not this list.
func defaultCatalog() []Permission {
	return []Permission{
		{PermDashboardView, "View Dashboard", "Access the main dashboard and room-status overview", CategoryDashboard},
		{PermDashboardAnalytics, "View Analytics", "See occupancy and revenue metrics on the dashboard", CategoryDashboard},

		{PermPropertiesView, "View Properties", "View property details and room listings", CategoryProperties},
		{PermPropertiesManage, "Manage Properties", "Create, edit and delete properties", CategoryProperties},
		{PermRoomsView, "View Rooms", "View the room-status matrix", CategoryProperties},
		{PermRoomsManage, "Manage Rooms", "Update room status and room details", CategoryProperties},

		{PermTenantsView, "View Tenants", "View tenant records assigned to you", CategoryTenants},
		{PermTenantsViewAll, "View All Tenants", "View every tenant record across properties", CategoryTenants},
		{PermTenantsManage, "Manage Tenants", "Create, edit and remove tenant records", CategoryTenants},
		{PermTenantsAssign, "Assign Tenants", "Assign tenants to rooms and move them between rooms", CategoryTenants},

		{PermPaymentsView, "View Payments", "View your own payment history", CategoryPayments},
		{PermPaymentsViewAll, "View All Payments", "View payments across every tenant", CategoryPayments},
		{PermPaymentsManage, "Manage Payments", "Record, adjust and reverse payments", CategoryPayments},
		{PermPaymentsCollect, "Collect Payments", "Initiate M-Pesa collection requests from tenants", CategoryPayments},

		{PermReportsView, "View Reports", "View financial and occupancy reports", CategoryReports},
		{PermReportsExport, "Export Reports", "Download reports as CSV or PDF", CategoryReports},

		{PermSettingsView, "View Settings", "View system settings", CategorySettings},
		{PermSettingsManage, "Manage Settings", "Change system settings and integrations", CategorySettings},
		{PermSettingsUsers, "Manage Users", "Invite users and change their roles", CategorySettings},

		{PermNotificationsView, "View Notifications", "Read in-app notifications", CategoryNotifications},
		{PermNotificationsSend, "Send Notifications", "Send SMS and in-app notifications to tenants", CategoryNotifications},
	}
}
