package userstate

import "github.com/akimovd/wastepoint/internal/client/models"

// Permission is a named capability checked against a role's fixed allow-set.
type Permission string

const (
	PermViewReports         Permission = "VIEW_REPORTS"
	PermManageCollectors    Permission = "MANAGE_COLLECTORS"
	PermViewWasteTracking   Permission = "VIEW_WASTE_TRACKING"
	PermViewServiceRequests Permission = "VIEW_SERVICE_REQUESTS"
	PermUpdateServiceStatus Permission = "UPDATE_SERVICE_STATUS"
	PermViewSchedule        Permission = "VIEW_SCHEDULE"
	PermRequestPickup       Permission = "REQUEST_PICKUP"
	PermViewPaymentHistory  Permission = "VIEW_PAYMENT_HISTORY"
	PermRateCollector       Permission = "RATE_COLLECTOR"
)

// RoleAllows evaluates the fixed role → permission-set table. The switch is
// exhaustive over models.Role; an unknown role holds no permissions.
func RoleAllows(role models.Role, p Permission) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleMunicipality, models.RoleMunicipalManager:
		return p == PermViewReports || p == PermManageCollectors || p == PermViewWasteTracking
	case models.RoleCollector:
		return p == PermViewServiceRequests || p == PermUpdateServiceStatus || p == PermViewSchedule
	case models.RoleHousehold:
		return p == PermRequestPickup || p == PermViewPaymentHistory || p == PermRateCollector
	}
	return false
}
