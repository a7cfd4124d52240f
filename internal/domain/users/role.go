package users

// Role is the platform role attached to every account
type Role string

// Supported roles
const (
	RoleAdmin     Role = "ADMIN"
	RoleOperator  Role = "OPERATOR"
	RoleCaregiver Role = "CAREGIVER"
	RoleFamily    Role = "FAMILY"
	RoleStaff     Role = "STAFF"
	RoleAffiliate Role = "AFFILIATE"
	RoleProvider  Role = "PROVIDER"
)

// AllRoles lists every role in display order
var AllRoles = []Role{RoleAdmin, RoleOperator, RoleCaregiver, RoleFamily, RoleStaff, RoleAffiliate, RoleProvider}

// SelfServiceRoles may be chosen at registration; the rest are granted by an admin
var SelfServiceRoles = []Role{RoleFamily, RoleCaregiver, RoleProvider, RoleAffiliate}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// In reports whether r is one of roles
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Permission names a capability checked by handlers and services
type Permission string

// Permissions
const (
	PermUsersView         Permission = "users.view"
	PermUsersManage       Permission = "users.manage"
	PermResidentsView     Permission = "residents.view"
	PermResidentsManage   Permission = "residents.manage"
	PermHomesManage       Permission = "homes.manage"
	PermLeadsCreate       Permission = "leads.create"
	PermLeadsManage       Permission = "leads.manage"
	PermShiftsCreate      Permission = "shifts.create"
	PermShiftsApply       Permission = "shifts.apply"
	PermAppointmentsView  Permission = "appointments.view"
	PermDocumentsUpload   Permission = "documents.upload"
	PermComplianceManage  Permission = "compliance.manage"
	PermAssessmentsManage Permission = "assessments.manage"
	PermPaymentsManage    Permission = "payments.manage"
	PermAuditView         Permission = "audit.view"
	PermAuditExport       Permission = "audit.export"
	PermDashboardView     Permission = "dashboard.view"
)

// rolePermissions maps every non-admin role to its grants. ADMIN holds all.
var rolePermissions = map[Role][]Permission{
	RoleOperator: {
		PermUsersView, PermResidentsView, PermResidentsManage, PermHomesManage,
		PermLeadsManage, PermShiftsCreate, PermAppointmentsView, PermComplianceManage,
		PermAssessmentsManage, PermDashboardView,
	},
	RoleStaff: {
		PermUsersView, PermResidentsView, PermResidentsManage, PermShiftsCreate,
		PermAppointmentsView, PermComplianceManage, PermAssessmentsManage, PermDashboardView,
	},
	RoleCaregiver: {
		PermResidentsView, PermShiftsApply, PermAppointmentsView, PermDashboardView,
	},
	RoleFamily: {
		PermResidentsView, PermLeadsCreate, PermAppointmentsView, PermDocumentsUpload, PermDashboardView,
	},
	RoleProvider: {
		PermAppointmentsView, PermDashboardView,
	},
	RoleAffiliate: {
		PermDashboardView,
	},
}

// HasPermission reports whether role grants perm
func HasPermission(role Role, perm Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, granted := range rolePermissions[role] {
		if granted == perm {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller of an operation
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// Is reports whether the principal holds one of roles
func (p Principal) Is(roles ...Role) bool {
	return p.Role.In(roles...)
}

// Can reports whether the principal's role grants perm
func (p Principal) Can(perm Permission) bool {
	return HasPermission(p.Role, perm)
}
