package models

import "time"

// AdminSession is the session-column projection of an admin row used by the
// token validation protocol.
type AdminSession struct {
	ID          int64      `db:"id"`
	LoginToken  *string    `db:"login_token"`
	TokenExpiry *time.Time `db:"token_expiry"`
}

// AdminAuthorization is the projection used by the permission gate.
type AdminAuthorization struct {
	ID          int64  `db:"id"`
	Role        string `db:"role"`
	Permissions []byte `db:"permissions"`
}

// Permission action catalog. Flat capability names checked by exact string
// lookup; no hierarchy or wildcards.
const (
	ActionClientOverview      = "client_overview"
	ActionEmployeeCredentials = "employee_credentials"
	ActionAdminAccess         = "admin_access"
	ActionBillingDashboard    = "billing_dashboard"
	ActionDataManagement      = "data_management"
	ActionInternalStorage     = "internal_storage"
	ActionTATReminder         = "tat_reminder"
	ActionSeeMore             = "see_more"
)

// ActionCatalog lists every seeded permission action.
var ActionCatalog = []string{
	ActionClientOverview,
	ActionEmployeeCredentials,
	ActionAdminAccess,
	ActionBillingDashboard,
	ActionDataManagement,
	ActionInternalStorage,
	ActionTATReminder,
	ActionSeeMore,
}
