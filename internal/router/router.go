package router

import (
	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/handler"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/middleware"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
)

// Deps carries everything route registration needs: the session and audit
// services consumed by middleware plus the resource handlers.
type Deps struct {
	Sessions *service.SessionService
	Audit    *service.AuditService

	Auth      *handler.AuthHandler
	Admins    *handler.AdminHandler
	Customers *handler.CustomerHandler
	Catalog   *handler.CatalogHandler
	Billing   *service.BillingService
	Holidays  *handler.HolidayHandler
	Invoices  *handler.InvoiceHandler
	Tracker   *handler.TrackerHandler
	Uploads   *handler.UploadHandler

	Directories *service.DirectoryService
}

// Register wires every API route under the given prefix. Auth endpoints and
// token-gated downloads are public; everything else passes through the
// session middleware, the per-resource permission gate and the activity
// audit trail.
func Register(r *gin.Engine, prefix string, deps Deps) {
	api := r.Group(prefix)

	// Public: credential exchange and password recovery carry no session.
	api.POST("/admin/login", deps.Auth.Login)
	api.POST("/admin/verify-two-factor", deps.Auth.VerifyOTP)
	api.POST("/admin/forgot-password", deps.Auth.ForgotPassword)
	api.POST("/admin/reset-password", deps.Auth.ResetPassword)

	// Download tokens are self-authenticating.
	api.GET("/storage/download", deps.Uploads.Download)

	authed := api.Group("")
	authed.Use(middleware.Session(deps.Sessions))

	authed.GET("/admin/logout", deps.Auth.Logout)

	admins := authed.Group("")
	admins.Use(
		middleware.RequireAction(deps.Sessions, models.ActionAdminAccess),
		middleware.Activity(deps.Audit, "admin", models.ActionAdminAccess),
	)
	admins.POST("/admin/create", deps.Admins.Create)
	admins.GET("/admin/list", deps.Admins.List)
	admins.GET("/admin/:id", deps.Admins.Get)
	admins.PUT("/admin/update/:id", deps.Admins.Update)
	admins.DELETE("/admin/delete/:id", deps.Admins.Delete)
	admins.GET("/permission/list", deps.Admins.ListPermissions)
	admins.PUT("/permission/update/:id", deps.Admins.UpdatePermissions)

	customers := authed.Group("")
	customers.Use(
		middleware.RequireAction(deps.Sessions, models.ActionClientOverview),
		middleware.Activity(deps.Audit, "customer", models.ActionClientOverview),
	)
	customers.POST("/customer/create", deps.Customers.Create)
	customers.GET("/customer/list", deps.Customers.List)
	customers.GET("/customer/:id", deps.Customers.Get)
	customers.PUT("/customer/update/:id", deps.Customers.Update)
	customers.DELETE("/customer/delete/:id", deps.Customers.Delete)
	customers.POST("/branch/create", deps.Customers.CreateBranch)
	customers.GET("/branch/list", deps.Customers.ListBranches)
	customers.PUT("/branch/update/:id", deps.Customers.UpdateBranch)
	customers.DELETE("/branch/delete/:id", deps.Customers.DeleteBranch)

	catalog := authed.Group("")
	catalog.Use(
		middleware.RequireAction(deps.Sessions, models.ActionDataManagement),
		middleware.Activity(deps.Audit, "catalog", models.ActionDataManagement),
	)
	catalog.GET("/service/is-code-unique", deps.Catalog.IsCodeUnique)
	catalog.POST("/service/create", deps.Catalog.CreateService)
	catalog.GET("/service/list", deps.Catalog.ListServices)
	catalog.PUT("/service/update/:id", deps.Catalog.UpdateService)
	catalog.DELETE("/service/delete/:id", deps.Catalog.DeleteService)
	catalog.POST("/service-group/create", deps.Catalog.CreateServiceGroup)
	catalog.GET("/service-group/list", deps.Catalog.ListServiceGroups)
	catalog.PUT("/service-group/update/:id", deps.Catalog.UpdateServiceGroup)
	catalog.DELETE("/service-group/delete/:id", deps.Catalog.DeleteServiceGroup)
	catalog.POST("/package/create", deps.Catalog.CreatePackage)
	catalog.GET("/package/list", deps.Catalog.ListPackages)
	catalog.PUT("/package/update/:id", deps.Catalog.UpdatePackage)
	catalog.DELETE("/package/delete/:id", deps.Catalog.DeletePackage)

	registerDirectory(catalog, deps, models.DirectoryVendor)
	registerDirectory(catalog, deps, models.DirectoryUniversity)
	registerDirectory(catalog, deps, models.DirectoryOrganization)

	billing := authed.Group("")
	billing.Use(
		middleware.RequireAction(deps.Sessions, models.ActionBillingDashboard),
		middleware.Activity(deps.Audit, "billing", models.ActionBillingDashboard),
	)
	registerBillingContacts(billing, deps, "/billing-spoc", models.BillingSPOC)
	registerBillingContacts(billing, deps, "/billing-escalation", models.BillingEscalation)
	registerBillingContacts(billing, deps, "/escalation-manager", models.EscalationManager)
	registerBillingContacts(billing, deps, "/authorized-detail", models.AuthorizedContact)
	billing.POST("/invoice-master/create", deps.Invoices.Create)
	billing.GET("/invoice-master/list", deps.Invoices.List)
	billing.GET("/invoice-master/export", deps.Invoices.ExportCSV)
	billing.GET("/invoice-master/:id", deps.Invoices.Get)
	billing.GET("/invoice-master/:id/pdf", deps.Invoices.ExportPDF)
	billing.PUT("/invoice-master/update/:id", deps.Invoices.Update)
	billing.DELETE("/invoice-master/delete/:id", deps.Invoices.Delete)
	billing.POST("/expense-tracker/create", deps.Invoices.CreateExpense)
	billing.GET("/expense-tracker/list", deps.Invoices.ListExpenses)
	billing.GET("/expense-tracker/export", deps.Invoices.ExportExpensesCSV)
	billing.PUT("/expense-tracker/update/:id", deps.Invoices.UpdateExpense)
	billing.DELETE("/expense-tracker/delete/:id", deps.Invoices.DeleteExpense)

	holidays := authed.Group("")
	holidays.Use(
		middleware.RequireAction(deps.Sessions, models.ActionTATReminder),
		middleware.Activity(deps.Audit, "holiday", models.ActionTATReminder),
	)
	holidays.POST("/holiday/create", deps.Holidays.Create)
	holidays.GET("/holiday/list", deps.Holidays.List)
	holidays.PUT("/holiday/update/:id", deps.Holidays.Update)
	holidays.DELETE("/holiday/delete/:id", deps.Holidays.Delete)

	activities := authed.Group("")
	activities.Use(
		middleware.RequireAction(deps.Sessions, models.ActionEmployeeCredentials),
		middleware.Activity(deps.Audit, "daily_activity", models.ActionEmployeeCredentials),
	)
	activities.POST("/daily-activity/create", deps.Holidays.CreateActivity)
	activities.GET("/daily-activity/list", deps.Holidays.ListActivities)
	activities.PUT("/daily-activity/update/:id", deps.Holidays.UpdateActivity)
	activities.DELETE("/daily-activity/delete/:id", deps.Holidays.DeleteActivity)

	tracker := authed.Group("")
	tracker.Use(
		middleware.RequireAction(deps.Sessions, models.ActionSeeMore),
		middleware.Activity(deps.Audit, "client_tracker", models.ActionSeeMore),
	)
	tracker.POST("/client-tracker/submit", deps.Tracker.Submit)
	tracker.GET("/client-tracker/list", deps.Tracker.List)
	tracker.GET("/client-tracker/:id", deps.Tracker.Get)
	tracker.DELETE("/client-tracker/delete/:id", deps.Tracker.Delete)

	storageGroup := authed.Group("")
	storageGroup.Use(
		middleware.RequireAction(deps.Sessions, models.ActionInternalStorage),
		middleware.Activity(deps.Audit, "storage", models.ActionInternalStorage),
	)
	storageGroup.POST("/storage/upload", deps.Uploads.Upload)
	storageGroup.GET("/storage/sign", deps.Uploads.SignLink)
}

func registerDirectory(g *gin.RouterGroup, deps Deps, dirType models.DirectoryType) {
	h := handler.NewDirectoryHandler(deps.Directories, dirType)
	base := "/" + string(dirType)
	g.POST(base+"/create", h.Create)
	g.GET(base+"/list", h.List)
	g.GET(base+"/:id", h.Get)
	g.PUT(base+"/update/:id", h.Update)
	g.DELETE(base+"/delete/:id", h.Delete)
}

func registerBillingContacts(g *gin.RouterGroup, deps Deps, base string, contactType models.BillingContactType) {
	h := handler.NewBillingHandler(deps.Billing, contactType)
	g.POST(base+"/create", h.Create)
	g.GET(base+"/list", h.List)
	g.PUT(base+"/update/:id", h.Update)
	g.DELETE(base+"/delete/:id", h.Delete)
}
