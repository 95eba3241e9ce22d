// Package web assembles the HTTP API.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/account"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/attendance"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/dashboard"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/leave"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
	attendancehandler "github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/handlers/attendance"
	authhandler "github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/handlers/auth"
	dashboardhandler "github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/handlers/dashboard"
	leavehandler "github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/handlers/leave"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/handlers/users"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/middlewares"
)

type Options struct {
	BasePath     string
	AllowOrigins []string
	ExposeErrors bool
	Location     *time.Location
}

type Services struct {
	Tokens      *security.TokenIssuer
	Credentials *account.CredentialStore
	Directory   *account.Directory
	Attendance  *attendance.Ledger
	Leave       *leave.Ledger
	Dashboard   *dashboard.Service
}

// NewServices builds the ledgers over one database. notifier may be nil.
func NewServices(dm *core.DatabaseManager, tokens *security.TokenIssuer, hasher *security.PasswordHasher, loc *time.Location, notifier leave.Notifier) Services {
	return Services{
		Tokens:      tokens,
		Credentials: account.NewCredentialStore(dm, hasher),
		Directory:   account.NewDirectory(dm, hasher),
		Attendance:  attendance.NewLedger(dm, loc),
		Leave:       leave.NewLedger(dm, notifier),
		Dashboard:   dashboard.NewService(dm, loc),
	}
}

func NewRouter(opts Options, s Services) *gin.Engine {
	if opts.BasePath == "" {
		opts.BasePath = "/api"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	base := common.Handler{ExposeErrors: opts.ExposeErrors}

	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		logging.RequestLogger(),
		gin.Recovery(),
		middlewares.CORS(opts.AllowOrigins),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := r.Group(opts.BasePath)
	authhandler.Register(api.Group("/auth"), base, s.Credentials, s.Tokens)

	protected := api.Group("")
	protected.Use(middlewares.Authentication(s.Tokens))
	{
		attendancehandler.Register(protected.Group("/attendance"), base, s.Attendance, opts.Location)
		leavehandler.Register(protected.Group("/leaves"), base, s.Leave)
		users.Register(protected.Group("/users", middlewares.AdminOnly()), base, s.Directory)
		dashboardhandler.Register(protected.Group("/dashboard"), base, s.Dashboard)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Route not found"))
	})

	return r
}
