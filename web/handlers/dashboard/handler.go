package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	stats "github.com/UmerHayat389/provemvp-umerhayat-design-portal/dashboard"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/middlewares"
)

type Endpoint struct {
	base    common.Handler
	service *stats.Service
}

func Register(r *gin.RouterGroup, base common.Handler, service *stats.Service) {
	endpoint := &Endpoint{base: base, service: service}
	r.GET("/admin", middlewares.AdminOnly(), endpoint.Admin)
	r.GET("/employee", endpoint.Employee)
}

func (ep *Endpoint) Admin(c *gin.Context) {
	res, err := ep.service.AdminStats(c.Request.Context())
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ep *Endpoint) Employee(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		ep.base.Fail(c, core.ErrNotAuthorized)
		return
	}
	res, err := ep.service.EmployeeStats(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
