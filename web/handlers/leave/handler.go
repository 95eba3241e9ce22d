package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	ledger "github.com/UmerHayat389/provemvp-umerhayat-design-portal/leave"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/middlewares"
)

type Endpoint struct {
	base   common.Handler
	ledger *ledger.Ledger
}

func Register(r *gin.RouterGroup, base common.Handler, l *ledger.Ledger) {
	endpoint := &Endpoint{base: base, ledger: l}
	r.GET("/my-leaves", endpoint.MyLeaves)
	r.POST("", endpoint.Apply)

	admin := r.Group("", middlewares.AdminOnly())
	admin.GET("", endpoint.AllLeaves)
	admin.PUT("/:id/status", endpoint.UpdateStatus)
}

type LeaveResponse struct {
	Message string                  `json:"message"`
	Leave   *model.LeaveApplication `json:"leave"`
}

type ApplyDTO struct {
	LeaveType   string `json:"leaveType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (ep *Endpoint) Apply(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		ep.base.Fail(c, core.ErrNotAuthorized)
		return
	}
	var body ApplyDTO
	if err := common.ShouldBindBody(c, &body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	leave, err := ep.ledger.Apply(c.Request.Context(), identity.ID, ledger.ApplyInput{
		LeaveType:   body.LeaveType,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Reason:      body.Reason,
		Description: body.Description,
	})
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, LeaveResponse{Message: "Leave application submitted.", Leave: leave})
}

func (ep *Endpoint) MyLeaves(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		ep.base.Fail(c, core.ErrNotAuthorized)
		return
	}
	leaves, err := ep.ledger.MyLeaves(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

func (ep *Endpoint) AllLeaves(c *gin.Context) {
	leaves, err := ep.ledger.AllLeaves(c.Request.Context())
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

type StatusDTO struct {
	Status model.LeaveStatus `json:"status"`
}

func (ep *Endpoint) UpdateStatus(c *gin.Context) {
	identity, _ := middlewares.GetIdentity(c)
	var body StatusDTO
	if err := common.ShouldBindBody(c, &body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	leave, err := ep.ledger.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status, identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, LeaveResponse{Message: ledger.StatusMessage(leave.Status), Leave: leave})
}
