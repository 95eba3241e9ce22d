package attendance

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ledger "github.com/UmerHayat389/provemvp-umerhayat-design-portal/attendance"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/middlewares"
)

type Endpoint struct {
	base     common.Handler
	ledger   *ledger.Ledger
	exporter *ledger.Exporter
	loc      *time.Location
}

func Register(r *gin.RouterGroup, base common.Handler, l *ledger.Ledger, loc *time.Location) {
	endpoint := &Endpoint{base: base, ledger: l, exporter: ledger.NewExporter(l), loc: loc}
	r.POST("/clock-in", endpoint.ClockIn)
	r.POST("/clock-out", endpoint.ClockOut)
	r.GET("/my-records", endpoint.MyRecords)
	r.POST("/mark-status", endpoint.MarkStatus)

	admin := r.Group("", middlewares.AdminOnly())
	admin.GET("/all-records", endpoint.AllRecords)
	admin.GET("/export", endpoint.Export)
}

type AttendanceResponse struct {
	Message    string                  `json:"message"`
	Attendance *model.AttendanceRecord `json:"attendance"`
}

func (ep *Endpoint) identity(c *gin.Context) (security.Identity, bool) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok || identity.ID == "" {
		ep.base.Fail(c, core.ErrNotAuthorized)
		return security.Identity{}, false
	}
	return identity, true
}

func (ep *Endpoint) ClockIn(c *gin.Context) {
	identity, ok := ep.identity(c)
	if !ok {
		return
	}
	record, err := ep.ledger.ClockIn(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AttendanceResponse{Message: "Clocked in successfully.", Attendance: record})
}

func (ep *Endpoint) ClockOut(c *gin.Context) {
	identity, ok := ep.identity(c)
	if !ok {
		return
	}
	record, err := ep.ledger.ClockOut(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AttendanceResponse{Message: "Clocked out successfully.", Attendance: record})
}

func (ep *Endpoint) MyRecords(c *gin.Context) {
	identity, ok := ep.identity(c)
	if !ok {
		return
	}
	records, err := ep.ledger.MyRecords(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (ep *Endpoint) AllRecords(c *gin.Context) {
	records, err := ep.ledger.AllRecords(c.Request.Context())
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type MarkStatusDTO struct {
	Status model.AttendanceStatus `json:"status"`
}

func (ep *Endpoint) MarkStatus(c *gin.Context) {
	identity, ok := ep.identity(c)
	if !ok {
		return
	}
	var body MarkStatusDTO
	if err := common.ShouldBindBody(c, &body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	record, err := ep.ledger.MarkStatus(c.Request.Context(), identity.ID, body.Status)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AttendanceResponse{
		Message:    fmt.Sprintf("Attendance marked as %s.", body.Status),
		Attendance: record,
	})
}

type ExportQuery struct {
	From *common.DateOnly `form:"from"`
	To   *common.DateOnly `form:"to"`
}

// Export streams an xlsx workbook of records dated in [from, to], both days included.
func (ep *Endpoint) Export(c *gin.Context) {
	var query ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	from := query.From.Midnight(ep.loc)
	to := query.To.Midnight(ep.loc)
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	var buf bytes.Buffer
	if _, err := ep.exporter.WriteWorkbook(c.Request.Context(), &buf, from, to); err != nil {
		ep.base.Fail(c, core.NewInternalError("Server error exporting attendance.", err))
		return
	}

	filename := "attendance.xlsx"
	if !from.IsZero() {
		filename = fmt.Sprintf("attendance-%s.xlsx", from.Format(utils.DateLayout))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, ledger.WorkbookContentType, buf.Bytes())
}
