package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

const (
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	workbookSheet       = "Attendance"
)

var workbookHeader = []interface{}{
	"Employee", "Email", "Department", "Date", "Clock In", "Clock Out", "Hours", "Status",
}

// Exporter writes attendance records to an xlsx workbook.
type Exporter struct {
	ledger *Ledger
}

func NewExporter(ledger *Ledger) *Exporter {
	return &Exporter{ledger: ledger}
}

// WriteWorkbook writes one row per record dated in [from, to). Zero bounds are open.
func (e *Exporter) WriteWorkbook(ctx context.Context, w io.Writer, from, to time.Time) (int, error) {
	var fromPtr, toPtr *time.Time
	if !from.IsZero() {
		fromPtr = &from
	}
	if !to.IsZero() {
		toPtr = &to
	}
	records, err := e.ledger.between(ctx, fromPtr, toPtr)
	if err != nil {
		return 0, fmt.Errorf("failed to load attendance: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &workbookHeader); err != nil {
		return 0, err
	}

	for i, r := range records {
		row := e.row(r)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(workbookSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(records), nil
}

func (e *Exporter) row(r model.AttendanceRecord) []interface{} {
	loc := e.ledger.loc
	var name, email, department string
	if r.User != nil {
		name, email, department = r.User.Name, r.User.Email, r.User.Department
	}
	hours := ""
	if r.TotalHours != nil {
		hours = fmt.Sprintf("%.2f", *r.TotalHours)
	}
	return []interface{}{
		name,
		email,
		department,
		r.Date.In(loc).Format(utils.DateLayout),
		utils.FormatTime(r.ClockIn, loc, "15:04"),
		utils.FormatTime(r.ClockOut, loc, "15:04"),
		hours,
		string(r.Status),
	}
}
