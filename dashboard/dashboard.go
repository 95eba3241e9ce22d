package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

type AdminStats struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PendingLeaves  int64 `json:"pendingLeaves"`
}

type EmployeeStats struct {
	PresentDays    int64   `json:"presentDays"`
	AbsentDays     int64   `json:"absentDays"`
	LeaveDays      int64   `json:"leaveDays"`
	TotalHours     float64 `json:"totalHours"`
	PendingLeaves  int64   `json:"pendingLeaves"`
	ApprovedLeaves int64   `json:"approvedLeaves"`
	ClockedIn      bool    `json:"clockedIn"`
}

type Service struct {
	dm    *core.DatabaseManager
	loc   *time.Location
	Clock func() time.Time
}

func NewService(dm *core.DatabaseManager, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{dm: dm, loc: loc, Clock: time.Now}
}

// AdminStats counts active employees and leave applications awaiting review.
func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		if err := db.Model(&model.User{}).
			Where("role = ? AND is_active = ?", model.RoleEmployee, true).
			Count(&stats.TotalEmployees).Error; err != nil {
			return err
		}
		return db.Model(&model.LeaveApplication{}).
			Where("status = ?", model.LeavePending).
			Count(&stats.PendingLeaves).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error loading dashboard.", err)
	}
	return &stats, nil
}

type statusCount struct {
	Status model.AttendanceStatus
	Count  int64
	Hours  float64
}

// EmployeeStats summarizes userID's current month. Pending leaves are counted
// regardless of date; approved leaves are those starting this month.
func (s *Service) EmployeeStats(ctx context.Context, userID string) (*EmployeeStats, error) {
	start, end := utils.MonthWindow(s.Clock(), s.loc)
	var stats EmployeeStats

	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		var counts []statusCount
		if err := db.Model(&model.AttendanceRecord{}).
			Select("status, COUNT(*) AS count, COALESCE(SUM(total_hours), 0) AS hours").
			Where("user_id = ? AND date >= ? AND date < ?", userID, start.UTC(), end.UTC()).
			Group("status").
			Scan(&counts).Error; err != nil {
			return err
		}
		for _, c := range counts {
			switch c.Status {
			case model.AttendancePresent:
				stats.PresentDays = c.Count
			case model.AttendanceAbsent:
				stats.AbsentDays = c.Count
			case model.AttendanceLeave:
				stats.LeaveDays = c.Count
			}
			stats.TotalHours += c.Hours
		}

		if err := db.Model(&model.LeaveApplication{}).
			Where("user_id = ? AND status = ?", userID, model.LeavePending).
			Count(&stats.PendingLeaves).Error; err != nil {
			return err
		}
		if err := db.Model(&model.LeaveApplication{}).
			Where("user_id = ? AND status = ? AND start_date >= ? AND start_date < ?", userID, model.LeaveApproved, start.UTC(), end.UTC()).
			Count(&stats.ApprovedLeaves).Error; err != nil {
			return err
		}

		var open int64
		if err := db.Model(&model.AttendanceRecord{}).
			Where("user_id = ? AND clock_in IS NOT NULL AND clock_out IS NULL", userID).
			Count(&open).Error; err != nil {
			return err
		}
		stats.ClockedIn = open > 0
		return nil
	})
	if err != nil {
		return nil, core.NewInternalError("Server error loading dashboard.", err)
	}
	return &stats, nil
}
