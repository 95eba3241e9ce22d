package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/attendance"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/leave"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
)

func seedUsers(t *testing.T, dm *core.DatabaseManager) {
	t.Helper()
	users := []model.User{
		{ID: "adm", Name: "Boss", Email: "boss@x.com", Password: "x", Role: model.RoleAdmin, IsActive: true},
		{ID: "e1", Name: "Sara", Email: "sara@x.com", Password: "x", Role: model.RoleEmployee, IsActive: true},
		{ID: "e2", Name: "Omar", Email: "omar@x.com", Password: "x", Role: model.RoleEmployee, IsActive: true},
		{ID: "e3", Name: "Gone", Email: "gone@x.com", Password: "x", Role: model.RoleEmployee, IsActive: true},
	}
	require.NoError(t, dm.DB.Create(&users).Error)
	require.NoError(t, dm.DB.Model(&model.User{}).Where("id = ?", "e3").Update("is_active", false).Error)
}

func TestAdminStats(t *testing.T) {
	ctx := context.Background()
	dm := core.NewTestDatabase(t)
	seedUsers(t, dm)

	leaves := leave.NewLedger(dm, nil)
	first, err := leaves.Apply(ctx, "e1", leave.ApplyInput{StartDate: "2026-03-10", EndDate: "2026-03-12", Reason: "flu"})
	require.NoError(t, err)
	_, err = leaves.Apply(ctx, "e2", leave.ApplyInput{StartDate: "2026-03-10", EndDate: "2026-03-10", Reason: "trip"})
	require.NoError(t, err)

	service := NewService(dm, time.UTC)
	stats, err := service.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &AdminStats{TotalEmployees: 2, PendingLeaves: 2}, stats)

	_, err = leaves.UpdateStatus(ctx, first.ID, model.LeaveApproved, "adm")
	require.NoError(t, err)

	stats, err = service.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PendingLeaves)
}

func TestEmployeeStats(t *testing.T) {
	ctx := context.Background()
	dm := core.NewTestDatabase(t)
	seedUsers(t, dm)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ledger := attendance.NewLedger(dm, time.UTC)
	ledger.Clock = func() time.Time { return now }

	_, err := ledger.ClockIn(ctx, "e1")
	require.NoError(t, err)
	now = now.Add(6 * time.Hour)
	_, err = ledger.ClockOut(ctx, "e1")
	require.NoError(t, err)

	now = time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = ledger.MarkStatus(ctx, "e1", model.AttendanceAbsent)
	require.NoError(t, err)

	// previous month is excluded
	now = time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	_, err = ledger.MarkStatus(ctx, "e1", model.AttendanceLeave)
	require.NoError(t, err)

	now = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	_, err = ledger.ClockIn(ctx, "e1")
	require.NoError(t, err)

	leaves := leave.NewLedger(dm, nil)
	approved, err := leaves.Apply(ctx, "e1", leave.ApplyInput{StartDate: "2026-03-20", EndDate: "2026-03-21", Reason: "trip"})
	require.NoError(t, err)
	_, err = leaves.UpdateStatus(ctx, approved.ID, model.LeaveApproved, "adm")
	require.NoError(t, err)
	_, err = leaves.Apply(ctx, "e1", leave.ApplyInput{StartDate: "2026-05-01", EndDate: "2026-05-02", Reason: "later"})
	require.NoError(t, err)

	service := NewService(dm, time.UTC)
	service.Clock = func() time.Time { return now }

	stats, err := service.EmployeeStats(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.PresentDays)
	assert.Equal(t, int64(1), stats.AbsentDays)
	assert.Equal(t, int64(0), stats.LeaveDays)
	assert.InDelta(t, 6.0, stats.TotalHours, 0.0001)
	assert.Equal(t, int64(1), stats.PendingLeaves)
	assert.Equal(t, int64(1), stats.ApprovedLeaves)
	assert.True(t, stats.ClockedIn)

	other, err := service.EmployeeStats(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, &EmployeeStats{}, other)
}
