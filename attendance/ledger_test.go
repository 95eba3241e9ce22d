package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newLedger(t *testing.T) (*Ledger, *fakeClock, *core.DatabaseManager) {
	t.Helper()
	dm := core.NewTestDatabase(t)
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	ledger := NewLedger(dm, time.UTC)
	ledger.Clock = clock.Now

	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, dm.DB.Create(&model.User{ID: id, Name: id, Email: id + "@x.com", Password: "x", Role: model.RoleEmployee, IsActive: true}).Error)
	}
	return ledger, clock, dm
}

func TestClockInOut(t *testing.T) {
	ctx := context.Background()
	ledger, clock, _ := newLedger(t)

	in, err := ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, in.Status)
	assert.True(t, in.IsOpen())
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), in.Date)

	_, err = ledger.ClockIn(ctx, "u1")
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	assert.Equal(t, core.KindConflict, core.KindOf(err))

	clock.Set(time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC))
	out, err := ledger.ClockOut(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, out.ClockOut)
	require.NotNil(t, out.TotalHours)
	assert.InDelta(t, 8.5, *out.TotalHours, 0.0001)
	assert.Equal(t, in.ID, out.ID)
	assert.False(t, out.IsOpen())

	_, err = ledger.ClockOut(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoActiveClockIn)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))

	// a closed session allows a new one on the same day
	_, err = ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)

	records, err := ledger.MyRecords(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	ledger, _, _ := newLedger(t)

	_, err := ledger.ClockOut(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoActiveClockIn)
	assert.Equal(t, "No active clock-in found. Please clock in first.", err.Error())
}

func TestClockInBlockedByStaleSession(t *testing.T) {
	ctx := context.Background()
	ledger, clock, _ := newLedger(t)

	_, err := ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)

	clock.Set(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	_, err = ledger.ClockIn(ctx, "u1")
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)

	// clock-out closes yesterday's session
	out, err := ledger.ClockOut(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, out.Date.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 24.0, *out.TotalHours, 0.0001)
}

func TestClockInIsPerUser(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedger(t)

	_, err := ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)
	_, err = ledger.ClockIn(ctx, "u2")
	require.NoError(t, err)

	mine, err := ledger.MyRecords(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u2", mine[0].UserID)
}

func TestConcurrentClockInOpensOneSession(t *testing.T) {
	ctx := context.Background()
	ledger, _, dm := newLedger(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.ClockIn(ctx, "u1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	}
	assert.Equal(t, 1, succeeded)

	var open int64
	require.NoError(t, dm.DB.Model(&model.AttendanceRecord{}).
		Where("user_id = ? AND clock_out IS NULL", "u1").Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestMarkStatus(t *testing.T) {
	ctx := context.Background()
	ledger, clock, _ := newLedger(t)

	_, err := ledger.MarkStatus(ctx, "u1", "Late")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	first, err := ledger.MarkStatus(ctx, "u1", model.AttendanceAbsent)
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceAbsent, first.Status)
	assert.Nil(t, first.ClockIn)

	clock.Set(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC))
	second, err := ledger.MarkStatus(ctx, "u1", model.AttendanceLeave)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.AttendanceLeave, second.Status)

	records, err := ledger.MyRecords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendanceLeave, records[0].Status)

	clock.Set(time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC))
	third, err := ledger.MarkStatus(ctx, "u1", model.AttendancePresent)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestMarkStatusUpdatesClockedInRecord(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedger(t)

	in, err := ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)

	marked, err := ledger.MarkStatus(ctx, "u1", model.AttendanceLeave)
	require.NoError(t, err)
	assert.Equal(t, in.ID, marked.ID)
	require.NotNil(t, marked.ClockIn)
}

func TestAllRecordsJoinsOwner(t *testing.T) {
	ctx := context.Background()
	ledger, clock, _ := newLedger(t)

	_, err := ledger.ClockIn(ctx, "u1")
	require.NoError(t, err)
	clock.Set(time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))
	_, err = ledger.MarkStatus(ctx, "u2", model.AttendanceAbsent)
	require.NoError(t, err)

	views, err := ledger.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "u2", views[0].UserID)
	require.NotNil(t, views[0].User)
	assert.Equal(t, "u2@x.com", views[0].User.Email)
	assert.Equal(t, "u1", views[1].User.Name)
}
