package attendance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

var (
	ErrAlreadyClockedIn = core.NewConflictError("You are already clocked in.")
	ErrNoActiveClockIn  = core.NewNotFoundError("No active clock-in found. Please clock in first.")
	ErrInvalidStatus    = core.NewValidationError("Invalid status. Use Present, Absent, or Leave.")
)

// Ledger records clock-in/clock-out sessions and daily statuses.
type Ledger struct {
	dm  *core.DatabaseManager
	loc *time.Location

	// Clock returns the current instant; tests replace it.
	Clock func() time.Time
}

func NewLedger(dm *core.DatabaseManager, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	return &Ledger{dm: dm, loc: loc, Clock: time.Now}
}

func (l *Ledger) now() time.Time {
	return l.Clock().UTC().Truncate(time.Millisecond)
}

func openSessions(db *gorm.DB, userID string) *gorm.DB {
	return db.Where("user_id = ? AND clock_in IS NOT NULL AND clock_out IS NULL", userID)
}

// ClockIn opens a session for userID. Any open session, from today or an
// earlier day, is a conflict.
func (l *Ledger) ClockIn(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	now := l.now()
	record := &model.AttendanceRecord{
		UserID:  userID,
		Date:    utils.StartOfDay(now, l.loc).UTC(),
		ClockIn: &now,
		Status:  model.AttendancePresent,
		OpenKey: utils.Ptr(userID),
	}

	err := l.dm.Transaction(ctx, func(tx *gorm.DB) error {
		var open int64
		if err := openSessions(tx.Model(&model.AttendanceRecord{}), userID).Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrAlreadyClockedIn
		}
		return tx.Create(record).Error
	})
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, ErrAlreadyClockedIn), core.IsDuplicateKey(err):
		return nil, ErrAlreadyClockedIn
	default:
		return nil, core.NewInternalError("Server error during clock in.", err)
	}
}

// ClockOut closes the most recent open session of userID, whatever its date.
func (l *Ledger) ClockOut(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	now := l.now()
	var record model.AttendanceRecord

	err := l.dm.Transaction(ctx, func(tx *gorm.DB) error {
		err := openSessions(tx, userID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("clock_in DESC").
			Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveClockIn
		}
		if err != nil {
			return err
		}

		hours := now.Sub(*record.ClockIn).Hours()
		res := tx.Model(&model.AttendanceRecord{}).
			Where("id = ? AND clock_out IS NULL", record.ID).
			Updates(map[string]interface{}{
				"clock_out":   now,
				"total_hours": hours,
				"open_key":    gorm.Expr("NULL"),
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveClockIn
		}
		record.ClockOut = &now
		record.TotalHours = &hours
		record.OpenKey = nil
		record.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveClockIn) {
			return nil, ErrNoActiveClockIn
		}
		return nil, core.NewInternalError("Server error during clock out.", err)
	}
	return &record, nil
}

// MyRecords lists userID's records, newest date first.
func (l *Ledger) MyRecords(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	records := []model.AttendanceRecord{}
	err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).
			Order("date DESC").Order("created_at DESC").
			Find(&records).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error fetching records.", err)
	}
	return records, nil
}

// AllRecords lists every record with its owner joined in, newest date first.
func (l *Ledger) AllRecords(ctx context.Context) ([]model.AttendanceRecordView, error) {
	records, err := l.between(ctx, nil, nil)
	if err != nil {
		return nil, core.NewInternalError("Server error fetching all records.", err)
	}
	return utils.Map(records, model.NewAttendanceRecordView), nil
}

// between loads records whose date falls in [from, to); nil bounds are open.
func (l *Ledger) between(ctx context.Context, from, to *time.Time) ([]model.AttendanceRecord, error) {
	records := []model.AttendanceRecord{}
	err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		q := db.Preload("User")
		if from != nil {
			q = q.Where("date >= ?", from.UTC())
		}
		if to != nil {
			q = q.Where("date < ?", to.UTC())
		}
		return q.Order("date DESC").Order("created_at DESC").Find(&records).Error
	})
	return records, err
}

func validStatus(status model.AttendanceStatus) bool {
	return utils.Contains(model.AttendanceStatuses, status)
}

// MarkStatus sets today's status for userID, creating today's record if
// there is none. Concurrent first calls serialize on the gap lock taken by
// the locking read; the loser of a deadlock is retried.
func (l *Ledger) MarkStatus(ctx context.Context, userID string, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := l.now()
	start, end := utils.DayWindow(now, l.loc)
	var record model.AttendanceRecord

	err := l.dm.TransactionRetry(ctx, func(tx *gorm.DB) error {
		record = model.AttendanceRecord{}
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date >= ? AND date < ?", userID, start.UTC(), end.UTC()).
			Order("created_at DESC").
			Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = model.AttendanceRecord{
				UserID: userID,
				Date:   start.UTC(),
				Status: status,
			}
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}
		record.Status = status
		record.UpdatedAt = now
		return tx.Model(&record).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error marking attendance.", err)
	}
	return &record, nil
}
