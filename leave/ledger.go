package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

var (
	ErrFieldsRequired = core.NewValidationError("startDate, endDate, and reason are required.")
	ErrEndBeforeStart = core.NewValidationError("End date must be after start date.")
	ErrInvalidStatus  = core.NewValidationError("Invalid status.")
	ErrNotFound       = core.NewNotFoundError("Leave request not found.")
)

// Notifier is told about new applications and decisions. Errors are logged
// and never fail the request.
type Notifier interface {
	LeaveApplied(ctx context.Context, leave *model.LeaveApplication, applicant *model.User) error
	LeaveDecided(ctx context.Context, leave *model.LeaveApplication, applicant *model.User, approver *model.User) error
}

type ApplyInput struct {
	LeaveType   string
	StartDate   string
	EndDate     string
	Reason      string
	Description string
}

// Ledger stores leave applications and their review status.
type Ledger struct {
	dm       *core.DatabaseManager
	notifier Notifier
}

// NewLedger returns a ledger; notifier may be nil.
func NewLedger(dm *core.DatabaseManager, notifier Notifier) *Ledger {
	return &Ledger{dm: dm, notifier: notifier}
}

// Days counts the calendar days a leave spans, both ends included.
func Days(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func parseDate(field, value string) (time.Time, error) {
	t, err := utils.ParseISOTime(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, core.NewValidationError(fmt.Sprintf("Invalid %s.", field))
	}
	return t.UTC(), nil
}

// Apply records a Pending application for userID.
func (l *Ledger) Apply(ctx context.Context, userID string, input ApplyInput) (*model.LeaveApplication, error) {
	if input.StartDate == "" || input.EndDate == "" || strings.TrimSpace(input.Reason) == "" {
		return nil, ErrFieldsRequired
	}
	start, err := parseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}

	leaveType := strings.TrimSpace(input.LeaveType)
	if leaveType == "" {
		leaveType = model.DefaultLeaveType
	}

	leave := &model.LeaveApplication{
		UserID:      userID,
		LeaveType:   leaveType,
		StartDate:   start,
		EndDate:     end,
		Reason:      input.Reason,
		Description: input.Description,
		Days:        Days(start, end),
		Status:      model.LeavePending,
	}
	if err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(leave).Error
	}); err != nil {
		return nil, core.NewInternalError("Server error applying for leave.", err)
	}

	if l.notifier != nil {
		applicant := l.user(ctx, userID)
		if err := l.notifier.LeaveApplied(ctx, leave, applicant); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("leave_id", leave.ID).Msg("leave applied notification failed")
		}
	}
	return leave, nil
}

// MyLeaves lists userID's applications, newest first.
func (l *Ledger) MyLeaves(ctx context.Context, userID string) ([]model.LeaveApplication, error) {
	leaves := []model.LeaveApplication{}
	err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Find(&leaves).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error fetching your leaves.", err)
	}
	return leaves, nil
}

// AllLeaves lists every application with applicant and approver joined in.
func (l *Ledger) AllLeaves(ctx context.Context) ([]model.LeaveApplicationView, error) {
	leaves := []model.LeaveApplication{}
	err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Preload("User").Preload("Approver").Order("created_at DESC").Find(&leaves).Error
	})
	if err != nil {
		return nil, core.NewInternalError("Server error fetching leaves.", err)
	}
	return utils.Map(leaves, model.NewLeaveApplicationView), nil
}

// UpdateStatus sets the status of leaveID and records approverID as the reviewer.
func (l *Ledger) UpdateStatus(ctx context.Context, leaveID string, status model.LeaveStatus, approverID string) (*model.LeaveApplication, error) {
	if !utils.Contains(model.LeaveStatuses, status) {
		return nil, ErrInvalidStatus
	}

	var leave model.LeaveApplication
	err := l.dm.Transaction(ctx, func(tx *gorm.DB) error {
		err := tx.Where("id = ?", leaveID).Take(&leave).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		leave.Status = status
		leave.ApprovedBy = utils.Ptr(approverID)
		return tx.Model(&leave).Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approverID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, core.NewInternalError("Server error updating leave status.", err)
	}

	if l.notifier != nil {
		applicant := l.user(ctx, leave.UserID)
		approver := l.user(ctx, approverID)
		if err := l.notifier.LeaveDecided(ctx, &leave, applicant, approver); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("leave_id", leave.ID).Msg("leave decision notification failed")
		}
	}
	return &leave, nil
}

// StatusMessage is the confirmation returned after a status change.
func StatusMessage(status model.LeaveStatus) string {
	return fmt.Sprintf("Leave %s successfully.", strings.ToLower(string(status)))
}

func (l *Ledger) user(ctx context.Context, id string) *model.User {
	var user model.User
	err := l.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).Take(&user).Error
	})
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("user_id", id).Msg("user lookup for notification failed")
		return nil
	}
	return &user
}
