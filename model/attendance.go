package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"
)

var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLeave}

type AttendanceRecord struct {
	ID         string           `gorm:"primaryKey;size:36" json:"_id"`
	UserID     string           `gorm:"size:36;not null;index:idx_attendance_user_date" json:"userId"`
	Date       time.Time        `gorm:"not null;index:idx_attendance_user_date" json:"date"`
	ClockIn    *time.Time       `json:"clockIn"`
	ClockOut   *time.Time       `json:"clockOut"`
	TotalHours *float64         `json:"totalHours"`
	Status     AttendanceStatus `gorm:"size:20;not null;default:Present" json:"status"`

	// OpenKey holds UserID while the session is open and NULL once closed.
	// The unique index allows at most one open session per user.
	OpenKey *string `gorm:"size:36;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsOpen reports whether the record is a clocked-in session without a clock-out.
func (r *AttendanceRecord) IsOpen() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// AttendanceRecordView is the admin listing row with the owner joined in.
type AttendanceRecordView struct {
	AttendanceRecord
	User *UserSummary `json:"user"`
}

func NewAttendanceRecordView(r AttendanceRecord) AttendanceRecordView {
	return AttendanceRecordView{AttendanceRecord: r, User: r.User.Summary()}
}
