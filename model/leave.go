package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
	LeaveDelayed  LeaveStatus = "Delayed"
)

var LeaveStatuses = []LeaveStatus{LeavePending, LeaveApproved, LeaveRejected, LeaveDelayed}

const DefaultLeaveType = "Sick Leave"

type LeaveApplication struct {
	ID          string      `gorm:"primaryKey;size:36" json:"_id"`
	UserID      string      `gorm:"size:36;not null;index" json:"userId"`
	LeaveType   string      `gorm:"size:100;not null;default:'Sick Leave'" json:"leaveType"`
	StartDate   time.Time   `gorm:"not null" json:"startDate"`
	EndDate     time.Time   `gorm:"not null" json:"endDate"`
	Reason      string      `gorm:"type:text;not null" json:"reason"`
	Description string      `gorm:"type:text" json:"description"`
	Days        int         `gorm:"not null" json:"days"`
	Status      LeaveStatus `gorm:"size:20;not null;default:Pending;index" json:"status"`
	ApprovedBy  *string     `gorm:"size:36" json:"approvedBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User     *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Approver *User `gorm:"foreignKey:ApprovedBy;references:ID" json:"-"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

func (l *LeaveApplication) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type ApproverSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// LeaveApplicationView is the admin listing row with applicant and approver joined in.
type LeaveApplicationView struct {
	LeaveApplication
	User     *UserSummary     `json:"user"`
	Approver *ApproverSummary `json:"approver,omitempty"`
}

func NewLeaveApplicationView(l LeaveApplication) LeaveApplicationView {
	view := LeaveApplicationView{LeaveApplication: l, User: l.User.Summary()}
	if l.Approver != nil {
		view.Approver = &ApproverSummary{ID: l.Approver.ID, Name: l.Approver.Name}
	}
	return view
}
