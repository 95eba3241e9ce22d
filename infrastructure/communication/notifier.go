package communication

import (
	"context"
	"fmt"
	"strings"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

// LeaveNotifier posts leave events to the admin Slack channel and e-mails
// applicants about decisions. Either transport may be nil.
type LeaveNotifier struct {
	Slack  *Slack
	Mailer *Mailer
}

func (n *LeaveNotifier) LeaveApplied(ctx context.Context, leave *model.LeaveApplication, applicant *model.User) error {
	if n.Slack == nil {
		return nil
	}
	return n.Slack.Info(ctx, LeaveAppliedMessage(leave, applicant))
}

func (n *LeaveNotifier) LeaveDecided(ctx context.Context, leave *model.LeaveApplication, applicant *model.User, approver *model.User) error {
	var errs []string
	if n.Slack != nil {
		if err := n.Slack.Info(ctx, LeaveDecidedMessage(leave, applicant, approver)); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if n.Mailer != nil && applicant != nil && applicant.Email != "" {
		text := LeaveDecidedEmail(leave, applicant)
		err := n.Mailer.Send(ctx, &EmailInfo{
			To:      []string{applicant.Email},
			Subject: fmt.Sprintf("Your leave request is %s", strings.ToLower(string(leave.Status))),
			Text:    text,
		})
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify leave decision: %s", strings.Join(errs, "; "))
	}
	return nil
}

func applicantName(u *model.User) string {
	if u == nil {
		return "unknown employee"
	}
	return u.Name
}

func LeaveAppliedMessage(leave *model.LeaveApplication, applicant *model.User) string {
	return fmt.Sprintf("%s applied for %s: %s to %s (%d day%s). Reason: %s",
		applicantName(applicant),
		leave.LeaveType,
		leave.StartDate.Format(utils.DateLayout),
		leave.EndDate.Format(utils.DateLayout),
		leave.Days,
		utils.FormatBoolean(leave.Days == 1, "", "s"),
		leave.Reason,
	)
}

func LeaveDecidedMessage(leave *model.LeaveApplication, applicant *model.User, approver *model.User) string {
	by := ""
	if approver != nil {
		by = " by " + approver.Name
	}
	return fmt.Sprintf("Leave for %s (%s to %s) marked %s%s",
		applicantName(applicant),
		leave.StartDate.Format(utils.DateLayout),
		leave.EndDate.Format(utils.DateLayout),
		leave.Status,
		by,
	)
}

func LeaveDecidedEmail(leave *model.LeaveApplication, applicant *model.User) string {
	return fmt.Sprintf("Hi %s,\n\nYour %s request from %s to %s (%d day%s) is now %s.\n",
		applicantName(applicant),
		leave.LeaveType,
		leave.StartDate.Format(utils.DateLayout),
		leave.EndDate.Format(utils.DateLayout),
		leave.Days,
		utils.FormatBoolean(leave.Days == 1, "", "s"),
		leave.Status,
	)
}
