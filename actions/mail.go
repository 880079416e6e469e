package actions

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/submission"
)

const mailDateLayout = "Jan 2, 2006"

type gradedMailData struct {
	StudentName     string
	AssignmentTitle string
	Grade           string
	Feedback        string
	AssignmentID    string
}

type reviewedMailData struct {
	StudentName string
	StartDate   string
	EndDate     string
	Reason      string
	Status      string
}

func (a *Actions) sendGradedMail(ctx context.Context, sub submission.Submission, asg assignment.Assignment) {
	student, err := a.users.GetByID(ctx, sub.StudentID)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("graded mail: loading student: %v", err), err)
		return
	}

	data := gradedMailData{
		StudentName:     student.Name,
		AssignmentTitle: asg.Title,
		AssignmentID:    asg.ID,
	}
	if sub.Grade != nil {
		data.Grade = *sub.Grade
	}
	if sub.Feedback != nil {
		data.Feedback = *sub.Feedback
	}
	a.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject:      "Your submission has been graded",
		TemplateName: "submission_graded",
		TemplateData: data,
	})
}

func (a *Actions) sendReviewedMail(ctx context.Context, req leave.Request) {
	student, err := a.users.GetByID(ctx, req.StudentID)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("reviewed mail: loading student: %v", err), err)
		return
	}

	status := "approved"
	if req.Status == leave.StatusRejected {
		status = "rejected"
	}
	a.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject:      "Your leave request has been " + status,
		TemplateName: "leave_reviewed",
		TemplateData: reviewedMailData{
			StudentName: student.Name,
			StartDate:   req.StartDate.Format(mailDateLayout),
			EndDate:     req.EndDate.Format(mailDateLayout),
			Reason:      req.Reason,
			Status:      status,
		},
	})
}
