package model

import (
	"fmt"
	"strings"
	"time"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusAccepted SubmissionStatus = "accepted"
	StatusWrong    SubmissionStatus = "wrong"
)

func ParseSubmissionStatus(s string) (SubmissionStatus, error) {
	switch st := SubmissionStatus(strings.TrimSpace(s)); st {
	case StatusPending, StatusAccepted, StatusWrong:
		return st, nil
	default:
		return "", fmt.Errorf("unknown submission status %q", s)
	}
}

type Submission struct {
	ID             string           `json:"id"`
	UserID         string           `json:"-"`
	User           *UserBrief       `json:"user,omitempty"`
	TaskID         string           `json:"task_id"`
	TaskTitle      string           `json:"task_title"`
	Task           *Task            `json:"task,omitempty"` // Detail view only
	CourseID       string           `json:"-"`
	CourseAuthorID string           `json:"-"`
	CodeStudent    string           `json:"code_student"`
	Status         SubmissionStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SubmissionScope restricts which submissions a read may return.
// Empty fields impose no restriction.
type SubmissionScope struct {
	UserID         string // owner of the submission
	CourseAuthorID string // author of the course the submission's task belongs to
}

func (s SubmissionScope) Admits(sub *Submission) bool {
	if s.UserID != "" && sub.UserID != s.UserID {
		return false
	}
	if s.CourseAuthorID != "" && sub.CourseAuthorID != s.CourseAuthorID {
		return false
	}
	return true
}
