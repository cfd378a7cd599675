package domain

import (
	"time"
)

// ReviewIssue tags a hardware or app problem reported with a review.
type ReviewIssue string

const (
	IssueBattery   ReviewIssue = "BATTERY"
	IssueBrakes    ReviewIssue = "BRAKES"
	IssueWheels    ReviewIssue = "WHEELS"
	IssueLights    ReviewIssue = "LIGHTS"
	IssueQRCode    ReviewIssue = "QR_CODE"
	IssueAppIssues ReviewIssue = "APP_ISSUES"
	IssueOther     ReviewIssue = "OTHER"
)

type Review struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	UserID    string        `json:"user_id" gorm:"index"`
	TripID    string        `json:"trip_id" gorm:"index"`
	Rating    int           `json:"rating"` // 1..5
	Comment   string        `json:"comment,omitempty"`
	Issues    []ReviewIssue `json:"issues,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time     `json:"created_at"`
}
