package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enrollment is one entry in a learner's purchased-course list. The pair
// (UserID, CourseID) identifies it; repeated fan-out for the same settled
// order must not produce a second entry.
type Enrollment struct {
	UserID         string
	CourseID       string
	Title          string
	InstructorID   string
	InstructorName string
	DateOfPurchase time.Time
	CourseImage    string
}

// RosterEntry is one student on a course's roster, keyed by (CourseID,
// StudentID) with set semantics.
type RosterEntry struct {
	CourseID     string
	StudentID    string
	StudentName  string
	StudentEmail string
	PaidAmount   decimal.Decimal
}
