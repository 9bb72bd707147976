package service

import (
	"context"
	"fmt"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/repository"
)

// EnrollmentService propagates a settled order into the two denormalized
// read models: the learner's enrollment list and the course roster. Both
// writes are add-if-absent, so the whole operation can be re-run after a
// partial failure and will only fill in the missing half.
type EnrollmentService struct {
	enrollments repository.EnrollmentRepo
	rosters     repository.RosterRepo
}

func NewEnrollmentService(enrollments repository.EnrollmentRepo, rosters repository.RosterRepo) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, rosters: rosters}
}

func (s *EnrollmentService) Sync(ctx context.Context, order *domain.Order) error {
	if !order.IsSettled() {
		return fmt.Errorf("order %s is not settled", order.ID)
	}

	err := s.enrollments.Add(ctx, domain.Enrollment{
		UserID:         order.UserID,
		CourseID:       order.CourseID,
		Title:          order.CourseTitle,
		InstructorID:   order.InstructorID,
		InstructorName: order.InstructorName,
		DateOfPurchase: order.OrderDate,
		CourseImage:    order.CourseImage,
	})
	if err != nil {
		return fmt.Errorf("enrollment list: %w", err)
	}

	err = s.rosters.Add(ctx, domain.RosterEntry{
		CourseID:     order.CourseID,
		StudentID:    order.UserID,
		StudentName:  order.UserName,
		StudentEmail: order.UserEmail,
		PaidAmount:   order.CoursePricing,
	})
	if err != nil {
		return fmt.Errorf("course roster: %w", err)
	}

	return nil
}
