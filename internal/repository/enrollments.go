package repository

import (
	"context"
	"fmt"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type enrollmentRepo struct {
	db *pgxpool.Pool
}

func NewEnrollmentRepo(db *pgxpool.Pool) EnrollmentRepo {
	return &enrollmentRepo{db: db}
}

// Add relies on ON CONFLICT DO NOTHING against the (user_id, course_id)
// primary key, so concurrent fan-out for the same learner never reads and
// rewrites the whole list.
func (r *enrollmentRepo) Add(ctx context.Context, e domain.Enrollment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO enrollments (user_id, course_id, title, instructor_id, instructor_name, date_of_purchase, course_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, course_id) DO NOTHING`,
		e.UserID, e.CourseID, e.Title, e.InstructorID, e.InstructorName,
		e.DateOfPurchase, e.CourseImage,
	)
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, course_id, title, instructor_id, instructor_name, date_of_purchase, course_image
		FROM enrollments
		WHERE user_id = $1
		ORDER BY date_of_purchase`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var entries []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.Title, &e.InstructorID, &e.InstructorName, &e.DateOfPurchase, &e.CourseImage); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
