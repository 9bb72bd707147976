package repository

import (
	"context"
	"fmt"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rosterRepo struct {
	db *pgxpool.Pool
}

func NewRosterRepo(db *pgxpool.Pool) RosterRepo {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) Add(ctx context.Context, e domain.RosterEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_students (course_id, student_id, student_name, student_email, paid_amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (course_id, student_id) DO NOTHING`,
		e.CourseID, e.StudentID, e.StudentName, e.StudentEmail, e.PaidAmount,
	)
	if err != nil {
		return fmt.Errorf("add roster entry: %w", err)
	}
	return nil
}

func (r *rosterRepo) ListByCourse(ctx context.Context, courseID string) ([]domain.RosterEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course_id, student_id, student_name, student_email, paid_amount
		FROM course_students
		WHERE course_id = $1
		ORDER BY student_id`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	var entries []domain.RosterEntry
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.CourseID, &e.StudentID, &e.StudentName, &e.StudentEmail, &e.PaidAmount); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
