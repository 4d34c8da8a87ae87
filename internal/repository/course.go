package repository

import (
	"context"
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type courseRepo struct{}

// NewCourseRepository returns a pgx-backed CourseRepository.
func NewCourseRepository() CourseRepository {
	return &courseRepo{}
}

func (r *courseRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Course, error) {
	var c domain.Course
	err := db.QueryRow(ctx, `SELECT id, name FROM courses WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}

	rows, err := db.Query(ctx, `
		SELECT number, par, stroke_index, yardage
		FROM course_holes WHERE course_id = $1 ORDER BY number`, id)
	if err != nil {
		return nil, fmt.Errorf("list course holes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h domain.Hole
		if err := rows.Scan(&h.Number, &h.Par, &h.StrokeIndex, &h.Yardage); err != nil {
			return nil, fmt.Errorf("scan hole: %w", err)
		}
		c.Holes = append(c.Holes, h)
	}
	return &c, rows.Err()
}

func (r *courseRepo) UpdateStrokeIndex(ctx context.Context, db DBTX, courseID uuid.UUID, holeNumber, newIndex int) error {
	tag, err := db.Exec(ctx, `
		UPDATE course_holes SET stroke_index = $1 WHERE course_id = $2 AND number = $3`,
		newIndex, courseID, holeNumber)
	if err != nil {
		return fmt.Errorf("update stroke index: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("hole", fmt.Sprintf("%s/%d", courseID, holeNumber))
	}
	return nil
}
