package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CourseRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082201)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	skill_tags JSONB NOT NULL DEFAULT '[]'::jsonb,
	interest_tags JSONB NOT NULL DEFAULT '[]'::jsonb,
	location TEXT NOT NULL DEFAULT '',
	modality TEXT NOT NULL,
	tuition DOUBLE PRECISION NOT NULL DEFAULT 0,
	duration_weeks DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_courses_modality ON courses(modality);
CREATE INDEX IF NOT EXISTS idx_courses_tuition ON courses(tuition);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

const courseColumns = `id, title, description, skill_tags, interest_tags, location, modality, tuition, duration_weeks, created_at, updated_at`

// List returns the full catalog ordered by id, which keeps snapshot
// fingerprints and downstream ranking independent of storage order.
func (r *CourseRepository) List(ctx context.Context) ([]domain.CourseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+courseColumns+`
FROM courses
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.CourseRecord
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*domain.CourseRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+courseColumns+`
FROM courses
WHERE id = $1
`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCourseNotFound, "get course", fmt.Errorf("id %s", id))
		}
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.CourseRecord) error {
	skillJSON, err := json.Marshal(course.SkillTags)
	if err != nil {
		return fmt.Errorf("marshal skill tags: %w", err)
	}
	interestJSON, err := json.Marshal(course.InterestTags)
	if err != nil {
		return fmt.Errorf("marshal interest tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO courses (
	id, title, description, skill_tags, interest_tags, location, modality, tuition, duration_weeks, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		course.ID, course.Title, course.Description, skillJSON, interestJSON,
		course.Location, string(course.Modality), course.Tuition, course.DurationWeeks,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrCourseNotFound, "delete course", fmt.Errorf("id %s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.CourseRecord, error) {
	var course domain.CourseRecord
	var skillRaw, interestRaw []byte
	var modality string

	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &skillRaw, &interestRaw,
		&course.Location, &modality, &course.Tuition, &course.DurationWeeks,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}

	if err := json.Unmarshal(skillRaw, &course.SkillTags); err != nil {
		return nil, fmt.Errorf("unmarshal skill tags: %w", err)
	}
	if err := json.Unmarshal(interestRaw, &course.InterestTags); err != nil {
		return nil, fmt.Errorf("unmarshal interest tags: %w", err)
	}
	course.Modality = domain.Modality(modality)
	return &course, nil
}
