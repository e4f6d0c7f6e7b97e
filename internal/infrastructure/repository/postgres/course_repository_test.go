package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*CourseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &CourseRepository{db: db}, mock, func() { _ = db.Close() }
}

func courseRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "skill_tags", "interest_tags",
		"location", "modality", "tuition", "duration_weeks", "created_at", "updated_at",
	}).AddRow(
		"ds-101", "Data Science Bootcamp", "python and statistics",
		[]byte(`["python","statistics"]`), []byte(`["data"]`),
		"Online", "online", 4000.0, 12.0, now, now,
	)
}

func TestListScansTagsFromJSON(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, title, description").
		WillReturnRows(courseRows())

	courses, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}
	c := courses[0]
	if c.ID != "ds-101" || c.Modality != domain.ModalityOnline {
		t.Errorf("unexpected course %+v", c)
	}
	if len(c.SkillTags) != 2 || c.SkillTags[0] != "python" {
		t.Errorf("skill tags = %v", c.SkillTags)
	}
	if len(c.InterestTags) != 1 || c.InterestTags[0] != "data" {
		t.Errorf("interest tags = %v", c.InterestTags)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, title, description").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateInsertsJSONTags(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO courses").
		WithArgs("ds-101", "Data Science Bootcamp", "python and statistics",
			[]byte(`["python","statistics"]`), []byte(`["data"]`),
			"Online", "online", 4000.0, 12.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	err := repo.Create(context.Background(), &domain.CourseRecord{
		ID:            "ds-101",
		Title:         "Data Science Bootcamp",
		Description:   "python and statistics",
		SkillTags:     []string{"python", "statistics"},
		InterestTags:  []string{"data"},
		Location:      "Online",
		Modality:      domain.ModalityOnline,
		Tuition:       4000,
		DurationWeeks: 12,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM courses").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
