package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/akinsella123/CourseFindr/internal/bootstrap"
	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/observability/logging"
)

// seed imports a course catalog from an XLSX workbook. Expected columns:
// id, title, description, skill_tags, interest_tags, location, modality,
// tuition, duration_weeks. Tag cells hold semicolon-separated values.
func main() {
	path := flag.String("file", "courses.xlsx", "path to the catalog workbook")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	flag.Parse()

	cfg := config.Load()
	logger := logging.Setup("seed", cfg.LogLevel)

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close(ctx)

	courses, err := readWorkbook(*path, *sheet)
	if err != nil {
		log.Fatalf("read workbook: %v", err)
	}

	created := 0
	for _, course := range courses {
		if _, err := app.CatalogUC.CreateCourse(ctx, course); err != nil {
			logger.Warn("skip course", "title", course.Title, "error", err)
			continue
		}
		created++
	}
	logger.Info("seed finished", "file", *path, "rows", len(courses), "created", created)
}

func readWorkbook(path, sheet string) ([]domain.CourseRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"title"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("sheet %q is missing required column %q", sheet, required)
		}
	}

	courses := make([]domain.CourseRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		course := domain.CourseRecord{
			ID:            cell(row, columns, "id"),
			Title:         cell(row, columns, "title"),
			Description:   cell(row, columns, "description"),
			SkillTags:     splitTags(cell(row, columns, "skill_tags")),
			InterestTags:  splitTags(cell(row, columns, "interest_tags")),
			Location:      cell(row, columns, "location"),
			Modality:      domain.Modality(strings.ToLower(cell(row, columns, "modality"))),
			Tuition:       cellFloat(row, columns, "tuition"),
			DurationWeeks: cellFloat(row, columns, "duration_weeks"),
		}
		if course.Title == "" {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellFloat(row []string, columns map[string]int, name string) float64 {
	raw := cell(row, columns, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
