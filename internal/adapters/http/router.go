package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
	"github.com/akinsella123/CourseFindr/internal/observability/metrics"
)

type Router struct {
	recommender ports.CourseRecommender
	extractor   ports.TagExtractionService
	catalog     ports.CatalogService
	metrics     *metrics.HTTPServerMetrics
	cfg         config.Config
}

func NewRouter(
	recommender ports.CourseRecommender,
	extractor ports.TagExtractionService,
	catalog ports.CatalogService,
	m *metrics.HTTPServerMetrics,
	cfg config.Config,
) *Router {
	return &Router{
		recommender: recommender,
		extractor:   extractor,
		catalog:     catalog,
		metrics:     m,
		cfg:         cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/recommendations", rt.recommend)
	mux.HandleFunc("/v1/skills/extract", rt.extractTags)
	mux.HandleFunc("/v1/skills/extract-file", rt.extractTagsFromFile)
	mux.HandleFunc("/v1/courses", rt.courses)
	mux.HandleFunc("/v1/courses/", rt.courseByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = requestValidationMiddleware(handler)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, backpressureWait)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		domain.StudentProfile
		TopK int `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	rec, err := rt.recommender.Recommend(r.Context(), req.StudentProfile, req.TopK)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordRecommendation("api", len(rec.Matches), rec.Metadata.CoursesFiltered, time.Since(start))
	}
	writeJSON(w, http.StatusOK, rec)
}

func (rt *Router) extractTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.extractor.ExtractFromText(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExtraction("api", "text", len(result.Tags))
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) extractTagsFromFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	maxBytes := int64(rt.cfg.MaxUploadBytes)
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read uploaded file"})
		return
	}

	result, err := rt.extractor.ExtractFromFile(r.Context(), fileHeader.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExtraction("api", "file", len(result.Tags))
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) courses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		courses, err := rt.catalog.ListCourses(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if courses == nil {
			courses = []domain.CourseRecord{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": courses, "total": len(courses)})
	case http.MethodPost:
		var course domain.CourseRecord
		if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		created, err := rt.catalog.CreateCourse(r.Context(), course)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) courseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/courses/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "course id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		course, err := rt.catalog.GetCourse(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, course)
	case http.MethodDelete:
		if err := rt.catalog.DeleteCourse(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
