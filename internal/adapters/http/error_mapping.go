package httpadapter

import (
	"net/http"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput), domain.IsKind(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrCourseNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary), domain.IsKind(err, domain.ErrStaleSpace):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
