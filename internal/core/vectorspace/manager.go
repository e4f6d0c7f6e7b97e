package vectorspace

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

// Manager owns the shared fitted space. Reads are lock-free pointer
// loads; a refit runs under a single writer lock and publishes the new
// space with one atomic swap, so in-flight readers keep scoring against
// the snapshot they started with.
type Manager struct {
	vectorizer *Vectorizer

	mu      sync.Mutex
	current atomic.Pointer[domain.FittedSpace]
}

func NewManager(vectorizer *Vectorizer) *Manager {
	return &Manager{vectorizer: vectorizer}
}

// Current returns the latest published space, or nil before the first
// fit.
func (m *Manager) Current() *domain.FittedSpace {
	return m.current.Load()
}

// Ensure returns a space whose version matches the catalog snapshot,
// refitting transparently when the published space is missing or stale.
// Concurrent callers with the same snapshot share one fitting pass.
func (m *Manager) Ensure(catalog []domain.CourseRecord) (*domain.FittedSpace, error) {
	want := Fingerprint(catalog)
	if space := m.current.Load(); space != nil && space.Version == want {
		return space, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if space := m.current.Load(); space != nil && space.Version == want {
		return space, nil
	}
	return m.refitLocked(catalog)
}

// Refit unconditionally rebuilds the space from the snapshot.
func (m *Manager) Refit(catalog []domain.CourseRecord) (*domain.FittedSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refitLocked(catalog)
}

func (m *Manager) Transform(space *domain.FittedSpace, text string) domain.DocumentVector {
	return m.vectorizer.Transform(space, text)
}

func (m *Manager) refitLocked(catalog []domain.CourseRecord) (*domain.FittedSpace, error) {
	start := time.Now()
	space, err := m.vectorizer.Fit(catalog)
	if err != nil {
		return nil, err
	}
	m.current.Store(space)
	slog.Info("space_refit",
		"version", space.Version,
		"courses", space.CourseCount,
		"vocabulary_size", len(space.Vocabulary),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return space, nil
}
