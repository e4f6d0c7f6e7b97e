package vectorspace

import (
	"sync"
	"testing"

	"github.com/akinsella123/CourseFindr/internal/core/nlp"
)

func newTestManager() *Manager {
	return NewManager(New(nlp.NewNormalizer()))
}

func TestManagerCurrentNilBeforeFirstFit(t *testing.T) {
	if space := newTestManager().Current(); space != nil {
		t.Errorf("Current = %+v, want nil", space)
	}
}

func TestManagerEnsureReusesMatchingSpace(t *testing.T) {
	m := newTestManager()
	corpus := testCorpus()

	first, err := m.Ensure(corpus)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	second, err := m.Ensure(corpus)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if first != second {
		t.Error("unchanged catalog triggered a second fit")
	}
}

func TestManagerEnsureRefitsOnCatalogChange(t *testing.T) {
	m := newTestManager()
	corpus := testCorpus()

	first, err := m.Ensure(corpus)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	corpus[0].Description = "python statistics and probability"
	second, err := m.Ensure(corpus)
	if err != nil {
		t.Fatalf("Ensure after change: %v", err)
	}
	if second.Version == first.Version {
		t.Error("catalog change did not produce a new space version")
	}
	if m.Current() != second {
		t.Error("published space is not the freshly fitted one")
	}
}

func TestManagerRefitAlwaysRebuilds(t *testing.T) {
	m := newTestManager()
	corpus := testCorpus()

	first, err := m.Ensure(corpus)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	second, err := m.Refit(corpus)
	if err != nil {
		t.Fatalf("Refit: %v", err)
	}
	if first == second {
		t.Error("Refit returned the cached space instead of rebuilding")
	}
	if first.Version != second.Version {
		t.Errorf("versions diverged for identical catalog: %s vs %s", first.Version, second.Version)
	}
}

func TestManagerEnsureConcurrent(t *testing.T) {
	m := newTestManager()
	corpus := testCorpus()

	const readers = 16
	spaces := make([]string, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			space, err := m.Ensure(corpus)
			if err != nil {
				t.Errorf("Ensure: %v", err)
				return
			}
			spaces[i] = space.Version
		}(i)
	}
	wg.Wait()

	want := Fingerprint(corpus)
	for i, version := range spaces {
		if version != want {
			t.Errorf("reader %d observed version %s, want %s", i, version, want)
		}
	}
}
