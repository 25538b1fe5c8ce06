package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmcameron/attest/internal/catalog"
)

type scriptedSource struct {
	name  string
	specs []catalog.ControlSpec
	err   error
	calls int
}

func (s *scriptedSource) Name() string { return s.name }

func (s *scriptedSource) Load(ctx context.Context) ([]catalog.ControlSpec, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.specs, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

var sampleSpecs = []catalog.ControlSpec{
	{ID: "a1", ControlID: "AC-2", Specification: "Account management and review"},
	{ID: "b2", ControlID: "IA-5", Specification: "Authenticator management"},
}

func TestCacheSpecs(t *testing.T) {
	ctx := context.Background()

	t.Run("loads on first access", func(t *testing.T) {
		src := &scriptedSource{name: "test", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		specs := cache.Specs(ctx)
		if len(specs) != 2 {
			t.Fatalf("Specs() returned %d entries, want 2", len(specs))
		}
		if src.calls != 1 {
			t.Errorf("source called %d times, want 1", src.calls)
		}
	})

	t.Run("serves cached entries within ttl", func(t *testing.T) {
		src := &scriptedSource{name: "test", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		cache.Specs(ctx)
		now = now.Add(14 * time.Minute)
		cache.Specs(ctx)

		if src.calls != 1 {
			t.Errorf("source called %d times within ttl, want 1", src.calls)
		}
	})

	t.Run("reloads after ttl expires", func(t *testing.T) {
		src := &scriptedSource{name: "test", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		cache.Specs(ctx)
		now = now.Add(16 * time.Minute)
		cache.Specs(ctx)

		if src.calls != 2 {
			t.Errorf("source called %d times after expiry, want 2", src.calls)
		}
	})

	t.Run("falls through to secondary source", func(t *testing.T) {
		primary := &scriptedSource{name: "rest", err: errors.New("network down")}
		secondary := &scriptedSource{name: "file", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{primary, secondary}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		specs := cache.Specs(ctx)
		if len(specs) != 2 {
			t.Fatalf("Specs() returned %d entries, want 2 from secondary", len(specs))
		}
	})

	t.Run("total failure yields empty list and retries next call", func(t *testing.T) {
		src := &scriptedSource{name: "rest", err: errors.New("network down")}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		specs := cache.Specs(ctx)
		if len(specs) != 0 {
			t.Fatalf("Specs() returned %d entries after total failure, want 0", len(specs))
		}

		src.err = nil
		src.specs = sampleSpecs
		specs = cache.Specs(ctx)
		if len(specs) != 2 {
			t.Errorf("Specs() returned %d entries on retry, want 2", len(specs))
		}
		if src.calls != 2 {
			t.Errorf("source called %d times, want 2 (failure does not advance timestamp)", src.calls)
		}
	})

	t.Run("reload failure serves last good value for current call", func(t *testing.T) {
		src := &scriptedSource{name: "rest", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		cache.Specs(ctx)
		now = now.Add(20 * time.Minute)
		src.err = errors.New("network down")

		specs := cache.Specs(ctx)
		if len(specs) != 2 {
			t.Errorf("Specs() returned %d entries after failed reload, want stale 2", len(specs))
		}

		specs = cache.Specs(ctx)
		if src.calls != 3 {
			t.Errorf("source called %d times, want 3 (stale serve does not refresh timestamp)", src.calls)
		}
		if len(specs) != 2 {
			t.Errorf("Specs() returned %d entries, want 2", len(specs))
		}
	})

	t.Run("normalizes rows at load time", func(t *testing.T) {
		src := &scriptedSource{name: "test", specs: []catalog.ControlSpec{
			{ID: "a1", ControlID: "AC-2", Specification: "  spaced \n out  "},
			{ID: "b2", ControlID: "", Specification: "no control id"},
			{ID: "c3", ControlID: "IA-5", Specification: "   "},
		}}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		specs := cache.Specs(ctx)
		if len(specs) != 1 {
			t.Fatalf("Specs() returned %d entries, want 1 after filtering", len(specs))
		}
		if specs[0].Specification != "spaced out" {
			t.Errorf("specification = %q, want whitespace collapsed", specs[0].Specification)
		}
	})

	t.Run("no sources configured", func(t *testing.T) {
		cache := catalog.NewCache(nil, discardLogger())
		if specs := cache.Specs(ctx); len(specs) != 0 {
			t.Errorf("Specs() returned %d entries with no sources, want 0", len(specs))
		}
	})

	t.Run("invalidate forces reload", func(t *testing.T) {
		src := &scriptedSource{name: "test", specs: sampleSpecs}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		cache := catalog.NewCache([]catalog.Source{src}, discardLogger(), catalog.WithClock(fixedClock(&now)))

		cache.Specs(ctx)
		cache.Invalidate()
		cache.Specs(ctx)

		if src.calls != 2 {
			t.Errorf("source called %d times after invalidate, want 2", src.calls)
		}
	})
}

func TestNormalize(t *testing.T) {
	specs := catalog.Normalize([]catalog.ControlSpec{
		{ID: "1", ControlID: "AC-1", Specification: "keep  this"},
		{ID: "2", ControlID: "AC-2", Specification: ""},
		{ID: "3", ControlID: "", Specification: "orphan"},
	})
	if len(specs) != 1 {
		t.Fatalf("Normalize() kept %d specs, want 1", len(specs))
	}
	if specs[0].Specification != "keep this" {
		t.Errorf("Specification = %q, want collapsed", specs[0].Specification)
	}
}
