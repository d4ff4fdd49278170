package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/config"
	"github.com/stepanukha/Weather-App/internal/store"
)

type fakeAdvisor struct {
	mu   sync.Mutex
	seen []advisor.Request
}

func (f *fakeAdvisor) Advise(_ context.Context, req advisor.Request) (advisor.Report, error) {
	f.mu.Lock()
	f.seen = append(f.seen, req)
	f.mu.Unlock()

	if req.PostalCode == "00000" {
		return advisor.Report{}, errors.New("not found")
	}
	return advisor.Report{ID: req.PostalCode, GeneratedAt: time.Now().UTC()}, nil
}

func TestRunOnce(t *testing.T) {
	places := []config.Place{
		{Name: "home", PostalCode: "19104"},
		{Name: "office", PostalCode: "10001"},
		{Name: "nowhere", PostalCode: "00000"},
	}
	adv := &fakeAdvisor{}
	mem := store.NewMemoryStore(10, time.Hour)

	s := New(places, "", time.Hour, adv, mem, zaptest.NewLogger(t))
	s.RunOnce()

	if len(adv.seen) != 3 {
		t.Fatalf("expected 3 advise calls, got %d", len(adv.seen))
	}

	for _, name := range []string{"home", "office"} {
		if _, err := mem.Latest(name); err != nil {
			t.Errorf("expected a report for %s: %v", name, err)
		}
	}
	if _, err := mem.Latest("nowhere"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed briefing must not be stored, got %v", err)
	}
}

func TestStartWithoutPlaces(t *testing.T) {
	s := New(nil, "", time.Hour, &fakeAdvisor{}, store.NewMemoryStore(0, 0), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}

func TestStartRejectsBadCron(t *testing.T) {
	places := []config.Place{{Name: "home", PostalCode: "19104"}}
	s := New(places, "not a cron", 0, &fakeAdvisor{}, store.NewMemoryStore(0, 0), nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestEvery(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{0, time.Hour},
		{-time.Minute, time.Hour},
		{90 * time.Second, 90 * time.Second},
		{15 * time.Minute, 15 * time.Minute},
	}

	for _, tt := range tests {
		s := New(nil, "", tt.interval, &fakeAdvisor{}, store.NewMemoryStore(0, 0), nil)
		if got := s.every(); got != tt.want {
			t.Errorf("every() with interval %s = %s, want %s", tt.interval, got, tt.want)
		}
	}
}

func TestStartWithInterval(t *testing.T) {
	places := []config.Place{{Name: "home", PostalCode: "19104"}}
	s := New(places, "", 90*time.Second, &fakeAdvisor{}, store.NewMemoryStore(0, 0), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
