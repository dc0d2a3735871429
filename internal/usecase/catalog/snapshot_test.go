package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

// --- Mocks ---

type mockLoader struct {
	cands []candidate.Candidate
	err   error
	calls atomic.Int32
}

func (m *mockLoader) Candidates(_ context.Context) ([]candidate.Candidate, error) {
	m.calls.Add(1)
	return m.cands, m.err
}

type mockStore struct {
	mockLoader
	saved   []candidate.Candidate
	saveErr error
}

func (m *mockStore) Save(_ context.Context, cands []candidate.Candidate) error {
	m.saved = cands
	return m.saveErr
}

func mk(t *testing.T, id string) candidate.Candidate {
	t.Helper()
	c, err := candidate.New(candidate.Params{ID: id, Availability: candidate.Immediate})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// --- Tests ---

func TestSnapshot_NotLoaded(t *testing.T) {
	s := NewSnapshot(&mockLoader{}, zap.NewNop())
	_, err := s.Candidates(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
	if !s.LoadedAt().IsZero() {
		t.Error("LoadedAt should be zero before refresh")
	}
}

func TestSnapshot_Refresh(t *testing.T) {
	l := &mockLoader{cands: []candidate.Candidate{mk(t, "a"), mk(t, "b")}}
	s := NewSnapshot(l, zap.NewNop())

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got, err := s.Candidates(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("Candidates = %v, %v", got, err)
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set")
	}

	l.cands[0] = mk(t, "mutated")
	got, _ = s.Candidates(context.Background())
	if got[0].ID() != "a" {
		t.Error("snapshot must not alias the loader's slice")
	}
}

func TestSnapshot_RefreshFailureKeepsPrevious(t *testing.T) {
	l := &mockLoader{cands: []candidate.Candidate{mk(t, "a")}}
	s := NewSnapshot(l, zap.NewNop())
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	l.err = errors.New("redis down")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	got, err := s.Candidates(context.Background())
	if err != nil || len(got) != 1 || got[0].ID() != "a" {
		t.Errorf("Candidates = %v, %v; want previous snapshot", got, err)
	}
}

func TestSnapshot_StartSchedules(t *testing.T) {
	l := &mockLoader{cands: []candidate.Candidate{mk(t, "a")}}
	s := NewSnapshot(l, zap.NewNop())

	if err := s.Start(context.Background(), "@every 1s"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for l.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if l.calls.Load() == 0 {
		t.Fatal("scheduled refresh never ran")
	}
}

func TestSnapshot_StartInvalidSpec(t *testing.T) {
	s := NewSnapshot(&mockLoader{}, zap.NewNop())
	if err := s.Start(context.Background(), "every now and then"); err == nil {
		t.Error("expected error for invalid spec")
	}
	s.Stop()
}

func TestSnapshot_StartEmptySpec(t *testing.T) {
	s := NewSnapshot(&mockLoader{}, zap.NewNop())
	if err := s.Start(context.Background(), ""); err != nil {
		t.Errorf("Start(\"\") = %v", err)
	}
	s.Stop()
}

func TestSeed(t *testing.T) {
	seed := &mockLoader{cands: []candidate.Candidate{mk(t, "a")}}

	t.Run("empty store is seeded", func(t *testing.T) {
		st := &mockStore{mockLoader: mockLoader{err: domain.ErrNotFound}}
		wrote, err := Seed(context.Background(), st, seed)
		if err != nil || !wrote {
			t.Fatalf("Seed = %v, %v", wrote, err)
		}
		if len(st.saved) != 1 {
			t.Errorf("saved = %v", st.saved)
		}
	})

	t.Run("existing snapshot untouched", func(t *testing.T) {
		st := &mockStore{mockLoader: mockLoader{cands: []candidate.Candidate{mk(t, "x")}}}
		wrote, err := Seed(context.Background(), st, seed)
		if err != nil || wrote {
			t.Fatalf("Seed = %v, %v", wrote, err)
		}
		if st.saved != nil {
			t.Error("store should not be written")
		}
	})

	t.Run("store error", func(t *testing.T) {
		st := &mockStore{mockLoader: mockLoader{err: errors.New("network")}}
		if _, err := Seed(context.Background(), st, seed); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("save error", func(t *testing.T) {
		st := &mockStore{mockLoader: mockLoader{err: domain.ErrNotFound}, saveErr: errors.New("readonly")}
		if _, err := Seed(context.Background(), st, seed); err == nil {
			t.Error("expected error")
		}
	})
}
