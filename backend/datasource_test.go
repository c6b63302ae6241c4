package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func nextSession(t *testing.T, sessions <-chan Session, accept func(Session) bool) Session {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-sessions:
			if accept(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for session")
			return Session{}
		}
	}
}

func TestDatasourcePublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx, time.Millisecond, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()
	sessions := d.Snapshots(ctx)
	if first := <-sessions; first.Version != 0 || first.Data != nil {
		t.Errorf("expected empty first session, got %+v", first)
	}
	data := &Dataset{Names: []string{"a"}, Labels: []string{"1"}, Values: [][]float64{{1}}}
	d.Publish(data)
	s := nextSession(t, sessions, func(s Session) bool { return s.Version == 1 })
	if s.Data != data {
		t.Errorf("expected published dataset")
	}
}

func TestDatasourceConcurrentPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx, time.Millisecond, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()
	sessions := d.Snapshots(ctx)
	<-sessions

	const publishers, rounds = 4, 50
	data := &Dataset{Names: []string{"a"}, Labels: []string{"1"}, Values: [][]float64{{1}}}
	var wg sync.WaitGroup
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				d.Publish(data)
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	last := 0
	for last < publishers*rounds {
		select {
		case s := <-sessions:
			if s.Version <= last {
				t.Fatalf("expected versions to increase, got %d after %d", s.Version, last)
			}
			last = s.Version
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out at version %d", last)
		}
	}
	<-done
}

func TestDatasourceReloadsOnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("label,a\n1,10\n"), 0o644); err != nil {
		t.Fatalf("failed writing data: %v", err)
	}
	d, err := NewDatasource(ctx, time.Millisecond, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()
	if err := d.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions := d.Snapshots(ctx)
	first := nextSession(t, sessions, func(s Session) bool { return s.Data != nil })
	if first.Data.NumberOfPoints() != 1 {
		t.Errorf("expected 1 point, got %d", first.Data.NumberOfPoints())
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("failed opening data: %v", err)
	}
	if _, err := f.WriteString("2,20\n"); err != nil {
		t.Fatalf("failed appending data: %v", err)
	}
	f.Close()

	reloaded := nextSession(t, sessions, func(s Session) bool {
		return s.Data != nil && s.Data.NumberOfPoints() == 2
	})
	if got := reloaded.Data.Value("a", 1); got != 20 {
		t.Errorf("expected 20, got %v", got)
	}
}

func TestDatasourceLoadError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, err := NewDatasource(ctx, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()
	if err := d.Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
	if s := d.Current(); s.Err == nil {
		t.Errorf("expected the session to carry the error")
	}
}
