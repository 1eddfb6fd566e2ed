package server

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGracefulServer_Reload(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil, Options{})

	reloadCalled := false
	gs.SetReloadFunc(func() error {
		reloadCalled = true
		return nil
	})

	if err := gs.Reload(); err != nil {
		t.Errorf("Reload() error = %v", err)
	}
	if !reloadCalled {
		t.Error("Reload function was not called")
	}
}

func TestGracefulServer_ReloadError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil, Options{})

	wantErr := errors.New("dataset unreachable")
	gs.SetReloadFunc(func() error {
		return wantErr
	})

	if err := gs.Reload(); !errors.Is(err, wantErr) {
		t.Errorf("Expected reload error to propagate, got %v", err)
	}
}

func TestGracefulServer_ReloadWithoutFunc(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil, Options{})

	// No reload function configured is a no-op, not an error.
	if err := gs.Reload(); err != nil {
		t.Errorf("Reload() without function should be nil, got %v", err)
	}
}

func TestGracefulServer_Shutdown(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), nil, Options{})

	go func() {
		if err := gs.Start(); err != nil {
			t.Logf("Server stopped: %v", err)
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if gs.IsShuttingDown() {
		t.Error("Server should not report shutting down before Shutdown")
	}

	if err := gs.Shutdown(1 * time.Second); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
	if !gs.IsShuttingDown() {
		t.Error("Server should report shutting down after Shutdown")
	}

	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("ShutdownChannel should be closed after Shutdown")
	}

	// Shutdown is idempotent.
	if err := gs.Shutdown(1 * time.Second); err != nil {
		t.Errorf("Second Shutdown error: %v", err)
	}
}
