package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
)

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false without a user")
	}
	app.user = &models.User{ID: "u1"}
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true with a user")
	}
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	lines := captureOutput(t)
	app := &App{}

	app.setMode(ModeOnline)
	if app.Mode != ModeOnline {
		t.Fatalf("expected mode %q, got %q", ModeOnline, app.Mode)
	}
	if len(*lines) == 0 {
		t.Fatalf("expected output on mode change")
	}

	before := len(*lines)
	app.setMode(ModeOnline)
	if len(*lines) != before {
		t.Fatalf("expected no output when mode doesn't change")
	}

	app.setMode(ModeOffline)
	if app.Mode != ModeOffline {
		t.Fatalf("expected mode %q, got %q", ModeOffline, app.Mode)
	}
	if len(*lines) == before {
		t.Fatalf("expected output on mode change to offline")
	}
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	if got := app.getStatus(); got != "" {
		t.Fatalf("empty app status: got %q", got)
	}

	app.user = &models.User{Email: "a@b.c"}
	app.Mode = ModeOnline
	if got := app.getStatus(); got != "(a@b.c online)" {
		t.Fatalf("status mismatch: got %q", got)
	}
}

func TestProbeBackend(t *testing.T) {
	f := &fakeClient{}
	app := &App{api: f, log: testLog()}

	if err := app.probeBackend(context.Background()); err != nil {
		t.Fatalf("probe err: %v", err)
	}
	if f.healthCalls != 1 {
		t.Fatalf("expected a single health call, got %d", f.healthCalls)
	}
}

func TestProbeBackend_RetriesThenFails(t *testing.T) {
	f := &fakeClient{healthErr: errors.New("down")}
	app := &App{api: f, log: testLog()}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.probeBackend(ctx); err == nil {
		t.Fatalf("expected probe failure")
	}
	if f.healthCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", f.healthCalls)
	}
}
