package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartload/pkg/notify"
)

func TestMessages_WithDefaults(t *testing.T) {
	got := notify.Messages{Exception: "Boom"}.WithDefaults()
	want := notify.Messages{Failure: "Failure.", Exception: "Boom"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_PrintsLines(t *testing.T) {
	var buf bytes.Buffer
	w := notify.NewWriter(&buf, "chartload: ")

	if err := w.Notify(context.Background(), "Failure."); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := w.Notify(context.Background(), "Exception"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	want := "chartload: Failure.\nchartload: Exception\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFunc_Nil(t *testing.T) {
	var fn notify.Func
	if err := fn.Notify(context.Background(), "x"); err != nil {
		t.Fatalf("nil func should be a no-op, got %v", err)
	}
	if err := notify.Discard.Notify(context.Background(), "x"); err != nil {
		t.Fatalf("discard: %v", err)
	}
}

func TestAlert_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := notify.NewAlert().Notify(ctx, "Failure."); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

type stubDriver struct {
	err     error
	configs []notify.ConfirmConfig
}

func (s *stubDriver) Confirm(_ context.Context, cfg notify.ConfirmConfig) (bool, error) {
	s.configs = append(s.configs, cfg)
	if s.err != nil {
		return false, s.err
	}
	return true, nil
}

func TestAlert_PromptsThroughDriver(t *testing.T) {
	driver := &stubDriver{}
	if err := notify.NewAlertWithDriver(driver).Notify(context.Background(), "Failure."); err != nil {
		t.Fatalf("notify: %v", err)
	}

	want := []notify.ConfirmConfig{{Message: "Failure.", Default: true, Help: "Press enter to dismiss."}}
	if diff := cmp.Diff(want, driver.configs); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestAlert_DriverErrors(t *testing.T) {
	interrupted := notify.NewAlertWithDriver(&stubDriver{err: terminal.InterruptErr})
	if err := interrupted.Notify(context.Background(), "Exception"); !errors.Is(err, notify.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	broken := errors.New("tty gone")
	failing := notify.NewAlertWithDriver(&stubDriver{err: broken})
	if err := failing.Notify(context.Background(), "Exception"); !errors.Is(err, broken) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestAlert_CancelledContextSkipsDriver(t *testing.T) {
	driver := &stubDriver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := notify.NewAlertWithDriver(driver).Notify(ctx, "Failure."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(driver.configs) != 0 {
		t.Fatalf("expected no prompt, got %+v", driver.configs)
	}
}
