// Package notify delivers the user-facing message shown when a chart cannot be
// loaded. The default Alert blocks on a terminal confirmation, the closest
// analogue to a modal dialog; Writer and Func cover non-interactive callers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user interrupted the prompt (e.g. Ctrl+C).
var ErrAborted = errors.New("notify: aborted")

// Notifier shows message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Messages holds the fixed, non-descriptive texts shown to users.
type Messages struct {
	Failure   string
	Exception string
}

// DefaultMessages returns the texts used when none are configured.
func DefaultMessages() Messages {
	return Messages{
		Failure:   "Failure.",
		Exception: "Exception",
	}
}

// WithDefaults fills empty fields from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	defaults := DefaultMessages()
	if strings.TrimSpace(m.Failure) == "" {
		m.Failure = defaults.Failure
	}
	if strings.TrimSpace(m.Exception) == "" {
		m.Exception = defaults.Exception
	}
	return m
}

// Func adapts a function into a Notifier.
type Func func(ctx context.Context, message string) error

func (f Func) Notify(ctx context.Context, message string) error {
	if f == nil {
		return nil
	}
	return f(ctx, message)
}

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, string) error { return nil })

// ConfirmConfig configures the acknowledgement prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// PromptDriver abstracts the terminal prompt so Alert can be exercised without
// a real terminal.
type PromptDriver interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

type surveyDriver struct {
	opts []survey.AskOpt
}

func (d surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	out := cfg.Default
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &out, d.opts...); err != nil {
		return false, err
	}
	return out, nil
}

// Alert blocks until the user acknowledges the message.
type Alert struct {
	driver PromptDriver
}

// NewAlert constructs an Alert prompting through survey. Ask options are
// forwarded, which lets callers redirect stdio (survey.WithStdio).
func NewAlert(opts ...survey.AskOpt) *Alert {
	return &Alert{driver: surveyDriver{opts: opts}}
}

// NewAlertWithDriver constructs an Alert prompting through driver.
func NewAlertWithDriver(driver PromptDriver) *Alert {
	if driver == nil {
		return NewAlert()
	}
	return &Alert{driver: driver}
}

func (a *Alert) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := a.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: true,
		Help:    "Press enter to dismiss.",
	})
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return fmt.Errorf("notify: alert: %w", err)
	}
	return nil
}

// Writer prints each notification as a line. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
}

// NewWriter returns a Writer printing to out with an optional prefix.
func NewWriter(out io.Writer, prefix string) *Writer {
	return &Writer{out: out, prefix: prefix}
}

func (w *Writer) Notify(_ context.Context, message string) error {
	if w == nil || w.out == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintln(w.out, w.prefix+message)
	return err
}
