package embed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/window"
)

// SetWindowPos flags that only make a style change take effect
const frameChangedFlags = window.SWP_NOMOVE | window.SWP_NOSIZE | window.SWP_NOZORDER | window.SWP_NOACTIVATE | window.SWP_FRAMECHANGED

// Transform turns a top-level window into a borderless child of the host
type Transform struct {
	styler window.Styler
	log    *logger.Logger
}

func NewTransform(styler window.Styler, log *logger.Logger) *Transform {
	return &Transform{
		styler: styler,
		log:    log,
	}
}

// Embed strips the chrome from embedded, re-parents it under host and marks
// the host as clipping its children. It stops at the first step that fails.
func (t *Transform) Embed(embedded, host window.Handle) error {
	if err := t.strip(embedded); err != nil {
		return err
	}

	exStyle, err := t.styler.ExStyle(embedded)
	if err != nil {
		return fmt.Errorf("reading extended style of %v: %w", embedded, err)
	}
	if err := t.styler.SetExStyle(embedded, window.EmbeddedExStyle(exStyle)); err != nil {
		return fmt.Errorf("setting extended style of %v: %w", embedded, err)
	}

	if err := t.styler.SetPos(embedded, 0, window.Rect{}, frameChangedFlags); err != nil {
		return fmt.Errorf("recalculating frame of %v: %w", embedded, err)
	}

	if err := t.styler.SetParent(embedded, host); err != nil {
		return fmt.Errorf("re-parenting %v under %v: %w", embedded, host, err)
	}
	if err := t.styler.SetOwner(embedded, host); err != nil {
		return fmt.Errorf("setting owner of %v: %w", embedded, err)
	}

	// not topmost until the synchronizer first places it, so it does not steal focus
	if err := t.styler.SetPos(embedded, window.HWND_NOTOPMOST, window.Rect{}, frameChangedFlags); err != nil {
		return fmt.Errorf("lowering %v: %w", embedded, err)
	}

	hostStyle, err := t.styler.Style(host)
	if err != nil {
		return fmt.Errorf("reading style of host %v: %w", host, err)
	}
	if err := t.styler.SetStyle(host, window.HostStyle(hostStyle)); err != nil {
		return fmt.Errorf("setting style of host %v: %w", host, err)
	}

	t.log.Infoln("Embedded", embedded, "into", host)
	return nil
}

func (t *Transform) strip(h window.Handle) error {
	style, err := t.styler.Style(h)
	if err != nil {
		return fmt.Errorf("reading style of %v: %w", h, err)
	}
	if err := t.styler.SetStyle(h, window.EmbeddedStyle(style)); err != nil {
		return fmt.Errorf("setting style of %v: %w", h, err)
	}
	return nil
}

// Reassert strips the chrome from embedded again every interval until
// duration has passed or ctx is done. Some applications restore their own
// styles shortly after startup. Failures are logged and do not end the pass.
func (t *Transform) Reassert(ctx context.Context, embedded window.Handle, interval, duration time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	passes := 0
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				t.log.Debugln("Style reassertion on", embedded, "finished after", passes, "passes")
			}
			return
		case <-ticker.C:
		}

		passes++
		if err := t.strip(embedded); err != nil {
			t.log.Debugln("Reassert:", err)
			continue
		}
		if err := t.styler.SetPos(embedded, 0, window.Rect{}, frameChangedFlags); err != nil {
			t.log.Debugln("Reassert: recalculating frame of", embedded, err)
		}
	}
}
