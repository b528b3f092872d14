// Package linkopen hands contact links to the desktop.
package linkopen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrEmptyTarget means there was nothing to open
	ErrEmptyTarget = errors.New("no link to open")

	// ErrCopied means the browser could not be started but the link is on the clipboard
	ErrCopied = errors.New("link copied to clipboard instead")
)

var openFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jobfeed_link_open_failures_total",
	Help: "Links that could not be handed to the system opener",
})

// Opener launches links with the platform opener and falls back to the clipboard
type Opener struct {
	openFn func(context.Context, string) error
	copyFn func(string) error
}

func New() *Opener {
	return &Opener{openFn: openInBrowser, copyFn: clipboard.WriteAll}
}

// Open validates uri and launches it. A failed launch that was copied to the
// clipboard returns an error wrapping ErrCopied.
func (o *Opener) Open(ctx context.Context, uri string) error {
	if err := ValidateURI(uri); err != nil {
		openFailures.Inc()
		return err
	}

	openErr := o.openFn(ctx, uri)
	if openErr == nil {
		return nil
	}
	openFailures.Inc()

	if o.copyFn != nil {
		if err := o.copyFn(uri); err == nil {
			return fmt.Errorf("%w: %v", ErrCopied, openErr)
		}
	}
	return fmt.Errorf("open %s: %w", uri, openErr)
}

// ValidateURI accepts absolute http and https links only
func ValidateURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return ErrEmptyTarget
	}
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported link scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("link has no host: %q", uri)
	}
	return nil
}

// WhatsAppURI builds the direct chat link for a phone number. Everything but
// digits is dropped.
func WhatsAppURI(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrEmptyTarget
	}
	return "https://wa.me/" + digits, nil
}

func init() {
	// the opener's output must stay off the terminal screen
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

func openInBrowser(_ context.Context, uri string) error {
	return browser.OpenURL(uri)
}
