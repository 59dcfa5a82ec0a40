package client

import (
	"errors"

	"github.com/atotto/clipboard"
)

// CopyFunc writes text to a clipboard. Injectable for headless environments
// and tests.
type CopyFunc func(text string) error

// Clipboard copies share URLs for the "copy link" affordance. Writers are
// tried in order, so a failing system clipboard can degrade to a fallback
// instead of surfacing an error.
type Clipboard struct {
	writers []CopyFunc
}

// NewClipboard returns a system-clipboard-backed copier.
func NewClipboard() *Clipboard {
	return &Clipboard{writers: []CopyFunc{clipboard.WriteAll}}
}

// NewClipboardWithFunc returns a copier backed by the given write functions,
// tried in order until one succeeds.
func NewClipboardWithFunc(fns ...CopyFunc) *Clipboard {
	return &Clipboard{writers: fns}
}

// ShareURL returns the fully-qualified URL of a link, preferring the
// server-issued absolute URL. Callers can show it for manual copying when
// every clipboard writer fails.
func ShareURL(origin string, link *ShareLink) string {
	if link.URL != "" {
		return link.URL
	}
	return origin + "/s/" + link.Token
}

// CopyShareURL copies the fully-qualified URL of a link. When the link
// carries no absolute URL the origin is used to build one. Each configured
// writer is tried in order; the last error is returned only when all fail.
func (cb *Clipboard) CopyShareURL(origin string, link *ShareLink) error {
	url := ShareURL(origin, link)

	var err error
	for _, write := range cb.writers {
		if err = write(url); err == nil {
			return nil
		}
	}
	if err == nil {
		err = errors.New("no clipboard writer configured")
	}
	return err
}
