// Package audit runs browserless checks against the landing page: static
// DOM/content assertions and an image reference sweep.
package audit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	retryAttempts = 3
	retryBackoff  = 500 * time.Millisecond
)

// Source is a parsed page plus where relative references resolve from:
// the page URL for remote pages, the containing directory for files.
type Source struct {
	Doc    *goquery.Document
	HTML   string
	Base   string
	Remote bool
}

func isRemote(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load reads src as a URL when it has an http(s) scheme and as a file
// otherwise.
func Load(ctx context.Context, client *http.Client, src string) (*Source, error) {
	if isRemote(src) {
		body, err := Fetch(ctx, client, src)
		if err != nil {
			return nil, err
		}
		return parse(body, src, true)
	}

	b, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(src))
	if err != nil {
		return nil, err
	}
	return parse(string(b), abs, false)
}

func parse(body, base string, remote bool) (*Source, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Source{Doc: doc, HTML: body, Base: base, Remote: remote}, nil
}

// Fetch GETs a page, retrying transport errors and 5xx.
func Fetch(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := util.DoWithRetry(client, req, retryAttempts, retryBackoff)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	return string(b), nil
}
