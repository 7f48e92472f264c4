// Package browser drives a headless Chromium through go-rod to check that
// the landing page behaves after patching.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Config struct {
	Headless          bool
	ViewportWidth     int
	ViewportHeight    int
	NavigationTimeout time.Duration
	// Settle is the pause after load so page scripts can run.
	Settle time.Duration
	// Bin is a Chromium binary; empty lets rod find or download one.
	Bin string
}

func DefaultConfig() Config {
	return Config{
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		NavigationTimeout: 30 * time.Second,
		Settle:            3 * time.Second,
	}
}

func (c Config) navTimeout() time.Duration {
	if c.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return c.NavigationTimeout
}

// Viewport is the emulated device for one page.
type Viewport struct {
	Width  int  `yaml:"width" json:"width"`
	Height int  `yaml:"height" json:"height"`
	Mobile bool `yaml:"mobile" json:"mobile"`
}

func (v Viewport) String() string {
	if v.Mobile {
		return fmt.Sprintf("%dx%d mobile", v.Width, v.Height)
	}
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Opener opens a page at url emulating vp.
type Opener interface {
	Open(ctx context.Context, url string, vp Viewport) (Page, error)
}

// Session owns one browser process.
type Session struct {
	cfg Config
	log *ui.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

func NewSession(cfg Config, log *ui.Logger) *Session {
	return &Session{cfg: cfg, log: log}
}

// Start launches Chromium and connects to it. Calling Start on a live
// session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if _, err := s.browser.Version(); err == nil {
			return nil
		}
		_ = s.browser.Close()
		s.browser = nil
	}

	l := launcher.New().Headless(s.cfg.Headless)
	if s.cfg.Bin != "" {
		l = l.Bin(s.cfg.Bin)
	}

	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return fmt.Errorf("launch chromium: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("connect to chromium: %w", err)
	}

	if s.log != nil {
		s.log.Debugf("browser connected: %s", controlURL)
	}
	s.browser = b
	return nil
}

// Open creates an isolated page, applies the viewport and navigates. A
// navigation failure closes the page and is returned to the caller.
func (s *Session) Open(ctx context.Context, url string, vp Viewport) (Page, error) {
	if err := s.Start(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	b := s.browser
	s.mu.Unlock()
	if b == nil {
		return nil, errors.New("browser not connected")
	}

	incognito, err := b.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
		Mobile:            vp.Mobile,
	}); err != nil && s.log != nil {
		s.log.Warnf("failed to set viewport %s: %v", vp, err)
	}

	nav := page.Context(ctx).Timeout(s.cfg.navTimeout())
	if err := nav.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("load %s: %w", url, err)
	}

	if err := sleep(ctx, s.cfg.Settle); err != nil {
		_ = page.Close()
		return nil, err
	}

	return &rodPage{page: page.Context(ctx), timeout: s.cfg.navTimeout()}, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
