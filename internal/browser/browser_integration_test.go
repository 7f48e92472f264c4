//go:build integration

package browser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html>
<html><head><style>.wide{width:900px}</style></head>
<body>
<nav id="nav"><a href="#">Shop</a></nav>
<button class="mobile-menu-toggle" onclick="document.getElementById('nav').classList.toggle('active')">Menu</button>
<div class="product-accordion-section">
  <div class="accordion-item" data-tab="details">
    <button class="accordion-trigger" onclick="this.nextElementSibling.style.maxHeight='200px'">Details</button>
    <div class="accordion-content" style="max-height:0">Soft</div>
  </div>
</div>
<div class="worn-by-favorites"><img src="images/worn-by-favorites/a.webp"></div>
<div id="size-selector"><button class="size-btn">S</button><button class="size-btn">M</button></div>
<button onclick="addToCart()">Add</button>
<button onclick="buyNow()">Buy</button>
<span class="price">$49</span>
<div class="wide">wide</div>
</body></html>`

func TestRunAgainstChromium(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(html, []byte(fixturePage), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := DefaultConfig()
	cfg.Settle = 200 * time.Millisecond
	cfg.Bin = os.Getenv("LANDINGKIT_BROWSER_BIN")

	s := NewSession(cfg, ui.NewLogger(false))
	defer func() { _ = s.Close() }()

	var out bytes.Buffer
	r := &Runner{Opener: s, Status: ui.NewStatus(&out), Pause: 100 * time.Millisecond}

	// nothing listens on this port, so the run falls back to the file
	rep, err := r.Run(ctx, Target{URL: "http://127.0.0.1:9", File: html}, DefaultSuites())
	require.NoError(t, err, out.String())

	assert.True(t, rep.Fallback)
	assert.True(t, rep.OK(), out.String())

	items, err := FindOverflow(ctx, s, rep.URL, OverflowViewport)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "DIV", items[0].Tag)
}
