package imgtool

import (
	"context"
	"strconv"
)

// Sips drives the macOS resampler:
//
//	sips -Z <w> in -s format jpeg -s formatOptions <q> --out out
type Sips struct {
	Bin     string
	Quality int
	Runner  Runner
}

func (s Sips) Name() string {
	return s.bin()
}

func (s Sips) bin() string {
	if s.Bin == "" {
		return "sips"
	}
	return s.Bin
}

func (s Sips) Args(in, out string, width int) []string {
	if width <= 0 {
		width = DefaultJPEGWidth
	}
	return []string{
		"-Z", strconv.Itoa(width),
		in,
		"-s", "format", "jpeg",
		"-s", "formatOptions", strconv.Itoa(s.Quality),
		"--out", out,
	}
}

func (s Sips) ResizeJPEG(ctx context.Context, in, out string, width int) error {
	return run(ctx, s.Runner, s.bin(), s.Args(in, out, width)...)
}

// Available probes the binary with --help; sips has no version flag.
func (s Sips) Available(ctx context.Context) error {
	return run(ctx, s.Runner, s.bin(), "--help")
}
