package imgtool

import (
	"context"
	"strconv"
)

// CWebP drives the cwebp encoder:
//
//	cwebp -q <quality> [-resize <w> 0] in -o out
type CWebP struct {
	Bin     string
	Quality int
	Runner  Runner
}

func (c CWebP) Name() string {
	return c.bin()
}

func (c CWebP) bin() string {
	if c.Bin == "" {
		return "cwebp"
	}
	return c.Bin
}

func (c CWebP) Args(in, out string, width int) []string {
	args := []string{"-q", strconv.Itoa(c.Quality)}
	if width > 0 {
		args = append(args, "-resize", strconv.Itoa(width), "0")
	}
	return append(args, in, "-o", out)
}

func (c CWebP) Encode(ctx context.Context, in, out string, width int) error {
	return run(ctx, c.Runner, c.bin(), c.Args(in, out, width)...)
}

// Available reports whether the binary runs at all.
func (c CWebP) Available(ctx context.Context) error {
	return run(ctx, c.Runner, c.bin(), "-version")
}
