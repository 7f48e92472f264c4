// Package imgtool wraps the image tools the converter shells out to, plus
// in-process stand-ins used when a binary is not installed.
package imgtool

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrToolMissing = errors.New("image tool not found")

// DefaultJPEGWidth is used when a resize is requested without a width.
const DefaultJPEGWidth = 1200

// BuiltinName selects the in-process implementation in config.
const BuiltinName = "builtin"

// WebPEncoder writes a WebP of in to out. width 0 keeps the source size.
type WebPEncoder interface {
	Name() string
	Encode(ctx context.Context, in, out string, width int) error
}

// JPEGResizer writes a JPEG of in to out whose longest side is at most width.
type JPEGResizer interface {
	Name() string
	ResizeJPEG(ctx context.Context, in, out string, width int) error
}

// ToolError carries what an external tool printed when it failed.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
