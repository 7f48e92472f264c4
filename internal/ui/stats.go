package ui

import "sync/atomic"

type Stats struct {
	Directories atomic.Int64
	Images      atomic.Int64
	Variants    atomic.Int64
	Failed      atomic.Int64
	Bytes       atomic.Int64
}
