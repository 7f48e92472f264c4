package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

// Status prints the per-item result lines every task emits. Safe for
// concurrent use so worker goroutines can share one.
type Status struct {
	mu  sync.Mutex
	out io.Writer
}

func NewStatus(out io.Writer) *Status {
	if out == nil {
		out = os.Stdout
	}
	return &Status{out: out}
}

func (s *Status) Writer() io.Writer {
	return s.out
}

func (s *Status) line(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.out, text)
}

func (s *Status) Heading(format string, args ...any) {
	s.line("\n" + headStyle.Render(fmt.Sprintf(format, args...)))
}

func (s *Status) Printf(format string, args ...any) {
	s.line(fmt.Sprintf(format, args...))
}

func (s *Status) OK(format string, args ...any) {
	s.line("  " + okStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func (s *Status) Pass(format string, args ...any) {
	s.line("   " + okStyle.Render("✅") + " " + fmt.Sprintf(format, args...))
}

func (s *Status) Fail(format string, args ...any) {
	s.line("   " + failStyle.Render("❌") + " " + fmt.Sprintf(format, args...))
}

func (s *Status) Warn(format string, args ...any) {
	s.line("   " + warnStyle.Render("⚠️ ") + " " + fmt.Sprintf(format, args...))
}

// Batch collects the lines of one work item so concurrent items do not
// interleave. Flush writes them in one go.
type Batch struct {
	s     *Status
	lines []string
}

func (s *Status) Batch() *Batch {
	return &Batch{s: s}
}

func (b *Batch) Printf(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *Batch) OK(format string, args ...any) {
	b.lines = append(b.lines, "  "+okStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (b *Batch) Warn(format string, args ...any) {
	b.lines = append(b.lines, "  "+warnStyle.Render("⚠️ ")+" "+fmt.Sprintf(format, args...))
}

func (b *Batch) Flush() {
	if len(b.lines) == 0 {
		return
	}
	b.s.line(strings.Join(b.lines, "\n"))
	b.lines = b.lines[:0]
}
