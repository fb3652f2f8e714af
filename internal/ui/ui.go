// Package ui provides stderr-based terminal output for the prefab tool.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/papapumpkin/prefab/internal/prefab"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer is safe for concurrent use; each message is written whole.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{out: os.Stderr}
}

// NewTo returns a Printer writing to w.
func NewTo(w io.Writer) *Printer {
	return &Printer{out: w}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Error(msg string) {
	p.printf(red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	p.printf(dim+"%s"+reset+"\n", msg)
}

// ValidateResult prints a validation report for the named prefab.
func (p *Printer) ValidateResult(name string, objectCount int, rep prefab.Report) {
	var b strings.Builder
	for _, w := range rep.Warnings {
		fmt.Fprintf(&b, "  "+yellow+"⚠ "+reset+"%s\n", w.Error())
	}
	if rep.OK() {
		fmt.Fprintf(&b, green+bold+"✓ prefab %q"+reset+" — %d object(s), no errors\n", name, objectCount)
	} else {
		fmt.Fprintf(&b, red+bold+"✗ prefab %q"+reset+" — %d error(s):\n", name, len(rep.Errors))
		for _, e := range rep.Errors {
			fmt.Fprintf(&b, "  "+red+"• "+reset+"%s\n", e.Error())
		}
	}
	p.printf("%s", b.String())
}

// BuildDone reports a prefab written to path.
func (p *Printer) BuildDone(name, path string, objectCount int) {
	p.printf(green+"◆ built"+reset+" %q → %s "+dim+"(%d object(s))"+reset+"\n", name, path, objectCount)
}

// Formatted reports a file rewritten in canonical form.
func (p *Printer) Formatted(path string, changed bool) {
	if !changed {
		p.printf(dim+"%s already canonical"+reset+"\n", path)
		return
	}
	p.printf(cyan+"~ formatted"+reset+" %s\n", path)
}

// Watching announces the directory a watch session observes.
func (p *Printer) Watching(dir, outDir string) {
	p.printf(bold+cyan+"watching %s"+reset+dim+" → %s (ctrl-c to stop)"+reset+"\n", dir, outDir)
}

// Removed reports a recipe that disappeared during a watch session.
func (p *Printer) Removed(path string) {
	p.printf(yellow+"- removed"+reset+" %s\n", path)
}

// Tree prints a hierarchy rendered by RenderTree.
func (p *Printer) Tree(tree string) {
	p.printf("%s", tree)
}
