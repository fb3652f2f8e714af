package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/prefab/internal/prefab"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorAccent  = lipgloss.Color("#FFD700")
	colorDanger  = lipgloss.Color("#FF5252")
	colorMuted   = lipgloss.Color("#636363")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleName    = lipgloss.NewStyle().Bold(true)
	styleID      = lipgloss.NewStyle().Foreground(colorMuted)
	styleDetail  = lipgloss.NewStyle().Foreground(colorMuted)
	styleBranch  = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarning = lipgloss.NewStyle().Foreground(colorAccent)
	styleProblem = lipgloss.NewStyle().Foreground(colorDanger)
)

// TreeOptions controls RenderTree output.
type TreeOptions struct {
	// UseColor applies lipgloss styles. Without it the output is plain text.
	UseColor bool
	// Details appends shape, start time and keyframe counts to each node.
	Details bool
}

// treeRenderer walks a document's parent index from its roots.
type treeRenderer struct {
	doc     *prefab.Document
	opts    TreeOptions
	b       strings.Builder
	visited map[string]bool
}

// RenderTree draws the object hierarchy of doc. Objects without a
// parent, or whose parent is missing, are roots. Objects only reachable
// through a parent cycle are listed last and marked.
func RenderTree(doc *prefab.Document, opts TreeOptions) string {
	r := &treeRenderer{doc: doc, opts: opts, visited: make(map[string]bool, doc.Len())}

	r.b.WriteString(r.style(styleTitle, doc.Name))
	r.b.WriteString(r.style(styleDetail, fmt.Sprintf(" [%s] %d object(s)", doc.Category, doc.Len())))
	r.b.WriteString("\n")

	objs := doc.Objects()
	var roots []*prefab.Object
	for _, o := range objs {
		if _, ok := doc.Parent(o.ID()); !ok {
			roots = append(roots, o)
		}
	}
	for i, o := range roots {
		r.node(o, "", i == len(roots)-1)
	}

	for _, o := range objs {
		if !r.visited[o.ID()] {
			r.b.WriteString(r.style(styleProblem, "cycle: "))
			r.node(o, "", true)
		}
	}
	return r.b.String()
}

func (r *treeRenderer) node(o *prefab.Object, prefix string, last bool) {
	r.visited[o.ID()] = true

	branch := "├── "
	next := prefix + "│   "
	if last {
		branch = "└── "
		next = prefix + "    "
	}
	r.b.WriteString(prefix + r.style(styleBranch, branch))
	r.b.WriteString(r.label(o))
	r.b.WriteString("\n")

	children := r.doc.Children(o.ID())
	var pending []*prefab.Object
	for _, id := range children {
		if c := r.doc.Object(id); c != nil && !r.visited[id] {
			pending = append(pending, c)
		}
	}
	for i, c := range pending {
		r.node(c, next, i == len(pending)-1)
	}
}

func (r *treeRenderer) label(o *prefab.Object) string {
	name := o.Name
	if name == "" {
		name = "(unnamed)"
	}
	s := r.style(styleName, name) + " " + r.style(styleID, o.ID())
	if pid := o.ParentID(); pid != "" && !r.doc.Contains(pid) {
		s += r.style(styleWarning, fmt.Sprintf(" (parent %s missing)", pid))
	}
	if r.opts.Details {
		s += r.style(styleDetail, fmt.Sprintf(" %s/%s st=%g keys=%d/%d/%d/%d",
			o.Kind, o.Shape, o.StartTime,
			o.Position.Len(), o.Scale.Len(), o.Rotation.Len(), o.Color.Len()))
	}
	return s
}

func (r *treeRenderer) style(st lipgloss.Style, s string) string {
	if !r.opts.UseColor {
		return s
	}
	return st.Render(s)
}
