package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// allowedGlobals lists package-level vars that are global on purpose
// but don't match the detection heuristics.
var allowedGlobals = map[string][]string{
	// prefab: lookup tables built once from constant data.
	"prefab": {"idAlphabet", "easingByName"},
}

// allowedGlobalPrefixes treats every var with one of these prefixes as
// constant-like.
var allowedGlobalPrefixes = map[string][]string{
	// ui: lipgloss styles and colors are immutable after init.
	"ui": {"style", "color"},
}

// packageVars parses pkgDir and returns its package-level var specs.
func packageVars(t *testing.T, pkgDir string) map[string][]*ast.ValueSpec {
	t.Helper()

	out := make(map[string][]*ast.ValueSpec)
	fset := token.NewFileSet()
	for _, f := range goFilesIn(t, pkgDir) {
		node, err := parser.ParseFile(fset, f, nil, 0)
		if err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}
		for _, decl := range node.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.VAR {
				continue
			}
			for _, spec := range gd.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					out[filepath.Base(f)] = append(out[filepath.Base(f)], vs)
				}
			}
		}
	}
	return out
}

// TestNoMutableGlobalState flags package-level vars other than error
// sentinels, literals, composite lookup tables, sync primitives and
// allowlisted names. State belongs in values the caller owns.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		pkg := pkg
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			allowed := make(map[string]bool)
			for _, n := range allowedGlobals[pkg] {
				allowed[n] = true
			}
			for file, specs := range packageVars(t, filepath.Join(dir, pkg)) {
				for _, vs := range specs {
					for i, name := range vs.Names {
						var val ast.Expr
						if i < len(vs.Values) {
							val = vs.Values[i]
						}
						if name.Name == "_" || allowed[name.Name] ||
							hasAllowedPrefix(name.Name, allowedGlobalPrefixes[pkg]) ||
							constantLike(vs.Type, val) {
							continue
						}
						t.Errorf("mutable global state in %s: var %s; inject it instead", file, name.Name)
					}
				}
			}
		})
	}
}

func hasAllowedPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// constantLike reports whether a var declaration is an error sentinel,
// a basic or composite literal, or a sync/atomic primitive.
func constantLike(typ, val ast.Expr) bool {
	if sel, ok := typ.(*ast.SelectorExpr); ok {
		if x, ok := sel.X.(*ast.Ident); ok && (x.Name == "sync" || x.Name == "atomic") {
			return true
		}
	}
	if ident, ok := typ.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}
	switch v := val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		sel, ok := v.Fun.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		x, ok := sel.X.(*ast.Ident)
		return ok && ((x.Name == "errors" && sel.Sel.Name == "New") ||
			(x.Name == "fmt" && sel.Sel.Name == "Errorf"))
	}
	return false
}

// TestAllowedGlobalsAreUsed catches stale allowlist entries.
func TestAllowedGlobalsAreUsed(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for pkg, names := range allowedGlobals {
		declared := make(map[string]bool)
		for _, specs := range packageVars(t, filepath.Join(dir, pkg)) {
			for _, vs := range specs {
				for _, n := range vs.Names {
					declared[n.Name] = true
				}
			}
		}
		for _, name := range names {
			if !declared[name] {
				t.Errorf("allowedGlobals[%q] contains %q but no such var exists", pkg, name)
			}
		}
	}
}

func TestConstantLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want bool
	}{
		{`package p; import "errors"; var ErrX = errors.New("x")`, true},
		{`package p; var names = []string{"a"}`, true},
		{`package p; var n = 3`, true},
		{`package p; import "sync"; var mu sync.Mutex`, true},
		{`package p; var cache = make(map[string]int)`, false},
		{`package p; import "os"; var out = os.Stderr`, false},
	}
	for _, tt := range tests {
		node, err := parser.ParseFile(token.NewFileSet(), "p.go", tt.src, 0)
		if err != nil {
			t.Fatalf("parsing %q: %v", tt.src, err)
		}
		gd := node.Decls[len(node.Decls)-1].(*ast.GenDecl)
		vs := gd.Specs[0].(*ast.ValueSpec)
		var val ast.Expr
		if len(vs.Values) > 0 {
			val = vs.Values[0]
		}
		if got := constantLike(vs.Type, val); got != tt.want {
			t.Errorf("constantLike(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
