package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/prefab/internal/codec"
	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build <recipe>...",
	Short: "Build prefab files from TOML or YAML recipes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output file for a single recipe (default <out_dir>/<recipe>.lsp)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	out, _ := cmd.Flags().GetString("output")
	if out != "" {
		if len(args) > 1 {
			return errors.New("--output needs exactly one recipe")
		}
		return e.build(ui.New(), args[0], out)
	}
	return e.buildAll(ui.New(), args, e.cfg.OutDir)
}

// buildAll builds each recipe into outDir concurrently. Every recipe is
// attempted; the first failure is returned.
func (e *env) buildAll(printer *ui.Printer, srcs []string, outDir string) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, src := range srcs {
		src := src
		g.Go(func() error {
			return e.build(printer, src, outputPath(outDir, src))
		})
	}
	return g.Wait()
}

// build loads, validates, encodes and writes one recipe.
func (e *env) build(printer *ui.Printer, src, out string) error {
	doc, err := e.loadDocument(src)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	rep := prefab.Validate(doc, e.validateOptions()...)
	if !rep.OK() || len(rep.Warnings) > 0 {
		printer.ValidateResult(doc.Name, doc.Len(), rep)
	}
	if !rep.OK() {
		return fmt.Errorf("validation failed with %d error(s)", len(rep.Errors))
	}

	if err := e.codec.WriteFile(out, doc); err != nil {
		printer.Error(err.Error())
		return err
	}
	e.log.Info("built prefab", "recipe", src, "output", out, "objects", doc.Len())
	printer.BuildDone(doc.Name, out, doc.Len())
	return nil
}

// outputPath names the .lsp file a recipe builds into.
func outputPath(dir, src string) string {
	base := filepath.Base(src)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+codec.Ext)
}
