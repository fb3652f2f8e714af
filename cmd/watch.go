package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/prefab/internal/recipe"
	"github.com/papapumpkin/prefab/internal/ui"
	"github.com/papapumpkin/prefab/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Rebuild recipes in a directory whenever they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "output directory (default out_dir)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	dir := args[0]
	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = e.cfg.OutDir
	}
	printer := ui.New()

	// Build everything once so outputs match the recipes on disk.
	entries, err := os.ReadDir(dir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	var srcs []string
	for _, entry := range entries {
		if !entry.IsDir() && recipe.IsRecipe(entry.Name()) {
			srcs = append(srcs, filepath.Join(dir, entry.Name()))
		}
	}
	// Failures are already reported.
	_ = e.buildAll(printer, srcs, outDir)

	w, err := watch.NewWatcher(dir)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	printer.Watching(dir, outDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			e.log.Debug("recipe changed", "file", change.File, "kind", change.Kind.String())
			if change.Kind == watch.ChangeRemoved {
				printer.Removed(change.File)
				continue
			}
			// Failures are already reported; keep watching.
			_ = e.build(printer, change.File, outputPath(outDir, change.File))
		}
	}
}
