package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a prefab's object hierarchy and validation report",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolP("details", "d", false, "show shape, start time and keyframe counts")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	printer := ui.New()
	doc, err := e.loadDocument(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	details, _ := cmd.Flags().GetBool("details")
	opts := ui.TreeOptions{
		UseColor: isatty.IsTerminal(os.Stdout.Fd()),
		Details:  details,
	}
	ui.NewTo(cmd.OutOrStdout()).Tree(ui.RenderTree(doc, opts))

	// Inspection reports problems without failing.
	printer.ValidateResult(doc.Name, doc.Len(), prefab.Validate(doc, e.validateOptions()...))
	return nil
}
