package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a recipe or prefab file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	rep := prefab.Validate(doc, e.validateOptions()...)
	printer.ValidateResult(doc.Name, doc.Len(), rep)
	if !rep.OK() {
		return fmt.Errorf("validation failed with %d error(s)", len(rep.Errors))
	}
	return nil
}
