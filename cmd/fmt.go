package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/prefab/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.lsp>",
	Short: "Rewrite a prefab file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write result to the source file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	printer := ui.New()
	path := args[0]
	orig, err := os.ReadFile(path)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	doc, err := e.codec.Decode(string(orig))
	if err != nil {
		printer.Error(fmt.Sprintf("%s: %v", path, err))
		return err
	}
	text, err := e.codec.Encode(doc)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	if write, _ := cmd.Flags().GetBool("write"); !write {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	changed := text != string(orig)
	if changed {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	printer.Formatted(path, changed)
	return nil
}
