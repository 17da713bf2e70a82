package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typebridge/typebridge/cmd/typebridge/commands"
	"github.com/typebridge/typebridge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "typebridge",
	Short: "typebridge - translate annotated JavaScript into TypeScript declarations",
	Long: `typebridge translates legacy comment-annotated JavaScript modules into
TypeScript ambient declaration files.

The input is the parser interchange format (*.ast.json): one document per
source file, produced by the external JavaScript parser. typebridge resolves
each module's annotated declarations into a namespace model and renders a
combined .d.ts file.

Available commands:
  gen     - Translate modules once and write the declaration file
  watch   - Regenerate the declaration file on input changes
  version - Show version information

Examples:
  typebridge gen ./build/ast          # Translate every module under ./build/ast
  typebridge gen -o goog.d.ts ./ast   # Write output to goog.d.ts
  typebridge watch ./build/ast        # Rebuild on change`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Log as JSON instead of console output")
	rootCmd.PersistentFlags().String("config", "", "Path to typebridge.toml (default: search working directory)")

	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
