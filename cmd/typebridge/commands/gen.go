package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typebridge/typebridge/config"
	"github.com/typebridge/typebridge/display"
	"github.com/typebridge/typebridge/errors"
	"github.com/typebridge/typebridge/logger"
	"github.com/typebridge/typebridge/pipeline"
	"github.com/typebridge/typebridge/translate"
)

var genOutput string

// GenCmd translates every discovered module once and writes the combined
// declaration file.
var GenCmd = &cobra.Command{
	Use:   "gen [root]",
	Short: "Translate modules and write the declaration file",
	Long: `Discover parser interchange files (*.ast.json) under the given root,
translate each module, and write one combined TypeScript declaration file.

Modules with fatal statements are reported and excluded from the output;
the command exits non-zero if any module failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if genOutput != "" {
			cfg.Output.Path = genOutput
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		runner := pipeline.NewRunner(cfg, logger.Logger)
		if err := runner.Build(cmd.Context(), root); err != nil {
			reportStatementErrors(cmd, err)
			return err
		}
		return nil
	},
}

func init() {
	GenCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output declaration file (default from config)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// moduleFailure is the JSON shape of one failed module.
type moduleFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// reportStatementErrors prints statement context for each failed module so
// the offending input (or the translator's coverage) can be patched. Colored
// terminal output by default, a failure list when JSON was requested.
func reportStatementErrors(cmd *cobra.Command, err error) {
	var batchErr *pipeline.BatchError
	if !errors.As(err, &batchErr) {
		return
	}

	if display.ShouldOutputJSON(cmd) {
		var failures []moduleFailure
		for i := range batchErr.Results {
			if batchErr.Results[i].Failed() {
				failures = append(failures, moduleFailure{
					Path:  batchErr.Results[i].Path,
					Error: batchErr.Results[i].Err.Error(),
				})
			}
		}
		_ = display.OutputJSON(failures)
		return
	}

	for i := range batchErr.Results {
		result := &batchErr.Results[i]
		if !result.Failed() {
			continue
		}
		var stmtErr *translate.StatementError
		if errors.As(result.Err, &stmtErr) {
			fmt.Fprintln(os.Stderr, stmtErr.FormatTerminal())
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", result.Path, result.Err)
		}
	}
}
