package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/typebridge/typebridge/logger"
	"github.com/typebridge/typebridge/pipeline"
)

// WatchCmd keeps the declaration file in sync with the input modules.
var WatchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Regenerate the declaration file on input changes",
	Long: `Watch the given root for parser interchange file changes and rebuild the
combined declaration file after each change, debounced. Runs until
interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		runner := pipeline.NewRunner(cfg, logger.Logger)
		engine, err := pipeline.NewWatchEngine(runner, root, logger.Logger)
		if err != nil {
			return err
		}
		if err := engine.Start(); err != nil {
			return err
		}
		defer engine.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}
