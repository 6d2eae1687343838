package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridsim/meritsim/app"
	"github.com/gridsim/meritsim/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "meritsim",
	Short: "Merit-order electricity market simulator",
	Long: "meritsim clears an hourly electricity market: renewables are\n" +
		"dispatched first at zero marginal cost and the residual demand is met\n" +
		"by gas units in merit order. The root command runs one batch\n" +
		"simulation and writes the hourly report.",
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}
