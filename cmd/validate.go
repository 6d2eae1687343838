package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridsim/meritsim/config"
	"github.com/gridsim/meritsim/core/simulation"
	"github.com/gridsim/meritsim/infra/loader"
	"github.com/gridsim/meritsim/infra/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check input alignment without simulating",
	RunE:  validate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sc, err := loader.Load(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}
	rc, err := simulation.NewRunContext(*sc)
	if err != nil {
		return err
	}

	logger.New("validate").Infof("inputs aligned: %d hours, %d thermal units, %.0f MW thermal capacity",
		rc.HourCount(), rc.Stack.Len(), rc.Stack.TotalCapacityMW())
	return nil
}
