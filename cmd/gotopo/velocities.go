package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/notargets/gotopo/reconstruct"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var velocitiesCmd = &cobra.Command{
	Use:     "velocities",
	Short:   "Print point velocities of every scenario feature.",
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		delta := viper.GetFloat64("delta")
		if delta <= 0 {
			return fmt.Errorf("delta must be positive, got %g", delta)
		}
		deltaType, err := reconstruct.ParseDeltaTimeType(viper.GetString("delta-type"))
		if err != nil {
			return err
		}
		model, err := loadModel()
		if err != nil {
			return err
		}
		spans, err := model.Reconstruct.ReconstructAll(cmd.Context(), model.Features, viper.GetInt("workers"))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, f := range model.Features {
			for _, t := range model.Times {
				v, ok := spans[i].Velocities(t, delta, deltaType)
				if !ok {
					if _, err := fmt.Fprintf(out, "\n%s at %g Ma: %s\n", f.Name, t,
						color.New(color.FgRed).Sprint("not valid")); err != nil {
						return err
					}
					continue
				}
				if err := writeVelocityTable(out, f.Name, v, t); err != nil {
					return err
				}
			}
		}
		return nil
	},
}
