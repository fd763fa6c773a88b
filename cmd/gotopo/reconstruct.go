package main

import (
	"log/slog"

	"github.com/notargets/gotopo/coverage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Reconstruct every scenario feature and print its points, strain and scalars.",
	Long: `Build a geometry time span for every feature of the scenario, then print
each point slot at the requested times: position, topology, dilatation rate,
accumulated dilatation and any scalar coverage values.`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		model, err := loadModel()
		if err != nil {
			return err
		}
		spans, err := model.Reconstruct.ReconstructAll(cmd.Context(), model.Features, viper.GetInt("workers"))
		if err != nil {
			return err
		}
		for i, f := range model.Features {
			scalars, err := coverage.Build(model.Coverages, f, spans[i], nil)
			if err != nil {
				return err
			}
			youngest, oldest := spans[i].ValidTimes()
			slog.Debug("feature span", "feature", f.Name, "youngest", youngest, "oldest", oldest,
				"points", spans[i].NumAllPoints())
			for _, t := range model.Times {
				if err := writeSpanTable(cmd.OutOrStdout(), f.Name, spans[i], scalars, t); err != nil {
					return err
				}
			}
		}
		return nil
	},
}
