package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set by the linker at release time
var (
	version = "dev"
	commit  = "none"
)

const (
	defaultWorkers   = 4
	defaultDelta     = 1.0
	defaultDeltaType = "centred"
	defaultLogLevel  = "info"
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:           "gotopo",
	Short:         "Reconstruct features through plate topologies.",
	Long:          `gotopo carries points, lines and polygons back and forward in time through rigid plates and deforming networks, tracking strain and crustal scalars.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(reconstructCmd)
	rootCmd.AddCommand(velocitiesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("scenario", "", "Path to the scenario YAML file")
	rootCmd.PersistentFlags().StringSlice("times", nil, "Reconstruction times in Ma (default: scenario times)")
	rootCmd.PersistentFlags().Int("workers", defaultWorkers, "Number of concurrent reconstruction workers")
	rootCmd.PersistentFlags().Bool("natural-neighbour", false, "Interpolate network velocities by natural neighbours")
	rootCmd.PersistentFlags().Bool("color", true, "Colour active and consumed labels")
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("binding root flags: %v", err))
	}

	velocitiesCmd.Flags().Float64("delta", defaultDelta, "Velocity time interval in My")
	velocitiesCmd.Flags().String("delta-type", defaultDeltaType, "Interval placement: plus-to-t, t-to-minus or centred")
	if err := viper.BindPFlags(velocitiesCmd.Flags()); err != nil {
		panic(fmt.Sprintf("binding velocities flags: %v", err))
	}
}

// initConfig reads the config file and GOTOPO_ environment variables
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gotopo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GOTOPO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("workers", defaultWorkers)
	viper.SetDefault("delta", defaultDelta)
	viper.SetDefault("delta-type", defaultDeltaType)
	viper.SetDefault("log-level", defaultLogLevel)
	viper.SetDefault("color", true)
}

// sharedSetup loads the config file, then installs the logger and colour mode
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	logger, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	color.NoColor = color.NoColor || !viper.GetBool("color")
	return nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadModel reads the scenario named by --scenario and resolves it
func loadModel() (*Model, error) {
	path := viper.GetString("scenario")
	if path == "" {
		return nil, fmt.Errorf("no scenario given, use --scenario")
	}
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	model, err := scenario.Build(slog.Default(), viper.GetBool("natural-neighbour"))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if times := viper.GetStringSlice("times"); len(times) > 0 {
		if model.Times, err = parseTimes(times); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func parseTimes(values []string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		t, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("time %q: %w", v, err)
		}
		out[i] = t
	}
	return out, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}
