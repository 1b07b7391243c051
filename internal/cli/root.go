// Package cli provides the command-line interface for pigment.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/config"
	"github.com/jmylchreest/pigment/internal/version"
)

// app carries state shared by every command of one root command instance.
type app struct {
	configPath string
	envFile    string
	verbose    bool
	quiet      bool

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the pigment command tree. Each call returns an
// independent tree, so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: hclog.NewNullLogger(),
	}

	root := &cobra.Command{
		Use:   "pigment",
		Short: "A colour palette generator",
		Long: `pigment generates harmonious colour palettes from harmony rules, themed
recipes and randomized strategies, and extracts representative palettes
from images.

Generated palettes avoid near-duplicate colours, are rescued when washed
out or flat, and avoid repeating recent output within a session.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file with engine thresholds")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file with "+config.EnvPrefix+"* overrides")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newGenerateCmd(a),
		newExtractCmd(a),
		newSortCmd(a),
		newConvertCmd(a),
		newModesCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup builds the logger and loads configuration before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.Warn
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "pigment",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "config", a.configPath, "env_file", a.envFile)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
