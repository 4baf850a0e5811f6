// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/whyideas/whyideas/internal/config"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "whyideas",
	Short: "whyideas serves the Why Ideas website and its contact API",
	Long: `whyideas serves the Why Ideas single page website, stores contact
submissions through a JSON API and relays the page contact form by email.`,
	Args:         cobra.OnlyValidArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error

		cfg, err = config.ReadConfig(configPath)

		return err
	},
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
