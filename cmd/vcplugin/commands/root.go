package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/msabale-r7/openoffice-vc-plugin/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigFilename = ".vcplugin"

var rootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "vcplugin",
	Short:             "Harvest the OpenOffice security bulletin into VC plugin content",
	DisableAutoGenTag: true,
	Long: `vcplugin ingests a vendor security bulletin, enriches every referenced CVE
from its advisory detail page and renders the validated records into the
content tree consumed by the VC plugin.

Configuration can be provided via flags, a ./.vcplugin config file or
environment variables (prefix VCPLUGIN_).`,
	Example: `  # Run the full pipeline: fetch, enrich, validate, render
  vcplugin harvest

  # Regenerate the content tree from previously harvested data
  vcplugin generate`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}

		switch level {
		case "debug":
			shared.InitLogger(slog.LevelDebug)
		case "info":
			shared.InitLogger(slog.LevelInfo)
		case "warn":
			shared.InitLogger(slog.LevelWarn)
		case "error":
			shared.InitLogger(slog.LevelError)
		default:
			shared.InitLogger(slog.LevelInfo)
		}

		return initializeConfig(cmd)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		NewHarvestCommand(),
		NewGenerateCommand(),
	)

	rootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	rootCmd.PersistentFlags().String("product", "OpenOffice", "Product name used in rendered content and directory layout")
	rootCmd.PersistentFlags().String("bulletinURL", "https://www.openoffice.org/security/bulletin.html", "URL of the security bulletin to harvest")
	rootCmd.PersistentFlags().String("userAgent", "Mozilla/5.0 (compatible; OpenOffice-VC-Plugin/1.0)", "User-Agent header sent with every request")
	rootCmd.PersistentFlags().String("dataDir", "data", "Directory for raw and parsed intermediate data")
	rootCmd.PersistentFlags().String("contentDir", "Content", "Directory the VC plugin content tree is rendered into")
	rootCmd.PersistentFlags().Int("maxAttempts", 3, "Total attempts per detail page before the CVE is skipped")
	rootCmd.PersistentFlags().Duration("requestTimeout", 15*time.Second, "Timeout for a single HTTP request")
	rootCmd.PersistentFlags().Duration("retryDelay", 2*time.Second, "Fixed delay between detail fetch attempts")
	rootCmd.PersistentFlags().Duration("politenessDelay", 500*time.Millisecond, "Pause after each successful detail fetch")
}

func initializeConfig(cmd *cobra.Command) error {
	viper.SetConfigName(defaultConfigFilename)
	viper.AddConfigPath(".")

	// a missing config file is fine, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix("VCPLUGIN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
