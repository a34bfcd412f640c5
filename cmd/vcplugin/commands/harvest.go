package commands

import (
	"log/slog"

	"github.com/msabale-r7/openoffice-vc-plugin/advisory"
	"github.com/msabale-r7/openoffice-vc-plugin/cmd/vcplugin/config"
	"github.com/msabale-r7/openoffice-vc-plugin/content"
	"github.com/spf13/cobra"
)

func NewHarvestCommand() *cobra.Command {
	harvestCmd := cobra.Command{
		Use:   "harvest",
		Short: "Fetch the security bulletin and render the full content tree",
		Long: `Fetches the security bulletin, parses every referenced CVE, enriches each
one from its advisory detail page and renders the validated records into
the VC plugin content tree. Individual CVE failures are logged and
skipped; only an unreachable bulletin fails the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ParseConfig()
			if err != nil {
				return err
			}

			harvester := advisory.NewHarvester(
				advisory.NewBulletinService(cfg.BulletinURL, cfg.UserAgent, cfg.RequestTimeout),
				advisory.NewDetailService(advisory.DetailOptions{
					UserAgent:       cfg.UserAgent,
					MaxAttempts:     cfg.MaxAttempts,
					RequestTimeout:  cfg.RequestTimeout,
					RetryDelay:      cfg.RetryDelay,
					PolitenessDelay: cfg.PolitenessDelay,
				}),
				advisory.NewStore(cfg.DataDir, cfg.Product),
				content.NewGenerator(cfg.Product, cfg.ContentDir),
			)

			summary, err := harvester.Run(cmd.Context())
			if err != nil {
				return err
			}

			slog.Info("harvest completed",
				"parsed", summary.Parsed,
				"rendered", summary.Rendered,
				"failed", summary.Failed,
				"totalCVEs", summary.TotalCVEs,
			)
			return nil
		},
	}

	return &harvestCmd
}
