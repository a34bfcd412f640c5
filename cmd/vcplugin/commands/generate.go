package commands

import (
	"log/slog"

	"github.com/msabale-r7/openoffice-vc-plugin/advisory"
	"github.com/msabale-r7/openoffice-vc-plugin/cmd/vcplugin/config"
	"github.com/msabale-r7/openoffice-vc-plugin/content"
	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/spf13/cobra"
)

func NewGenerateCommand() *cobra.Command {
	generateCmd := cobra.Command{
		Use:   "generate",
		Short: "Regenerate the content tree from previously harvested data",
		Long: `Re-reads the persisted CVE records under the data directory and renders
the VC plugin content tree from them without touching the network.
Malformed or invalid records are logged and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ParseConfig()
			if err != nil {
				return err
			}

			store := advisory.NewStore(cfg.DataDir, cfg.Product)
			generator := content.NewGenerator(cfg.Product, cfg.ContentDir)

			paths, err := store.ListCVEFiles()
			if err != nil {
				return err
			}
			slog.Info("regenerating content from persisted records", "count", len(paths))

			validated := make([]advisory.CVE, 0, len(paths))
			for _, path := range paths {
				record, err := store.LoadCVE(path)
				if err != nil {
					slog.Error("skipping malformed record document", "path", path, "err", err)
					continue
				}

				if err := advisory.ValidateCVE(&record); err != nil {
					slog.Error("skipping invalid record", "path", path, "err", err)
					continue
				}

				if err := generator.GenerateCVEContent(record); err != nil {
					slog.Error("could not render record content", "cve", record.CVEID, "err", err)
					continue
				}
				validated = append(validated, record)
			}

			unique := utils.DeduplicateSlice(validated, func(record advisory.CVE) string { return record.CVEID })
			if err := generator.GenerateProductContent(len(unique)); err != nil {
				return err
			}

			slog.Info("content generation completed", "rendered", len(validated), "totalCVEs", len(unique))
			return nil
		},
	}

	return &generateCmd
}
