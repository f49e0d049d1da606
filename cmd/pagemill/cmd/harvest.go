package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagemill/pagemill/internal/archive"
	"github.com/pagemill/pagemill/internal/harvest"
	"github.com/pagemill/pagemill/internal/progress"
	"github.com/pagemill/pagemill/internal/server"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Process archive.org identifiers end to end",
	Long: `Harvest walks an identifiers file, downloads each identifier's eligible
PDFs from archive.org, splits them into page chunks, runs the configured
layout-detection command on each chunk, and extracts the resulting region
images into per-document page files.

Progress is recorded back into the identifiers file, so an interrupted run
resumes where it left off.`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringP("identifiers", "i", "identifiers.txt", "identifiers file (one archive.org identifier per line)")
	harvestCmd.Flags().StringP("output", "o", "", "root directory for extracted documents (required)")
	harvestCmd.Flags().String("work-dir", "shelves", "scratch directory for downloads and chunks")
	harvestCmd.Flags().String("layout-command", "", "layout-detection command, invoked as <cmd> <chunk.pdf> <regions-dir> (required)")
	harvestCmd.Flags().Int("chunk-size", 10, "pages per chunk")
	harvestCmd.Flags().Int("max-pages", 16, "process at most this many pages per document (0 disables the cap)")
	harvestCmd.Flags().Bool("compress", false, "zip each finished document directory")
	harvestCmd.Flags().String("status-addr", "", "address for the status server (empty disables it)")

	_ = harvestCmd.MarkFlagRequired("output")
	_ = harvestCmd.MarkFlagRequired("layout-command")

	harvestCmd.PreRun = func(cmd *cobra.Command, args []string) {
		_ = viper.BindPFlag("harvest.identifiers_file", cmd.Flags().Lookup("identifiers"))
		_ = viper.BindPFlag("harvest.output_dir", cmd.Flags().Lookup("output"))
		_ = viper.BindPFlag("harvest.work_dir", cmd.Flags().Lookup("work-dir"))
		_ = viper.BindPFlag("harvest.layout_command", cmd.Flags().Lookup("layout-command"))
		_ = viper.BindPFlag("harvest.chunk_size", cmd.Flags().Lookup("chunk-size"))
		_ = viper.BindPFlag("harvest.max_pages", cmd.Flags().Lookup("max-pages"))
		_ = viper.BindPFlag("harvest.compress", cmd.Flags().Lookup("compress"))
		_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("status-addr"))
	}
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, err := buildRecognizer(ctx, cfg.OCR)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rec.Close(); cerr != nil {
			slog.Warn("closing recognizer", "error", cerr)
		}
	}()

	tracker := progress.NewTracker()
	cb := progress.NewMulti(progress.NewLogCallback(slog.Default(), 50), tracker)

	if cfg.Server.Addr != "" {
		srv := server.New(cfg.Server.Addr, tracker)
		go func() {
			if serr := srv.Start(ctx); serr != nil {
				slog.Error("status server stopped", "error", serr)
			}
		}()
	}

	runner := &harvest.Runner{
		Client:   archive.NewClient(),
		Rec:      rec,
		Cfg:      cfg.Harvest,
		OCRCfg:   cfg.OCR,
		Progress: cb,
	}
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}
	return nil
}
