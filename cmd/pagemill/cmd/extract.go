package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/progress"
	"github.com/pagemill/pagemill/internal/server"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Recognize a region directory and write one HTML file per page",
	Long: `Extract scans a directory of layout-detected region images, recognizes
every text-bearing region through the worker pool, rebuilds table grids from
their cell regions, and writes each reconstructed page to <output>/<page>.html.

The chunk index and chunk size map the region filenames' chunk-local page
indexes back to absolute page numbers.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("regions", "r", "", "directory of region images (required)")
	extractCmd.Flags().StringP("output", "o", "", "directory for page HTML files (required)")
	extractCmd.Flags().Int("chunk-index", 1, "1-based index of this chunk within the document")
	extractCmd.Flags().Int("chunk-size", 10, "pages per chunk")
	extractCmd.Flags().Int("workers", 50, "recognition worker pool size")
	extractCmd.Flags().Int("attempts", 25, "recognition attempts per region before giving up")
	extractCmd.Flags().String("engine", "tesseract", "recognition engine (tesseract, gemini)")
	extractCmd.Flags().String("language", "eng", "tesseract language")
	extractCmd.Flags().String("status-addr", "", "address for the status server (empty disables it)")

	_ = extractCmd.MarkFlagRequired("regions")
	_ = extractCmd.MarkFlagRequired("output")

	// Bound at PreRun so shared keys (server.addr, ocr.*) follow whichever
	// command actually runs.
	extractCmd.PreRun = func(cmd *cobra.Command, args []string) {
		_ = viper.BindPFlag("extract.regions_dir", cmd.Flags().Lookup("regions"))
		_ = viper.BindPFlag("extract.output_dir", cmd.Flags().Lookup("output"))
		_ = viper.BindPFlag("extract.chunk_index", cmd.Flags().Lookup("chunk-index"))
		_ = viper.BindPFlag("extract.chunk_size", cmd.Flags().Lookup("chunk-size"))
		_ = viper.BindPFlag("ocr.workers", cmd.Flags().Lookup("workers"))
		_ = viper.BindPFlag("ocr.attempts", cmd.Flags().Lookup("attempts"))
		_ = viper.BindPFlag("ocr.engine", cmd.Flags().Lookup("engine"))
		_ = viper.BindPFlag("ocr.language", cmd.Flags().Lookup("language"))
		_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("status-addr"))
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	err = pipeline.Run(ctx, rec, pipeline.Options{
		RegionsDir: cfg.Extract.RegionsDir,
		OutputDir:  cfg.Extract.OutputDir,
		ChunkIndex: cfg.Extract.ChunkIndex,
		ChunkSize:  cfg.Extract.ChunkSize,
		Workers:    cfg.OCR.Workers,
		Attempts:   cfg.OCR.Attempts,
		Progress:   cb,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return nil
}
