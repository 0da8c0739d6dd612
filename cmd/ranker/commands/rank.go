package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/services"
)

func NewRankCmd() *cobra.Command {
	var (
		jdPath string
		format string
	)

	cmd := &cobra.Command{
		Use:   "rank --jd <job.pdf> <resume.pdf>...",
		Short: "Rank resume PDFs against a job description",
		Long: `Rank every given resume PDF against one job description PDF.
Lower scores are closer matches.

Examples:
  ranker rank --jd job.pdf alice.pdf bob.pdf
  ranker rank --jd job.pdf --format json resumes/*.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q: want text or json", format)
			}
			return runRank(cmd, jdPath, args, format)
		},
	}

	cmd.Flags().StringVar(&jdPath, "jd", "", "Job description PDF")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("jd")

	return cmd
}

func runRank(cmd *cobra.Command, jdPath string, resumePaths []string, format string) error {
	cfg := config.Load()

	jd, err := readUpload(jdPath)
	if err != nil {
		return err
	}
	resumes := make([]services.Upload, 0, len(resumePaths))
	for _, path := range resumePaths {
		upload, err := readUpload(path)
		if err != nil {
			return err
		}
		resumes = append(resumes, upload)
	}

	provider, err := newEmbeddingProvider(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedding provider: %w", err)
	}
	embedder, err := services.NewEmbeddingService(provider, cfg.Embedding.Dimension, cfg.Embedding.CacheSize)
	if err != nil {
		return fmt.Errorf("initializing embedding service: %w", err)
	}
	defer embedder.Close()

	parser := services.NewPDFParserService()
	worker := services.NewWorker(parser, embedder, cfg.Worker.Concurrency)
	ranker := services.NewRankerService(parser, embedder, worker, nil, nil, nil, cfg.Ranking.TopK)

	resp, err := ranker.RankBatch(cmd.Context(), jd, resumes)
	if err != nil {
		return fmt.Errorf("ranking resumes: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if len(resp.RankedResumes) == 0 {
		fmt.Fprintln(out, "No resumes to rank.")
		return nil
	}
	fmt.Fprintln(out, services.FormatRanking(resp.RankedResumes))
	return nil
}

func readUpload(path string) (services.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Upload{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return services.Upload{Filename: filepath.Base(path), Data: data}, nil
}
