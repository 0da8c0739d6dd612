// Package commands implements the ranker command line tool. It runs the same
// extraction, embedding and ranking pipeline as the HTTP server against local
// files.
package commands

import (
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/services"
)

// newEmbeddingProvider is replaced in tests.
var newEmbeddingProvider = services.NewEmbeddingProvider

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranker",
		Short: "Rank resumes against a job description",
		Long: `Rank resumes against a job description by embedding similarity and
ask a local language model for resume feedback.

Configuration is read from .env and the environment, the same variables the
API server uses (EMBEDDING_PROVIDER, OLLAMA_URL, FEEDBACK_URL, ...).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRankCmd())
	cmd.AddCommand(NewFeedbackCmd())

	return cmd
}
