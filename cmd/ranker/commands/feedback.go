package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/services"
)

func NewFeedbackCmd() *cobra.Command {
	var (
		resumePath string
		jdPath     string
	)

	cmd := &cobra.Command{
		Use:   "feedback --resume <resume.pdf> --jd <job.pdf>",
		Short: "Ask the language model how to improve a resume",
		Long: `Extract both documents and ask the configured generation backend for
actionable feedback on the resume. Backend failures are printed as
"LLM Error: ..." rather than failing the command.

Examples:
  ranker feedback --resume alice.pdf --jd job.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(cmd, resumePath, jdPath)
		},
	}

	cmd.Flags().StringVar(&resumePath, "resume", "", "Resume PDF")
	cmd.Flags().StringVar(&jdPath, "jd", "", "Job description PDF")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")

	return cmd
}

func runFeedback(cmd *cobra.Command, resumePath, jdPath string) error {
	cfg := config.Load()
	parser := services.NewPDFParserService()

	resumeText, err := parser.ExtractText(resumePath)
	if err != nil {
		return err
	}
	jdText, err := parser.ExtractText(jdPath)
	if err != nil {
		return err
	}

	generator, err := services.NewTextGenerator(cfg)
	if err != nil {
		return fmt.Errorf("initializing feedback backend: %w", err)
	}

	feedback := services.NewFeedbackService(generator, nil, cfg.Feedback.Timeout).
		GenerateFeedback(cmd.Context(), resumeText, jdText)

	fmt.Fprintln(cmd.OutOrStdout(), feedback)
	return nil
}
