package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/engine"
	"github.com/jonathan/interview-coach/internal/session"
)

var interviewCommand = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview in the terminal",
	Long: `Starts a mock interview session and walks through the question plan
one question at a time, reading answers from stdin, scoring each answer and
printing the final summary. An empty answer skips the question; 'quit'
cancels the interview.`,
	RunE: runInterviewCmd,
}

var (
	interviewConfigPath string
	interviewResume     string
	interviewJob        string
	interviewJobURL     string
	interviewQuestions  int
	interviewFocus      int
	interviewDuration   int
	interviewExportPath string
)

func init() {
	interviewCommand.Flags().StringVar(&interviewConfigPath, "config", "", "Path to config.json file")
	interviewCommand.Flags().StringVarP(&interviewResume, "resume", "r", "", "Path to resume text file")
	interviewCommand.Flags().StringVarP(&interviewJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	interviewCommand.Flags().StringVar(&interviewJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	interviewCommand.Flags().IntVarP(&interviewQuestions, "questions", "q", 0, "Total question budget")
	interviewCommand.Flags().IntVar(&interviewFocus, "technical-focus", 0, "Technical share of the budget, 0-100")
	interviewCommand.Flags().IntVarP(&interviewDuration, "duration", "d", 0, "Interview length in minutes (derives the question budget)")
	interviewCommand.Flags().StringVar(&interviewExportPath, "export", "", "Write the session transcript to this file when done")

	rootCmd.AddCommand(interviewCommand)
}

func runInterviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(interviewConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = interviewResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = interviewJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = interviewJobURL
	}
	if cmd.Flags().Changed("questions") {
		cfg.TotalQuestions = interviewQuestions
	}
	if cmd.Flags().Changed("technical-focus") {
		cfg.TechnicalFocusPct = interviewFocus
	}
	if cmd.Flags().Changed("duration") {
		cfg.DurationMinutes = interviewDuration
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	eng, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	resume, job, err := loadInputs(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := eng.StartSession(ctx, engine.StartRequest{
		ResumeText:        resume,
		JobText:           job,
		TotalQuestions:    cfg.TotalQuestions,
		TechnicalFocusPct: cfg.TechnicalFocusPct,
		DurationMinutes:   cfg.DurationMinutes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Interview session %s\n", result.SessionID)
	fmt.Printf("Questions planned: %d", result.Plan.Total())
	for _, e := range result.Plan.Entries {
		fmt.Printf("  %s=%d", e.Category, e.Count)
	}
	fmt.Printf("\nRequired skill match: %.1f%%\n\n", result.Report.RequiredMatchPct)

	reader := bufio.NewReader(os.Stdin)
	asked := 0
	for {
		q, err := eng.NextQuestion(ctx, result.SessionID)
		if err != nil {
			return err
		}
		if q == nil {
			break
		}
		asked++

		fmt.Printf("[%d/%d] (%s) %s\n", asked, result.Plan.Total(), q.Category, q.Text)
		fmt.Print("> ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			// Stdin closed: treat the rest of the interview as skipped.
			break
		}
		answer = strings.TrimSpace(answer)

		if strings.EqualFold(answer, "quit") {
			if err := eng.CancelSession(ctx, result.SessionID, "canceled from terminal"); err != nil {
				return err
			}
			fmt.Println("Interview canceled.")
			return nil
		}
		if answer == "" {
			fmt.Println("(skipped)")
			continue
		}

		if err := eng.SubmitAnswer(ctx, result.SessionID, q.ID, answer, nil); err != nil {
			return err
		}
		eval, err := eng.SubmitEvaluation(ctx, result.SessionID, q.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Score: %.1f/10", eval.Score)
		if eval.Feedback != "" {
			fmt.Printf("  %s", eval.Feedback)
		}
		fmt.Print("\n\n")
	}

	summary, err := eng.FinishSession(ctx, result.SessionID)
	if err != nil {
		return err
	}

	fmt.Printf("\nInterview complete: %d asked, %d answered, %d evaluated\n",
		summary.QuestionsAsked, summary.Answered, summary.Evaluated)
	if summary.OverallScore != nil {
		fmt.Printf("Overall score: %.1f/10 (technical %.1f, communication %.1f)\n",
			*summary.OverallScore, summary.TechnicalScore, summary.CommunicationScore)
	}

	if interviewExportPath != "" {
		data, err := eng.Export(ctx, result.SessionID, session.FormatText)
		if err != nil {
			return err
		}
		if err := os.WriteFile(interviewExportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Transcript written to %s\n", interviewExportPath)
	}
	return nil
}
