package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/engine"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Analyze how a resume matches a job posting",
	Long: `Normalizes the resume and job description, compares skill sets and
prints the match report: matching and missing skills, the required-skill
match percentage and a narrative assessment.`,
	RunE: runMatchCmd,
}

var (
	matchConfigPath string
	matchResume     string
	matchJob        string
	matchJobURL     string
	matchAsJSON     bool
)

func init() {
	matchCommand.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file")
	matchCommand.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume text file")
	matchCommand.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	matchCommand.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	matchCommand.Flags().BoolVar(&matchAsJSON, "json", false, "Print the full report as JSON")

	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(matchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = matchResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = matchJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = matchJobURL
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

	result, err := eng.BuildMatchReport(ctx, resume, job)
	if err != nil {
		return err
	}

	if matchAsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printMatchReport(result)
	return nil
}

func printMatchReport(result *engine.MatchResult) {
	report := result.Report
	fmt.Printf("Role: %s\n", result.Requirement.Title)
	fmt.Printf("Required skill match: %.1f%%\n\n", report.RequiredMatchPct)

	printSkillLine := func(label string, skills []string) {
		if len(skills) == 0 {
			return
		}
		fmt.Printf("%s: %s\n", label, strings.Join(skills, ", "))
	}
	printSkillLine("Matching required", report.MatchingRequired)
	printSkillLine("Missing required", report.MissingRequired)
	printSkillLine("Matching preferred", report.MatchingPreferred)
	printSkillLine("Missing preferred", report.MissingPreferred)
	printSkillLine("Additional skills", report.AdditionalSkills)

	fmt.Printf("\nAssessment score: %d/10\n", report.Narrative.Score)
	printList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("%s:\n", label)
		for _, item := range items {
			fmt.Printf("  - %s\n", item)
		}
	}
	printList("Strengths", report.Narrative.Strengths)
	printList("Development areas", report.Narrative.DevelopmentAreas)
	printList("Focus areas", report.Narrative.FocusAreas)
}
