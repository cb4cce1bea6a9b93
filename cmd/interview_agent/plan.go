package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/plan"
)

var planCommand = &cobra.Command{
	Use:   "plan",
	Short: "Preview the question plan for a budget and focus",
	RunE:  runPlanCmd,
}

var (
	planQuestions int
	planFocus     int
	planDuration  int
)

func init() {
	planCommand.Flags().IntVarP(&planQuestions, "questions", "q", 10, "Total question budget")
	planCommand.Flags().IntVar(&planFocus, "technical-focus", 70, "Technical share of the budget, 0-100")
	planCommand.Flags().IntVarP(&planDuration, "duration", "d", 0, "Interview length in minutes (overrides --questions)")

	rootCmd.AddCommand(planCommand)
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	total := planQuestions
	if cmd.Flags().Changed("duration") {
		total = plan.QuestionsForDuration(planDuration)
	}
	p := plan.Build(total, planFocus)

	fmt.Printf("Plan for %d questions (%d%% technical focus):\n", p.Total(), planFocus)
	for _, e := range p.Entries {
		fmt.Printf("  %-12s %d\n", e.Category, e.Count)
	}
	return nil
}
