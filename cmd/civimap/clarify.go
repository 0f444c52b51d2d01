package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karaleary/civimap/internal/resolver"
)

var (
	clarifyDict string
	clarifyJSON bool
)

var clarifyCmd = &cobra.Command{
	Use:   "clarify PRIORITY",
	Short: "Show candidate terms and topic suggestions for one priority",
	Args:  cobra.ExactArgs(1),
	RunE:  runClarify,
}

func init() {
	clarifyCmd.Flags().StringVar(&clarifyDict, "dict", "", "Path to a dictionary file (default: built-in)")
	clarifyCmd.Flags().BoolVar(&clarifyJSON, "json", false, "Output raw JSON")
	rootCmd.AddCommand(clarifyCmd)
}

func runClarify(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine(clarifyDict)
	if err != nil {
		return err
	}

	candidates := eng.ClarificationCandidates(args[0])
	topics := resolver.SuggestTopics(args[0])

	if clarifyJSON {
		out, err := json.MarshalIndent(map[string]any{
			"priority":         args[0],
			"candidates":       candidates,
			"topicSuggestions": topics,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(styleBanner.Render("Candidates for: " + args[0]))
	if len(candidates) == 0 {
		fmt.Println(styleDim.Render("  no candidates"))
	}
	for _, c := range candidates {
		fmt.Printf("  %s  %.2f (%s)\n", styleTerm.Render(c.StandardTerm), c.Confidence, resolver.Strength(c.Confidence))
	}
	if len(topics) > 0 {
		fmt.Println(styleBanner.Render("Suggested topics"))
		for _, topic := range topics {
			fmt.Printf("  - %s\n", topic)
		}
	}
	return nil
}
