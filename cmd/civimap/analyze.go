package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaleary/civimap/internal/session"
)

var (
	analyzeDict    string
	analyzeJSON    bool
	analyzePlain   bool
	analyzeSession string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze PRIORITY...",
	Short: "Map free-text priorities to policy terms and detect conflicts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDict, "dict", "", "Path to a dictionary file (default: built-in)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output raw JSON")
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false, "Plain text output without markdown rendering")
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Apply confirmed feedback from this session id")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine(analyzeDict)
	if err != nil {
		return err
	}

	analysis := eng.MapPriorities(args)

	if analyzeSession != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := session.Open(cfg.Session.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		learner, err := store.LoadLearner(analyzeSession)
		if err != nil {
			return fmt.Errorf("load session %s: %w", analyzeSession, err)
		}
		if applied := learner.Apply(eng, &analysis); applied > 0 {
			fmt.Fprintln(os.Stderr, styleDim.Render(fmt.Sprintf("applied %d confirmed mapping(s) from session", applied)))
		}
	}

	if analyzeJSON {
		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	report := buildReport(analysis)
	if analyzePlain {
		fmt.Print(report)
		return nil
	}
	fmt.Println(renderMarkdown(report))
	return nil
}
