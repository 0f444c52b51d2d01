package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karaleary/civimap/internal/session"
)

var (
	feedbackSession string
	feedbackTerm    string
	feedbackReject  bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback PRIORITY",
	Short: "Record whether a mapping was right, for reuse in later analyses",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedback,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Feedback sessions",
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a session and print its id",
	RunE:  runSessionNew,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackSession, "session", "", "Session id (required)")
	feedbackCmd.Flags().StringVar(&feedbackTerm, "term", "", "Term id the priority should map to (required)")
	feedbackCmd.Flags().BoolVar(&feedbackReject, "reject", false, "Record the mapping as wrong instead of confirming it")
	feedbackCmd.MarkFlagRequired("session")
	feedbackCmd.MarkFlagRequired("term")
	sessionCmd.AddCommand(sessionNewCmd)
	rootCmd.AddCommand(feedbackCmd, sessionCmd)
}

func openSessionStore() (*session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return session.Open(cfg.Session.DB)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine("")
	if err != nil {
		return err
	}
	if _, ok := eng.Dictionary().Term(feedbackTerm); !ok {
		return fmt.Errorf("unknown term id %q", feedbackTerm)
	}

	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordFeedback(feedbackSession, args[0], feedbackTerm, !feedbackReject); err != nil {
		return err
	}

	if feedbackReject {
		fmt.Println(styleSuccess.Render("recorded: mapping rejected"))
	} else {
		fmt.Println(styleSuccess.Render("recorded: mapping confirmed"))
	}
	return nil
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.NewSession()
	if err != nil {
		return err
	}
	fmt.Println(sess.ID)
	return nil
}
