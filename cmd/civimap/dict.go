package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karaleary/civimap/internal/dictionary"
)

var dictTermsJSON bool

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Policy term dictionary",
}

var dictValidateCmd = &cobra.Command{
	Use:   "validate PATH",
	Short: "Validate a dictionary file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictValidate,
}

var dictTermsCmd = &cobra.Command{
	Use:   "terms [PATH]",
	Short: "List dictionary terms",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDictTerms,
}

func init() {
	dictTermsCmd.Flags().BoolVar(&dictTermsJSON, "json", false, "Output raw JSON")
	dictCmd.AddCommand(dictValidateCmd, dictTermsCmd)
	rootCmd.AddCommand(dictCmd)
}

func runDictValidate(cmd *cobra.Command, args []string) error {
	dict, warnings, err := dictionary.LoadFile(args[0])
	if err != nil {
		fmt.Println(styleError.Render("invalid: " + err.Error()))
		return err
	}
	for _, warning := range warnings {
		fmt.Println(styleDim.Render("warning: " + warning))
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("ok: %d terms, %d warnings", dict.Len(), len(warnings))))
	return nil
}

func runDictTerms(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	dict, err := loadDictionary(path)
	if err != nil {
		return err
	}

	if dictTermsJSON {
		type entry struct {
			ID           string              `json:"id"`
			StandardTerm string              `json:"standardTerm"`
			PlainEnglish string              `json:"plainEnglish"`
			Category     dictionary.Category `json:"category"`
		}
		var out []entry
		for _, term := range dict.Terms() {
			out = append(out, entry{term.ID, term.StandardTerm, term.PlainEnglish, term.Category})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, term := range dict.Terms() {
		fmt.Printf("%s  %s\n", styleTerm.Render(term.StandardTerm), styleDim.Render("("+term.ID+", "+string(term.Category)+")"))
		fmt.Printf("    %s\n", term.PlainEnglish)
	}
	return nil
}
