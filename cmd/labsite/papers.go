package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/labsite/internal/papers"
	"github.com/pdiddy/labsite/internal/ui"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Browse and filter the publication list",
	Long: `Papers shows the lab's publication list. In a terminal it opens an
interactive view: typing filters by title and authors, tab cycles the
publication type and shift+tab the year. With --query, --type or --year, or
when output is not a terminal, the filtered list is printed instead.`,
	RunE: runPapers,
}

func init() {
	papersCmd.Flags().String("data-file", "", "YAML paper list (default data/papers.yaml)")
	papersCmd.Flags().String("query", "", "filter by title or author substring")
	papersCmd.Flags().String("type", "", "filter by publication type")
	papersCmd.Flags().String("year", "", "filter by year")
	papersCmd.Flags().Bool("json", false, "print the filtered entries as JSON")
	papersCmd.Flags().Bool("no-tui", false, "never open the interactive view")
	papersCmd.Flags().Bool("years", false, "list the distinct years, newest first")

	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, args []string) error {
	path := siteCfg.Papers.DataFile
	overrideString(cmd, "data-file", &path)
	entries, err := loadPapers(path)
	if err != nil {
		return err
	}

	if listYears, _ := cmd.Flags().GetBool("years"); listYears {
		for _, y := range papers.Years(entries) {
			fmt.Println(y)
		}
		return nil
	}

	query, _ := cmd.Flags().GetString("query")
	typ, _ := cmd.Flags().GetString("type")
	year, _ := cmd.Flags().GetString("year")
	asJSON, _ := cmd.Flags().GetBool("json")
	noTUI, _ := cmd.Flags().GetBool("no-tui")

	filtered := query != "" || typ != "" || year != ""
	if !filtered && !asJSON && !noTUI && ui.IsTTY(os.Stdout) {
		styles := ui.GetStyles(ui.DetectNoColor())
		return ui.Run(cmd.Context(), ui.NewPapersModel(entries, styles), os.Stdin, os.Stdout)
	}

	res := papers.Filter(entries, papers.Criteria{Term: query, Type: typ, Year: year})
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if res.Entries == nil {
			return enc.Encode([]any{})
		}
		return enc.Encode(res.Entries)
	}

	if res.NoResults {
		msg := res.Message()
		if msg == "" {
			msg = "没有找到匹配的论文"
		}
		fmt.Println(msg)
		return nil
	}

	fmt.Printf("%-4s  %-12s  %-60s  %s\n", "Year", "Type", "Title", "Authors")
	fmt.Println(strings.Repeat("-", 100))
	for _, e := range res.Entries {
		fmt.Printf("%-4s  %-12s  %-60s  %s\n", e.Year, e.Type, e.Title, e.Authors)
	}
	fmt.Printf("\n%d of %d papers\n", res.Count(), len(entries))
	return nil
}
