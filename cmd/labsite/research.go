package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/labsite/internal/tabs"
	"github.com/pdiddy/labsite/internal/ui"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Show the research direction tabs",
	Long: `Research shows the lab's research directions as tabs. In a terminal the
left and right arrow keys move between tabs, wrapping at the ends. With --tab
(an id, optionally prefixed with #) or when output is not a terminal, that
tab's pane is printed instead.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("tabs-file", "", "YAML research tabs (default data/research.yaml)")
	researchCmd.Flags().String("tab", "", "tab to activate, e.g. #graph")
	researchCmd.Flags().Bool("no-tui", false, "never open the interactive view")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	path := siteCfg.Research.TabsFile
	overrideString(cmd, "tabs-file", &path)
	list, err := loadTabs(path)
	if err != nil {
		return err
	}

	tab, _ := cmd.Flags().GetString("tab")
	noTUI, _ := cmd.Flags().GetBool("no-tui")

	if tab == "" && !noTUI && ui.IsTTY(os.Stdout) {
		styles := ui.GetStyles(ui.DetectNoColor())
		return ui.Run(cmd.Context(), ui.NewResearchModel(list, tab, styles), os.Stdin, os.Stdout)
	}

	set := tabs.FromTabs(list)
	if set.Len() == 0 {
		return fmt.Errorf("no research tabs in %s", path)
	}
	if tab != "" {
		if _, ok := set.FromFragment(tab); !ok {
			fmt.Fprintf(os.Stderr, "warning: no tab %q, showing %q\n", tab, set.Active())
		}
	}
	for _, t := range list {
		if set.IsActive(t.ID) {
			fmt.Print(ui.PaneText(t))
		}
	}
	return nil
}
