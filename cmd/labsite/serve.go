package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/labsite/internal/search"
	"github.com/pdiddy/labsite/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search, papers and research pages over HTTP",
	Long: `Serve renders the search page, the filterable paper list and the research
tabs, and exposes the ranked results as JSON under /api/search. With --watch
a local index file is reloaded whenever the site is rebuilt.`,
	RunE: runServe,
}

func init() {
	addSourceFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("watch", false, "reload the local index file when it changes")
	serveCmd.Flags().Float64("rate-limit", 0, "sustained /api/search requests per second (default 10)")
	serveCmd.Flags().String("papers-file", "", "YAML paper list (default data/papers.yaml)")
	serveCmd.Flags().String("tabs-file", "", "YAML research tabs (default data/research.yaml)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	scfg := searchConfig(cmd)
	if _, _, err := indexSource(scfg); err != nil {
		return err
	}
	opts, err := search.OptionsFromConfig(scfg, logger)
	if err != nil {
		return err
	}

	serve := siteCfg.Serve
	overrideString(cmd, "addr", &serve.Addr)
	if cmd.Flags().Changed("watch") {
		serve.Watch, _ = cmd.Flags().GetBool("watch")
	}
	if cmd.Flags().Changed("rate-limit") {
		serve.RateLimit, _ = cmd.Flags().GetFloat64("rate-limit")
	}

	papersFile := siteCfg.Papers.DataFile
	overrideString(cmd, "papers-file", &papersFile)
	entries, err := loadPapers(papersFile)
	if err != nil {
		return err
	}
	tabsFile := siteCfg.Research.TabsFile
	overrideString(cmd, "tabs-file", &tabsFile)
	tabList, err := loadTabs(tabsFile)
	if err != nil {
		return err
	}

	watchFile := ""
	if scfg.BaseURL == "" {
		watchFile = scfg.IndexFile
	}
	srv, err := site.New(site.Config{
		Serve:  serve,
		Search: opts,
		NewSource: func() search.Source {
			src, _, _ := indexSource(scfg)
			return src
		},
		IndexFile: watchFile,
		Papers:    entries,
		Tabs:      tabList,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
