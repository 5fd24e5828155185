package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ledsnake/internal/platform/tui"
	"github.com/vovakirdan/ledsnake/internal/storage"
)

var (
	flagRecent bool
	flagPlain  bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display stored runs. In a terminal an interactive table is shown;
press tab to switch between top and recent runs. When stdout is not a
terminal, or with --plain, a text table is printed.

Examples:
  ledsnake scores
  ledsnake scores --recent --plain --limit 5
  ledsnake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Start with the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text table instead of the interactive view")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig(cmd)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		exitf("could not open run database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			exitf("%v", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	view := tui.ViewTop
	if flagRecent {
		view = tui.ViewRecent
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, view, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	printRuns(store, view)
}

func printRuns(store *storage.Store, view tui.RunView) {
	var (
		runs []storage.Run
		err  error
	)
	if view == tui.ViewRecent {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("LED Snake - %s runs\n\n", view)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tAPPLES\tLENGTH\tTICKS\tEND\tDATE")
	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
	tw.Flush()
}
