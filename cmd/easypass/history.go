package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/historyui"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/stats"
)

var (
	historySearch    string
	historyFavorites bool
	historyLimit     int
	historyMask      bool
	historyYes       bool
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse generated passwords",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	addHistoryFilterFlags(cmd)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List history entries",
		Args:    cobra.NoArgs,
		RunE:    runHistoryListCmd,
	}
	addHistoryFilterFlags(listCmd)
	listCmd.Flags().IntVar(&historyLimit, "limit", 0, "show at most N entries")
	listCmd.Flags().BoolVar(&historyMask, "mask", false, "hide password values")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClearCmd,
	}
	clearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove entries by ID or ID prefix",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runHistoryRemoveCmd,
	})
	cmd.AddCommand(clearCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "copy <id>",
		Short: "Copy an entry to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryCopyCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print the password of an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryGetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "fav <id>",
		Aliases: []string{"favorite"},
		Short:   "Toggle the favorite flag of an entry",
		Args:    cobra.ExactArgs(1),
		RunE:    runHistoryFavCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Summarize history by strength",
		Args:  cobra.NoArgs,
		RunE:  runHistoryStatsCmd,
	})
	return cmd
}

func addHistoryFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&historySearch, "search", "s", "", "only entries containing this text (case-insensitive)")
	cmd.Flags().BoolVarP(&historyFavorites, "favorites", "f", false, "only favorite entries")
}

func historyFilter() model.HistoryFilter {
	return model.HistoryFilter{
		Search:        strings.TrimSpace(historySearch),
		FavoritesOnly: historyFavorites,
		Limit:         historyLimit,
	}
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(context.Background(), a)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return runHistoryListCmd(cmd, args)
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		prefs, err := a.Preferences(ctx)
		if err != nil {
			return err
		}
		ui := historyui.NewModel(a, historyFilter(), prefs.Theme)
		program := tea.NewProgram(ui, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	})
}

func runHistoryListCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		entries, err := a.History(ctx, historyFilter())
		if err != nil {
			return err
		}
		opts := stats.HistoryOptions{
			Now:        a.Now(),
			Width:      terminalWidth(os.Stdout),
			MaskValues: historyMask,
		}
		if err := stats.RenderHistory(cmd.OutOrStdout(), entries, opts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runHistoryRemoveCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		for _, id := range args {
			entry, err := a.Remove(ctx, id)
			if err != nil {
				return err
			}
			logErrf("Removed %s\n", stats.ShortID(entry.ID))
		}
		return nil
	})
}

func runHistoryClearCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if !historyYes {
			if !isTerminal(os.Stdin) {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			ok, err := confirm(cmd, "Clear all history? [y/N] ")
			if err != nil {
				return err
			}
			if !ok {
				logErrln("Aborted")
				return nil
			}
		}
		n, err := a.ClearHistory(ctx)
		if err != nil {
			return err
		}
		logErrf("Removed %d entries\n", n)
		return nil
	})
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	logErrf("%s", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func runHistoryCopyCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		entry, err := a.Entry(ctx, args[0])
		if err != nil {
			return err
		}
		if err := a.Copy(entry.Value); err != nil {
			return err
		}
		logErrln("Copied to clipboard")
		return nil
	})
}

func runHistoryGetCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		entry, err := a.Entry(ctx, args[0])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), entry.Value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runHistoryFavCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		entry, err := a.ToggleFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		if entry.Favorite {
			logErrf("Marked %s as favorite\n", stats.ShortID(entry.ID))
		} else {
			logErrf("Removed %s from favorites\n", stats.ShortID(entry.ID))
		}
		return nil
	})
}

func runHistoryStatsCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		report, err := stats.BuildReport(ctx, a.Store(), model.HistoryFilter{})
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := stats.RenderSummary(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}
