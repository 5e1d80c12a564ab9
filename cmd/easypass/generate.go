package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/strength"
)

var (
	genSettings  settingsFlags
	genCount     int
	genCopy      bool
	genNoHistory bool
	genQuiet     bool
)

var levelColors = map[strength.Level]lipgloss.Color{
	strength.Weak:       lipgloss.Color("#FF4D4F"),
	strength.Medium:     lipgloss.Color("#C89A3A"),
	strength.Strong:     lipgloss.Color("#52C41A"),
	strength.VeryStrong: lipgloss.Color("#1890FF"),
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate passwords without the TUI",
		Args:    cobra.NoArgs,
		RunE:    runGenerateCmd,
	}
	addSettingsFlags(cmd, &genSettings)
	cmd.Flags().IntVarP(&genCount, "count", "c", 1, "number of passwords to generate")
	cmd.Flags().BoolVar(&genCopy, "copy", false, "copy the last password to the clipboard")
	cmd.Flags().BoolVar(&genNoHistory, "no-history", false, "do not record generated passwords")
	cmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "print passwords only, without strength labels")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	if genCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	prefs, err := a.Preferences(ctx)
	if err != nil {
		return err
	}
	settings := applySettingsFlags(cmd, &genSettings, prefs.Settings)
	if err := validateSettings(settings); err != nil {
		return err
	}

	styled := !genQuiet && isTerminal(os.Stdout)
	var last model.HistoryEntry
	for i := 0; i < genCount; i++ {
		entry, err := a.Generate(ctx, settings, !genNoHistory)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatGenerated(entry, styled)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		last = entry
	}

	if genCopy {
		if err := a.Copy(last.Value); err != nil {
			return err
		}
		logErrln("Copied to clipboard")
	}
	return nil
}

func formatGenerated(entry model.HistoryEntry, styled bool) string {
	if !styled {
		return entry.Value
	}
	label := entry.Strength
	style := lipgloss.NewStyle().Bold(true)
	if level, err := strength.ParseLabel(entry.Strength); err == nil {
		style = style.Foreground(levelColors[level])
	}
	return entry.Value + "  " + style.Render(label)
}
