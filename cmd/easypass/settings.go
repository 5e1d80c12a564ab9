package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/model"
)

var (
	setSettings settingsFlags
	setTheme    string
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved generator settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsShowCmd,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change saved settings (only the flags you pass)",
		Args:  cobra.NoArgs,
		RunE:  runSettingsSetCmd,
	}
	addSettingsFlags(setCmd, &setSettings)
	setCmd.Flags().StringVar(&setTheme, "theme", "", "UI theme (dark or light)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print saved settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsShowCmd,
	})
	cmd.AddCommand(setCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget saved settings and use the defaults",
		Args:  cobra.NoArgs,
		RunE:  runSettingsResetCmd,
	})
	return cmd
}

func runSettingsShowCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		prefs, err := a.Preferences(ctx)
		if err != nil {
			return err
		}
		return writePreferences(cmd.OutOrStdout(), prefs)
	})
}

func runSettingsSetCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		prefs, err := a.Preferences(ctx)
		if err != nil {
			return err
		}
		prefs.Settings = applySettingsFlags(cmd, &setSettings, prefs.Settings)
		if cmd.Flags().Changed("theme") {
			theme, err := model.ParseTheme(setTheme)
			if err != nil {
				return fmt.Errorf("invalid --theme: %w", err)
			}
			prefs.Theme = theme
		}
		if err := validateSettings(prefs.Settings); err != nil {
			return err
		}
		saved, err := a.SavePreferences(ctx, prefs)
		if err != nil {
			return err
		}
		return writePreferences(cmd.OutOrStdout(), saved)
	})
}

func runSettingsResetCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		prefs, err := a.ResetPreferences(ctx)
		if err != nil {
			return err
		}
		logErrln("Settings reset to defaults")
		return writePreferences(cmd.OutOrStdout(), prefs)
	})
}

func writePreferences(w io.Writer, prefs model.Preferences) error {
	s := prefs.Settings
	lines := []struct {
		key   string
		value any
	}{
		{"length", s.Length},
		{"uppercase", s.Uppercase},
		{"lowercase", s.Lowercase},
		{"digits", s.Digits},
		{"symbols", s.Symbols},
		{"exclude-ambiguous", s.ExcludeAmbiguous},
		{"easy-typing", s.EasyTyping},
		{"theme", prefs.Theme},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-18s %v\n", line.key, line.value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
