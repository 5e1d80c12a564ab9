// Package main provides the CLI entrypoint for easypass.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/config"
	"github.com/verte-zerg/easypass/internal/generator"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/store"
	"github.com/verte-zerg/easypass/internal/tui"
)

var (
	verbose bool
	dbPath  string

	rootSettings  settingsFlags
	rootNoHistory bool
)

// settingsFlags holds the generator flags shared by several commands.
type settingsFlags struct {
	length           int
	uppercase        bool
	lowercase        bool
	digits           bool
	symbols          bool
	excludeAmbiguous bool
	easyTyping       bool
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "easypass",
		Short:         "Password generator with easy-typing mode",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGeneratorUICmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: $XDG_DATA_HOME/easypass/easypass.db)")

	addSettingsFlags(rootCmd, &rootSettings)
	rootCmd.Flags().BoolVar(&rootNoHistory, "no-history", false, "do not record generated passwords")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addSettingsFlags(cmd *cobra.Command, f *settingsFlags) {
	defaults := model.DefaultSettings()
	cmd.Flags().IntVarP(&f.length, "length", "n", defaults.Length, fmt.Sprintf("password length (%d-%d)", model.MinLength, model.MaxLength))
	cmd.Flags().BoolVar(&f.uppercase, "upper", defaults.Uppercase, "include uppercase letters")
	cmd.Flags().BoolVar(&f.lowercase, "lower", defaults.Lowercase, "include lowercase letters")
	cmd.Flags().BoolVar(&f.digits, "digits", defaults.Digits, "include digits")
	cmd.Flags().BoolVar(&f.symbols, "symbols", defaults.Symbols, "include symbols")
	cmd.Flags().BoolVar(&f.excludeAmbiguous, "exclude-ambiguous", defaults.ExcludeAmbiguous, "leave out l, 1, I, O and 0")
	cmd.Flags().BoolVar(&f.easyTyping, "easy-typing", defaults.EasyTyping, "alternate left and right hand keys")
}

// applySettingsFlags overlays the flags the user actually passed onto s.
func applySettingsFlags(cmd *cobra.Command, f *settingsFlags, s model.Settings) model.Settings {
	applyIntFlag(cmd, "length", &s.Length, f.length)
	applyBoolFlag(cmd, "upper", &s.Uppercase, f.uppercase)
	applyBoolFlag(cmd, "lower", &s.Lowercase, f.lowercase)
	applyBoolFlag(cmd, "digits", &s.Digits, f.digits)
	applyBoolFlag(cmd, "symbols", &s.Symbols, f.symbols)
	applyBoolFlag(cmd, "exclude-ambiguous", &s.ExcludeAmbiguous, f.excludeAmbiguous)
	applyBoolFlag(cmd, "easy-typing", &s.EasyTyping, f.easyTyping)
	return s
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func validateSettings(s model.Settings) error {
	if s.Length < model.MinLength || s.Length > model.MaxLength {
		return fmt.Errorf("--length must be between %d and %d", model.MinLength, model.MaxLength)
	}
	if !s.HasCategory() {
		return fmt.Errorf("enable at least one of --upper, --lower, --digits, --symbols")
	}
	return nil
}

// openApp loads the config file, opens the database and wires the app
// service. The returned cleanup closes the database.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	limit, err := fileCfg.HistoryLimit()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	theme, err := fileCfg.Theme()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	defaults := fileCfg.DefaultSettings()
	if err := defaults.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: [generator] %w", err)
	}

	path := fileCfg.DBPath()
	if cmd.Flags().Changed("db") && dbPath != "" {
		path = dbPath
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}

	a := app.New(st, generator.New(), app.Options{
		HistoryLimit: limit,
		Defaults:     defaults,
		Theme:        theme,
		Logger:       newLogger(),
	})
	return a, cleanup, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runGeneratorUICmd(cmd *cobra.Command, _ []string) error {
	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	prefs, err := a.Preferences(context.Background())
	if err != nil {
		return err
	}
	prefs.Settings = applySettingsFlags(cmd, &rootSettings, prefs.Settings)
	if err := validateSettings(prefs.Settings); err != nil {
		return err
	}

	ui := tui.NewModel(a, prefs, tui.Options{Record: !rootNoHistory})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := model.DefaultSettings()
	return fmt.Sprintf(`# easypass configuration
# Uncomment a value to enable it. Saved settings and CLI flags override config values.

[generator]
# length = %d                # Password length (%d-%d)
# uppercase = %t            # Include A-Z
# lowercase = %t            # Include a-z and ñ
# digits = %t               # Include 0-9
# symbols = %t              # Include !@#$%%&/()=?¿¡*+
# exclude-ambiguous = %t   # Leave out l, 1, I, O and 0
# easy-typing = %t          # Alternate left and right hand keys

[history]
# limit = %d                 # Number of passwords kept
# db-path = %q

[ui]
# theme = %q             # "dark" or "light"
`,
		d.Length, model.MinLength, model.MaxLength,
		d.Uppercase,
		d.Lowercase,
		d.Digits,
		d.Symbols,
		d.ExcludeAmbiguous,
		d.EasyTyping,
		model.DefaultHistoryLimit,
		config.DefaultDBPath(),
		model.ThemeDark,
	)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
