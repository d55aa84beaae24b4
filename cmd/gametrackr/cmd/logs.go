package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/gametrackr/internal/config"
	"github.com/five82/gametrackr/internal/logtail"
)

var (
	logsLines int
	logsLevel string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print recent log entries",
	Long: `Print the last entries of the GameTrackr log file. The TUI logs to a
file because it owns the terminal; this command reads it back.

Examples:
  gametrackr logs
  gametrackr logs --lines 200 --level warn`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		minLevel := zapcore.DebugLevel
		if strings.TrimSpace(logsLevel) != "" {
			if minLevel, err = zapcore.ParseLevel(strings.TrimSpace(logsLevel)); err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}
		}

		lines, err := logtail.Tail(cfg.LogFile, logsLines)
		if err != nil {
			return err
		}
		printEntries(cmd.OutOrStdout(), logtail.Filter(logtail.ParseAll(lines), minLevel))
		return nil
	},
}

func printEntries(w io.Writer, entries []logtail.Entry) {
	styles := stylesFor(w)
	colored := isTerminal(w)
	for _, e := range entries {
		if !e.Parsed || !colored {
			fmt.Fprintln(w, e.String())
			continue
		}
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(styles.Faint.Render(e.Time.Local().Format("2006-01-02 15:04:05")))
			b.WriteByte(' ')
		}
		b.WriteString(levelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level.CapitalString())))
		b.WriteByte(' ')
		b.WriteString(e.Message)
		if fields := e.FieldString(); fields != "" {
			b.WriteByte(' ')
			b.WriteString(styles.Label.Render(fields))
		}
		fmt.Fprintln(w, b.String())
	}
}

func levelStyle(l zapcore.Level) lipgloss.Style {
	color := "#7aa2f7"
	switch {
	case l >= zapcore.ErrorLevel:
		color = "#e5383b"
	case l == zapcore.WarnLevel:
		color = "#e0af68"
	case l == zapcore.InfoLevel:
		color = "#9ece6a"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of lines to read from the end of the log")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "minimum level to show (debug, info, warn, error)")
	rootCmd.AddCommand(logsCmd)
}
