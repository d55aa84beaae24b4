package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/gametrackr/internal/rawg"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "List games matching a query",
	Long: `List up to 12 games matching the query, ordered by relevance.
Without a query the default (trending) listing is shown.

Examples:
  gametrackr search zelda
  gametrackr search "mass effect" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.Close()

		if !env.Client.Configured() {
			return errNoAPIKey
		}

		q := rawg.ListQuery{Search: strings.TrimSpace(strings.Join(args, " "))}
		games, err := env.Client.ListGames(cmd.Context(), q)
		if err != nil {
			env.Logger.Warn("search failed", zap.String("search", q.Search), zap.Error(err))
			return fmt.Errorf("search: %s", rawg.Describe(err))
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(games)
		}
		return printGames(out, q.Search, games)
	},
}

func printGames(w io.Writer, search string, games []rawg.GameSummary) error {
	styles := stylesFor(w)

	title := "Trending Titles"
	if search != "" {
		title = fmt.Sprintf("Search Results for %q", search)
	}
	fmt.Fprintln(w, styles.Title.Render(strings.ToUpper(title)))

	if len(games) == 0 {
		fmt.Fprintln(w, styles.Faint.Render("No games found."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tARTWORK")
	for _, g := range games {
		art := "yes"
		if strings.TrimSpace(g.BackgroundImage) == "" {
			art = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Name, art)
	}
	return tw.Flush()
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}
