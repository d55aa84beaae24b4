package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/gametrackr/internal/rawg"
)

const (
	showConcurrency = 4
	showWrapWidth   = 80
	showClampLines  = 6
)

var showFull bool

var showCmd = &cobra.Command{
	Use:   "show <id> [id...]",
	Short: "Show details for one or more games",
	Long: `Fetch and print details for the given RAWG game ids. Up to four
lookups run at once; results print in argument order.

Examples:
  gametrackr show 3498
  gametrackr show 3498 4200 --full`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		env, err := setup()
		if err != nil {
			return err
		}
		defer env.Close()

		if !env.Client.Configured() {
			return errNoAPIKey
		}

		details := make([]*rawg.GameDetail, len(ids))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(showConcurrency)
		for i, id := range ids {
			g.Go(func() error {
				d, err := env.Client.GameDetail(ctx, id)
				if err != nil {
					return fmt.Errorf("game %d: %s", id, rawg.Describe(err))
				}
				details[i] = d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, d := range details {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printDetail(out, d, showFull)
		}
		return nil
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid game id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printDetail(w io.Writer, d *rawg.GameDetail, full bool) {
	styles := stylesFor(w)
	label := func(name string) string {
		return styles.Label.Render(fmt.Sprintf("%-10s", name))
	}

	fmt.Fprintf(w, "%s %s\n", styles.Title.Render(strings.ToUpper(d.Name)), styles.Faint.Render(fmt.Sprintf("#%d", d.ID)))
	fmt.Fprintf(w, "%s%s\n", label("Rating"), styles.Brand.Render(fmt.Sprintf("★ %.2f", d.Rating)))

	released := "TBA"
	if t, ok := d.ReleaseDate(); ok {
		released = t.Format("Jan 2, 2006")
	}
	fmt.Fprintf(w, "%s%s\n", label("Released"), released)

	if names := d.PlatformNames(); len(names) > 0 {
		fmt.Fprintf(w, "%s%s\n", label("Platforms"), strings.Join(names, " / "))
	}
	if img := d.HeroImage(); img != "" {
		fmt.Fprintf(w, "%s%s\n", label("Artwork"), img)
	}

	desc := d.PlainDescription()
	if desc == "" {
		return
	}
	fmt.Fprintln(w)
	lines := strings.Split(wordwrap.String(desc, showWrapWidth), "\n")
	if !full && len(lines) > showClampLines {
		lines = append(lines[:showClampLines], styles.Faint.Render("… (--full for the whole summary)"))
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func init() {
	showCmd.Flags().BoolVar(&showFull, "full", false, "print the whole description")
	rootCmd.AddCommand(showCmd)
}
