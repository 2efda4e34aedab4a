package cli

import (
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/spf13/cobra"
)

func newCareerCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Career history commands",
	}

	cmd.AddCommand(newCareerAddCmd(st))
	cmd.AddCommand(newCareerListCmd(st))

	return cmd
}

func newCareerAddCmd(st *state) *cobra.Command {
	var in models.CareerEntryInput
	counts := map[string]*int{
		"appearances": new(int),
		"starts":      new(int),
		"subs":        new(int),
		"yellow":      new(int),
		"red":         new(int),
		"assists":     new(int),
		"goals":       new(int),
		"saves":       new(int),
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a career entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := currentToken(st)
			if err != nil {
				return err
			}

			// Unset counts stay nil so validation reports them as missing.
			pick := func(name string) *int {
				if cmd.Flags().Changed(name) {
					return counts[name]
				}
				return nil
			}
			in.Appearances = pick("appearances")
			in.Starts = pick("starts")
			in.SubstituteAppearances = pick("subs")
			in.YellowCards = pick("yellow")
			in.RedCards = pick("red")
			in.Assists = pick("assists")
			in.Goals = pick("goals")
			in.Saves = pick("saves")

			e, err := st.app.Portal.AddCareerEntry(cmd.Context(), tok, in)
			if err != nil {
				return err
			}

			st.out(cmd).Print(e)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Season, "season", "", "Season, e.g. 2023/24")
	f.StringVar(&in.Team, "team", "", "Team")
	f.StringVar(&in.Competition, "competition", "", "Competition")
	f.IntVar(counts["appearances"], "appearances", 0, "Appearances")
	f.IntVar(counts["starts"], "starts", 0, "Starts")
	f.IntVar(counts["subs"], "subs", 0, "Substitute appearances")
	f.IntVar(counts["yellow"], "yellow", 0, "Yellow cards")
	f.IntVar(counts["red"], "red", 0, "Red cards")
	f.IntVar(counts["assists"], "assists", 0, "Assists")
	f.IntVar(counts["goals"], "goals", 0, "Goals")
	f.IntVar(counts["saves"], "saves", 0, "Saves")

	return cmd
}

func newCareerListCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List career entries in the order they were added",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := currentToken(st)
			if err != nil {
				return err
			}

			entries, err := st.app.Portal.CareerEntries(cmd.Context(), tok)
			if err != nil {
				return err
			}

			st.out(cmd).Print(entries)
			return nil
		},
	}
}
