package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(refreshCmd)
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List clubs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.catalog.Clubs(cmd.Context(), forceRefresh)
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tFOUNDED\tBALANCE\tLANES")
		for _, c := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", c.ID, c.Name, c.FoundedYear, c.Balance, c.LaneCount)
		}
		return w.Flush()
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.catalog.Teams(cmd.Context(), forceRefresh)
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tCLUB\tLEAGUE\tRANK\tPOINTS")
		for _, t := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", t.ID, t.Name, t.ClubID, t.LeagueID, t.Rank, t.Points)
		}
		return w.Flush()
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List leagues",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.catalog.Leagues(cmd.Context(), forceRefresh)
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tTIER\tTEAMS")
		for _, l := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", l.ID, l.Name, l.Tier, len(l.TeamIDs))
		}
		return w.Flush()
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.catalog.Players(cmd.Context(), forceRefresh)
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tCLUB\tAGE\tSTRENGTH\tAVAILABLE")
		for _, p := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%t\n", p.ID, p.Name, p.ClubID, p.Age, p.Strength, p.IsAvailable)
		}
		return w.Flush()
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.catalog.Matches(cmd.Context(), forceRefresh)
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tDAY\tHOME\tAWAY\tSCORE\tPLAYED")
		for _, m := range items {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d:%d\t%t\n", m.ID, m.MatchDay, m.HomeTeamID, m.AwayTeamID, m.HomeScore, m.AwayScore, m.IsPlayed)
		}
		return w.Flush()
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force-refresh every cached resource collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.catalog.RefreshAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("cache refreshed")
		return nil
	},
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
