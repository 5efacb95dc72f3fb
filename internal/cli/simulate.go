package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	simulateCmd.AddCommand(simulateMatchDayCmd)
	simulateCmd.AddCommand(simulateSeasonCmd)
	seasonCmd.AddCommand(seasonTransitionCmd)
	seasonCmd.AddCommand(seasonShowCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(seasonCmd)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Trigger server-side simulation",
}

var simulateMatchDayCmd = &cobra.Command{
	Use:   "matchday",
	Short: "Simulate the next match day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.simulation.SimulateMatchDay(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("match day %d simulated: %d matches played\n", res.MatchDay, res.MatchesSimulated)
		return nil
	},
}

var simulateSeasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Simulate the rest of the season",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.simulation.SimulateSeason(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("season simulated: %d matches played\n", res.MatchesSimulated)
		return nil
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Season context operations",
}

var seasonShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current season",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		current, err := a.simulation.CurrentSeason(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("current season: %s (%d)\n", current.Name, current.Year)
		return nil
	},
}

var seasonTransitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Close the season and start the next one",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		next, err := a.simulation.TransitionSeason(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("season transitioned, now in %s (%d)\n", next.Name, next.Year)
		return nil
	},
}
