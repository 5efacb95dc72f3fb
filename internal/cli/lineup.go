package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

var lineupAssignments []string

func init() {
	lineupCmd.AddCommand(lineupShowCmd)
	lineupCmd.AddCommand(lineupSubmitCmd)
	rootCmd.AddCommand(lineupCmd)

	lineupSubmitCmd.Flags().StringArrayVar(&lineupAssignments, "assign", nil, "Position assignment as pos=player-id (repeatable)")
}

var lineupCmd = &cobra.Command{
	Use:   "lineup",
	Short: "Inspect and submit match lineups",
}

var lineupShowCmd = &cobra.Command{
	Use:   "show [match-id] [club-id]",
	Short: "Show the lineup editor state for one side of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		editor, err := a.lineups.OpenEditor(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		defer editor.Cancel()

		printEditor(editor)
		return nil
	},
}

var lineupSubmitCmd = &cobra.Command{
	Use:   "submit [match-id] [club-id]",
	Short: "Assign players to positions and submit the lineup",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		editor, err := a.lineups.OpenEditor(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		for _, raw := range lineupAssignments {
			position, playerID, err := parseAssignment(raw)
			if err != nil {
				editor.Cancel()
				return err
			}
			if err := editor.Assign(position, playerID); err != nil {
				editor.Cancel()
				return err
			}
		}

		if err := editor.Submit(cmd.Context()); err != nil {
			if errors.Is(err, usecase.ErrHomeLineupRequired) {
				return fmt.Errorf("the home side has not submitted a lineup yet: %w", err)
			}
			return err
		}
		fmt.Printf("lineup saved for match %s\n", editor.MatchID())
		return nil
	},
}

func parseAssignment(raw string) (int, string, error) {
	pos, playerID, ok := strings.Cut(raw, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid --assign %q, want pos=player-id", raw)
	}
	position, err := strconv.Atoi(strings.TrimSpace(pos))
	if err != nil {
		return 0, "", fmt.Errorf("invalid --assign position %q", pos)
	}
	return position, strings.TrimSpace(playerID), nil
}

func printEditor(editor *usecase.Editor) {
	side := "away"
	if editor.IsHomeTeam() {
		side = "home"
	}
	fmt.Printf("match %s, editing %s side (team %s)\n", editor.MatchID(), side, editor.TeamID())
	if editor.HomeLineupRequired() {
		fmt.Println("home lineup not yet submitted: submission is blocked")
	}

	w := newTable()
	fmt.Fprintln(w, "POS\tPLAYER")
	for _, slot := range editor.Slots() {
		id := slot.PlayerID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\n", slot.Position, id)
	}
	_ = w.Flush()

	if opponent := editor.OpponentLineup(); len(opponent) > 0 {
		fmt.Println("opponent lineup:")
		w = newTable()
		fmt.Fprintln(w, "POS\tPLAYER")
		for _, slot := range opponent {
			fmt.Fprintf(w, "%d\t%s\n", slot.Position, slot.PlayerID)
		}
		_ = w.Flush()
	}

	fmt.Println("eligible players:")
	w = newTable()
	fmt.Fprintln(w, "ID\tNAME\tSTRENGTH\tAVAILABLE")
	for _, p := range editor.EligiblePlayers() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", p.ID, p.Name, p.Strength, p.IsAvailable)
	}
	_ = w.Flush()
}
