package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/arcade/internal/arena"
	"github.com/vytor/arcade/internal/opponent"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play an opponent tier against a random mover and the optimal policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		tierName, _ := cmd.Flags().GetString("tier")
		games, _ := cmd.Flags().GetInt("games")
		seed, _ := cmd.Flags().GetUint64("seed")

		tier, err := opponent.ParseTier(tierName)
		if err != nil {
			return err
		}
		if games < 1 {
			return fmt.Errorf("--games must be at least 1 (got %d)", games)
		}
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return simulate(cmd.Context(), cmd.OutOrStdout(), tier, games, seed)
	},
}

func init() {
	simulateCmd.Flags().String("tier", string(opponent.TierMedium), "Tier to evaluate: easy, medium or optimal")
	simulateCmd.Flags().Int("games", 100, "Games per opponent")
	simulateCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one from the clock)")
}

func simulate(ctx context.Context, w io.Writer, tier opponent.Tier, games int, seed uint64) error {
	rng := opponent.NewRand(seed)
	subject, err := opponent.New(tier, rng)
	if err != nil {
		return err
	}

	rivals := []struct {
		name   string
		policy opponent.Policy
	}{
		{"random", opponent.NewRandom(rng)},
		{"optimal", opponent.Optimal{}},
	}

	fmt.Fprintf(w, "tier=%s games=%d seed=%d\n", tier, games, seed)
	for _, r := range rivals {
		rec, err := arena.Series(ctx, subject, r.policy, games)
		if err != nil {
			return fmt.Errorf("%s vs %s: %w", tier, r.name, err)
		}
		fmt.Fprintf(w, "vs %-8s %s\n", r.name, rec)
	}
	return nil
}
