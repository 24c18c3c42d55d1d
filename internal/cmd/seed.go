package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// maxSeedLength is the number of hex digits in a UUID.
const maxSeedLength = 32

// NewSeedCmd creates and returns the seed subcommand for the cachebust CLI.
// It prints a random hex seed taken from a version 4 UUID.
func NewSeedCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random seed",
		Long: `Generate a random lowercase hex seed for the --seed flag or the seed config key.

Changing the seed changes every fingerprint at once, which forces clients to
refetch all assets after a deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := newSeed(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 8, "Number of hex digits (1-32)")

	return cmd
}

func newSeed(length int) (string, error) {
	if length < 1 || length > maxSeedLength {
		return "", fmt.Errorf("seed length %d out of range 1-%d", length, maxSeedLength)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate seed: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", "")[:length], nil
}
