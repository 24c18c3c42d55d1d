package cmd

import (
	"github.com/dendrascience/cachebust/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the cachebust CLI.
// It sets up the shared engine flags, logging, command groups and subcommands.
func NewRootCmd() *cobra.Command {
	flags := &engineFlags{}

	rootCmd := &cobra.Command{
		Use:   "cachebust",
		Short: "cachebust - Fingerprint static asset URLs for far-future caching",
		Long: `cachebust rewrites static asset web paths so they carry a fingerprint of the
file they point at. Browsers can then cache assets forever and still pick up
new versions as soon as the file changes.

The fingerprint is a seeded hash of either the file's modification time or its
contents, placed in the file name, as an extra path segment, or in the query
string.

Use subcommands to perform different operations:
  - bust: Rewrite one or more web paths
  - hash: Print the fingerprint for web paths
  - pattern: Print the regular expression that reverses busting
  - manifest: Write a JSON manifest for every file in the public directory
  - algorithms: List the supported hash algorithms
  - seed: Generate a random seed`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLog(cmd.ErrOrStderr(), flags.debug)
		},
	}
	flags.register(rootCmd)

	groupAssets := "assets"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAssets,
		Title: "Asset Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	bustCmd := NewBustCmd(flags)
	hashCmd := NewHashCmd(flags)
	patternCmd := NewPatternCmd(flags)
	manifestCmd := NewManifestCmd(flags)
	algorithmsCmd := NewAlgorithmsCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	bustCmd.GroupID = groupAssets
	hashCmd.GroupID = groupAssets
	patternCmd.GroupID = groupAssets
	manifestCmd.GroupID = groupAssets
	algorithmsCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(bustCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
