package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBustCmd creates and returns the bust subcommand.
// Each argument is printed busted on its own line, in order.
func NewBustCmd(flags *engineFlags) *cobra.Command {
	var forceQuery bool

	cmd := &cobra.Command{
		Use:   "bust WEB_PATH...",
		Short: "Rewrite web paths so they carry a fingerprint",
		Long: `Rewrite one or more web paths using the configured bust method.

Web paths are resolved against the public directory. A path whose asset does
not exist is an error and stops processing.

With --force-query the query method is used regardless of --method.`,
		Example: `  cachebust bust -d public /css/site.css /js/app.js
  cachebust bust -d public --method path --prefix v /img/logo.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.engine(cmd)
			if err != nil {
				return err
			}
			bust := e.Bust
			if forceQuery {
				bust = e.QueryBust
			}
			for _, webPath := range args {
				busted, err := bust(webPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), busted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceQuery, "force-query", false, "Always bust with a query parameter")

	return cmd
}

// NewHashCmd creates and returns the hash subcommand.
func NewHashCmd(flags *engineFlags) *cobra.Command {
	var prefixed bool

	cmd := &cobra.Command{
		Use:   "hash WEB_PATH...",
		Short: "Print the fingerprint of web paths",
		Long: `Print the fingerprint computed for each web path.

The hash ignores the enabled switch: it is printed even when busting is
disabled. Use --prefixed to include the configured prefix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.engine(cmd)
			if err != nil {
				return err
			}
			hash := e.Hash
			if prefixed {
				hash = e.PrefixedHash
			}
			for _, webPath := range args {
				h, err := hash(webPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", h, webPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefixed, "prefixed", false, "Include the configured prefix")

	return cmd
}

// NewPatternCmd creates and returns the pattern subcommand.
func NewPatternCmd(flags *engineFlags) *cobra.Command {
	var testPaths []string

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Print the regular expression matching busted paths",
		Long: `Print a regular expression that matches any path busted with the current
configuration. The "dir" and "file" groups concatenate to the original path,
which makes the expression usable in web server rewrite rules.

Each --test path is matched and its original path printed, or an error is
returned when it does not match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.engine(cmd)
			if err != nil {
				return err
			}
			expr, err := e.GeneratePattern()
			if err != nil {
				return err
			}
			if len(testPaths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), expr)
				return nil
			}
			for _, p := range testPaths {
				original, ok := e.Recover(p)
				if !ok {
					return fmt.Errorf("%s does not match %s", p, expr)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, original)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&testPaths, "test", "t", nil, "Busted path to match against the pattern")

	return cmd
}
