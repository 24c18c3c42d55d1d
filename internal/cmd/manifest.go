package cmd

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/cachebust/cachebust"
	"github.com/dendrascience/cachebust/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewManifestCmd creates and returns the manifest subcommand.
// It busts every regular file below the public directory and writes the
// original to busted mapping as JSON.
func NewManifestCmd(flags *engineFlags) *cobra.Command {
	var (
		outputPath    string
		metricsPath   string
		includeHidden bool
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write a JSON manifest of busted paths for the public directory",
		Long: `Walk the public directory and bust every regular file in it.

The result is a JSON object mapping each original web path to its busted
form, suitable for template helpers that cannot call cachebust directly.
Files and directories whose names start with a dot are skipped unless
--include-hidden is set.

With --metrics-file the bust and error counters are written in the
Prometheus text format, for node_exporter's textfile collector.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.engine(cmd)
			if err != nil {
				return err
			}

			manifest, err := buildManifest(e, includeHidden)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode manifest: %w", err)
			}
			data = append(data, '\n')

			if outputPath == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else {
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write manifest: %w", err)
				}
				log.Info().
					Int("assets", len(manifest)).
					Str("output", outputPath).
					Msg("manifest written")
			}

			if metricsPath != "" {
				if err := writeMetrics(metricsPath); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the manifest to this file instead of stdout")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Include dot files and directories")

	return cmd
}

func buildManifest(e *cachebust.Engine, includeHidden bool) (map[string]string, error) {
	root := e.Config().PublicDirectory()
	manifest := make(map[string]string)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && !includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		webPath := "/" + filepath.ToSlash(rel)
		if strings.ContainsAny(webPath, "?#") {
			log.Warn().Str("path", webPath).Msg("skipping asset with ? or # in its name")
			return nil
		}
		busted, err := e.Bust(webPath)
		if err != nil {
			return err
		}
		manifest[webPath] = busted
		log.Debug().Str("path", webPath).Str("busted", busted).Msg("manifest entry")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return manifest, nil
}

func writeMetrics(path string) error {
	reg := prometheus.NewRegistry()
	if err := metrics.RegisterTo(reg); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
