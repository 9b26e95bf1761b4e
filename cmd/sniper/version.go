package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sniper/internal/driver"
	"sniper/internal/fragment"
	"sniper/internal/javafront"
	"sniper/internal/version"
)

const versionTagline = "touch only what changed"

// buildInfo is what a sniper binary reports about itself. Formats holds the
// schema versions of the files it stores.
type buildInfo struct {
	Version string            `json:"version"`
	Tagline string            `json:"tagline"`
	Grammar javafront.Grammar `json:"grammar"`
	Formats map[string]uint16 `json:"formats"`
	Build   map[string]string `json:"build,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sniper version, grammar and storage formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return err
		}
		info := collectBuildInfo(full)
		switch strings.ToLower(format) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), info)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit and build date")
}

func collectBuildInfo(full bool) buildInfo {
	info := buildInfo{
		Version: strings.TrimSpace(version.Version),
		Tagline: versionTagline,
		Grammar: javafront.LinkedGrammar(),
		Formats: map[string]uint16{
			"fragment_snapshot": fragment.SnapshotSchema,
			"check_cache":       driver.CacheSchema,
		},
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if full {
		info.Build = map[string]string{
			"commit":  valueOrUnknown(version.GitCommit),
			"message": valueOrUnknown(version.GitMessage),
			"date":    valueOrUnknown(version.BuildDate),
		}
	}
	return info
}

func renderVersionPretty(out io.Writer, info buildInfo) {
	fmt.Fprintf(out, "sniper %s, %s\n", version.Colored(info.Version), info.Tagline)
	g := info.Grammar
	fmt.Fprintf(out, "grammar: %s from %s %s (%d symbols)\n", g.Language, g.Module, g.Version, g.Symbols)
	fmt.Fprintf(out, "formats: fragment snapshot v%d, check cache v%d\n",
		info.Formats["fragment_snapshot"], info.Formats["check_cache"])
	if info.Build != nil {
		fmt.Fprintf(out, "commit:  %s\n", info.Build["commit"])
		fmt.Fprintf(out, "message: %s\n", info.Build["message"])
		fmt.Fprintf(out, "built:   %s\n", info.Build["date"])
	}
}

func renderVersionJSON(out io.Writer, info buildInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
