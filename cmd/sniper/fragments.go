package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"sniper/internal/fragment"
	"sniper/internal/javafront"
	"sniper/internal/source"
)

var fragmentsCmd = &cobra.Command{
	Use:   "fragments [flags] <file.java>",
	Short: "Show the fragment tree of a Java file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFragments,
}

func init() {
	fragmentsCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	fragmentsCmd.Flags().String("at", "", "only show the fragment with range start:end")
	fragmentsCmd.Flags().Int("width", 0, "clip text previews to this many columns (0 = terminal width)")
}

func runFragments(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	if width <= 0 {
		width = terminalWidth(100)
	}

	cleanup, err := setupTracing(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	unit, err := javafront.Parse(cmd.Context(), fs.Get(id))
	if err != nil {
		return err
	}
	tree := unit.Fragments

	head := tree.Root()
	if at != "" {
		start, end, err := parseRange(at)
		if err != nil {
			return err
		}
		head = tree.Locate(tree.Root(), start, end)
		if head == fragment.NoID {
			return fmt.Errorf("fragments: no fragment spans [%d,%d)", start, end)
		}
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "text":
		return tree.Dump(out, head, width)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshotAt(tree, head, at != ""))
	case "msgpack":
		if out == os.Stdout && isTerminal(os.Stdout) {
			return fmt.Errorf("fragments: refusing to write msgpack to a terminal")
		}
		return fragment.EncodeSnapshot(out, snapshotAt(tree, head, at != ""))
	default:
		return fmt.Errorf("fragments: unsupported output format %q", outputFormat)
	}
}

// snapshotAt snapshots only the located fragment rather than its sibling
// chain when single is set.
func snapshotAt(tree *fragment.Tree, head fragment.ID, single bool) fragment.Snapshot {
	snap := tree.Snapshot(head)
	if single && len(snap.Nodes) > 1 {
		snap.Nodes = snap.Nodes[:1]
	}
	return snap
}

func parseRange(s string) (start, end uint32, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("fragments: --at wants start:end, got %q", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("fragments: bad start %q: %w", a, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("fragments: bad end %q: %w", b, err)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("fragments: end %d before start %d", hi, lo)
	}
	if start, err = safecast.Conv[uint32](lo); err != nil {
		return 0, 0, fmt.Errorf("fragments: start: %w", err)
	}
	if end, err = safecast.Conv[uint32](hi); err != nil {
		return 0, 0, fmt.Errorf("fragments: end: %w", err)
	}
	return start, end, nil
}
