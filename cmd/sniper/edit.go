package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sniper/internal/driver"
	"sniper/internal/edit"
)

var editCmd = &cobra.Command{
	Use:   "edit [flags] <script.toml> [path...]",
	Short: "Apply an edit script and reprint the touched code",
	Long: `Apply the edits of a TOML script to every Java file, then print each file
with the sniper printer so that untouched code keeps its original text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().Bool("write", false, "rewrite changed files in place")
	editCmd.Flags().Bool("stdout", false, "write edited sources to stdout")
	editCmd.Flags().Bool("strict", false, "fail a file on the first edit that cannot be applied")
	editCmd.Flags().String("format", "text", "output format (text|json)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if write && writeToStdout {
		return fmt.Errorf("edit: --write and --stdout are mutually exclusive")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("edit: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("edit: unsupported output format %q", outputFormat)
	}

	script, err := edit.LoadScript(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, args[1:])
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s.cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	results, runErr := s.run(cmd, "sniper edit", driver.Options{
		Mode:   driver.ModeEdit,
		Script: script,
		Strict: strict,
		Write:  write,
	}, writeToStdout)

	var hasErrors bool
	switch {
	case writeToStdout:
		hasErrors = renderStdout(cmd.OutOrStdout(), results)
	case outputFormat == "json":
		if err := renderEditJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
		hasErrors, _ = tally(results)
	default:
		hasErrors = renderEditText(cmd.OutOrStdout(), results, write, s.quiet)
	}

	if runErr != nil {
		return runErr
	}
	if hasErrors {
		return fmt.Errorf("edit: failed to edit some files")
	}
	return nil
}

func renderEditText(out io.Writer, results []driver.FileResult, write, quiet bool) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportErr(res.Err)
			continue
		}
		if quiet {
			continue
		}
		switch {
		case res.Written:
			fmt.Fprintf(out, "%s %s (%d edits)\n", okColor.Sprint("edited"), res.Path, len(res.Applied))
		case res.Changed:
			fmt.Fprintf(out, "%s %s (%d edits)\n", warnColor.Sprint("would edit"), res.Path, len(res.Applied))
		}
		// Files where nothing applied usually just lack the targets.
		if len(res.Applied) == 0 {
			continue
		}
		for _, sk := range res.Skipped {
			fmt.Fprintf(out, "  %s edit %d %s %s: %s\n", dimColor.Sprint("skipped"), sk.Index+1, sk.Op, sk.Target, sk.Reason)
		}
	}
	if !quiet && !write {
		fmt.Fprintln(out, dimColor.Sprint("dry run; pass --write to update files"))
	}
	return hasErrors
}

func renderEditJSON(out io.Writer, results []driver.FileResult) error {
	type jsonEdit struct {
		Index  int    `json:"index"`
		Op     string `json:"op"`
		Target string `json:"target"`
		Reason string `json:"reason,omitempty"`
	}
	type jsonResult struct {
		Path    string     `json:"path"`
		Changed bool       `json:"changed"`
		Written bool       `json:"written"`
		Applied []jsonEdit `json:"applied"`
		Skipped []jsonEdit `json:"skipped,omitempty"`
		Error   string     `json:"error,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Written: res.Written, Applied: []jsonEdit{}}
		for _, a := range res.Applied {
			jr.Applied = append(jr.Applied, jsonEdit{Index: a.Index + 1, Op: string(a.Op), Target: a.Target})
		}
		for _, sk := range res.Skipped {
			jr.Skipped = append(jr.Skipped, jsonEdit{Index: sk.Index + 1, Op: string(sk.Op), Target: sk.Target, Reason: sk.Reason})
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
