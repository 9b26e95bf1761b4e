package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sniper/internal/driver"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] [path...]",
	Short: "Reprint Java files without edits",
	Long: `Parse every Java file, run it through the sniper printer and report
whether the output is byte identical. With --check a differing file is an error.`,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().Bool("check", false, "fail when a file does not reprint identically")
	printCmd.Flags().Bool("stdout", false, "write reprinted sources to stdout")
	printCmd.Flags().String("format", "text", "output format (text|json)")
	printCmd.Flags().Bool("no-cache", false, "do not use the check cache")
	printCmd.Flags().Bool("drop-cache", false, "clear the check cache before running")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("print: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("print: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("print: unsupported output format %q", outputFormat)
	}

	s, err := loadSettings(cmd, args)
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

	opts := driver.Options{Mode: driver.ModePrint}
	if check {
		opts.Mode = driver.ModeCheck
		if !noCache {
			cache, err := driver.OpenDiskCache("sniper")
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s cache disabled: %v\n", warnColor.Sprint("warning:"), err)
			} else {
				if dropCache {
					if err := cache.DropAll(); err != nil {
						return err
					}
				}
				opts.Cache = cache
			}
		}
	}

	results, runErr := s.run(cmd, "sniper "+opts.Mode.String(), opts, writeToStdout)

	var hasErrors, hasChanges bool
	switch {
	case writeToStdout:
		hasErrors = renderStdout(cmd.OutOrStdout(), results)
	case outputFormat == "json":
		if err := renderPrintJSON(cmd.OutOrStdout(), results, check); err != nil {
			return err
		}
		hasErrors, hasChanges = tally(results)
	default:
		hasErrors, hasChanges = renderPrintText(cmd.OutOrStdout(), results, check, s.quiet)
	}

	if runErr != nil {
		return runErr
	}
	if check && hasChanges {
		return fmt.Errorf("print: %w", driver.ErrRoundTrip)
	}
	if hasErrors {
		return fmt.Errorf("print: failed to reprint some files")
	}
	return nil
}

func renderStdout(out io.Writer, results []driver.FileResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportErr(res.Err)
			continue
		}
		_, _ = out.Write(res.Output)
	}
	return hasErrors
}

func tally(results []driver.FileResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		switch {
		case errors.Is(res.Err, driver.ErrRoundTrip):
			hasChanges = true
		case res.Err != nil:
			hasErrors = true
		case res.Changed:
			hasChanges = true
		}
	}
	return hasErrors, hasChanges
}

func renderPrintText(out io.Writer, results []driver.FileResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		switch {
		case errors.Is(res.Err, driver.ErrRoundTrip):
			hasChanges = true
			fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("differs"), res.Path)
		case res.Err != nil:
			hasErrors = true
			reportErr(res.Err)
		case res.Changed:
			hasChanges = true
			fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("differs"), res.Path)
		case !quiet:
			note := ""
			if res.Cached {
				note = dimColor.Sprint(" (cached)")
			}
			fmt.Fprintf(out, "%s %s%s\n", okColor.Sprint("ok"), res.Path, note)
		}
	}
	if !quiet && !check && hasChanges {
		fmt.Fprintln(out, dimColor.Sprint("run with --check to fail on differences"))
	}
	return hasErrors, hasChanges
}

func renderPrintJSON(out io.Writer, results []driver.FileResult, check bool) error {
	type jsonResult struct {
		Path      string `json:"path"`
		Identical bool   `json:"identical"`
		Cached    bool   `json:"cached,omitempty"`
		Fragments int    `json:"fragments"`
		Millis    int64  `json:"ms"`
		Error     string `json:"error,omitempty"`
		CheckRun  bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:      res.Path,
			Identical: res.Err == nil && !res.Changed,
			Cached:    res.Cached,
			Fragments: res.Fragments,
			Millis:    res.Elapsed.Milliseconds(),
			CheckRun:  check,
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
