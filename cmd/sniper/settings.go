package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sniper/internal/driver"
	"sniper/internal/format"
	"sniper/internal/observ"
	"sniper/internal/project"
)

// settings is the merged view of flags and sniper.toml for one command.
type settings struct {
	cfg     *project.Config
	files   []string
	baseDir string
	jobs    int
	format  format.Options
	quiet   bool
	timings bool
	ui      uiMode
}

// loadSettings resolves the config file and the Java files named by paths.
// Without paths the [run].include list of the config is used, then ".".
func loadSettings(cmd *cobra.Command, paths []string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	var cfg *project.Config
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
	} else {
		cfg, err = project.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg, jobs: jobs, quiet: quiet, timings: timings, ui: mode, baseDir: "."}
	if cfg.Path != "" {
		s.baseDir = filepath.Dir(cfg.Path)
	}
	if !flags.Changed("jobs") && cfg.Run.Jobs > 0 {
		s.jobs = cfg.Run.Jobs
	}
	s.format.IndentWidth = cfg.Format.IndentWidth
	if cfg.Format.UseTabs != nil {
		s.format.UseTabs = *cfg.Format.UseTabs
	} else {
		s.format.InferTabs = true
	}

	if len(paths) == 0 {
		for _, inc := range cfg.Run.Include {
			paths = append(paths, filepath.Join(s.baseDir, filepath.FromSlash(inc)))
		}
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}
	s.files, err = driver.ListJavaFiles(paths, cfg.Run.Exclude)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// run executes the driver, with the progress UI when it is enabled.
func (s *settings) run(cmd *cobra.Command, title string, opts driver.Options, stdout bool) ([]driver.FileResult, error) {
	opts.Jobs = s.jobs
	opts.Format = s.format
	if s.timings {
		opts.Timer = observ.NewTimer()
		defer func() { fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary()) }()
	}
	if shouldUseTUI(s.ui, len(s.files), stdout) {
		return runWithUI(cmd.Context(), title, s.files, opts)
	}
	return driver.Run(cmd.Context(), s.files, opts)
}

// reportErr prints a per-file failure. Driver errors already name the file.
func reportErr(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errColor.Sprint("error:"), err)
}
