package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"catalyst/internal/driver"
	"catalyst/internal/pipeline"
	"catalyst/internal/source"
	"catalyst/internal/ui"
)

var buildNoCache bool

func init() {
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "bypass the translation cache")
}

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Translate the whole project described by catalyst.toml",
	Long: `Build locates the nearest catalyst.toml (walking up from [dir] or the
current directory), translates every Python file under its source directory
and writes the generated C++ into its output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	setupColor(cmd)
	cfg := flagsOf(cmd)

	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}
	manifest, found, err := loadProjectManifest(startDir)
	if err != nil {
		return err
	}
	if !found {
		return errors.New(noManifestMessage)
	}

	jobs := cfg.jobs
	if jobs == 0 {
		jobs = manifest.Config.Build.Jobs
	}
	opts := driver.Options{
		IndentUnit:     manifest.Config.Build.Indent,
		MaxDiagnostics: cfg.maxDiagnostics,
		Jobs:           jobs,
	}
	if !buildNoCache {
		if cache, err := driver.OpenDiskCache("catalyst"); err == nil {
			opts.Cache = cache
		}
	}

	srcDir := manifest.srcDir()
	files, err := driver.ListSourceFiles(srcDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Python sources under %s", srcDir)
	}

	var (
		fileSet *source.FileSet
		results []driver.DirResult
	)
	if !cfg.quiet && isTerminal(os.Stdout) {
		fileSet, results, err = translateDirWithUI(cmd.Context(), manifest.Config.Package.Name, files, srcDir, opts)
	} else {
		fileSet, results, err = driver.TranslateDir(cmd.Context(), srcDir, opts)
	}
	if err != nil {
		return err
	}

	outDir := manifest.outDir()
	degraded := 0
	written := 0
	failed := 0
	for _, dr := range results {
		printBag(cmd, dr.Bag, fileSet, cfg)
		if dr.Res == nil {
			failed++
			continue
		}
		rel, relErr := filepath.Rel(srcDir, dr.Path)
		if relErr != nil {
			rel = filepath.Base(dr.Path)
		}
		outPath := filepath.Join(outDir, driver.OutputPath(rel))
		writeStart := time.Now()
		if err := driver.WriteOutput(outPath, dr.Res.Output); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		dr.Res.Stages.Set(pipeline.StageWrite, time.Since(writeStart))
		written++
		if dr.Res.Degraded() {
			degraded++
		}
		if cfg.timings && !dr.Res.FromCache {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %.2f ms translate, %.2f ms write\n",
				rel, dr.Res.Timing.TotalMS, millis(dr.Res.Stages.Duration(pipeline.StageWrite)))
		}
	}

	if !cfg.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %d file(s) to %s", manifest.Config.Package.Name, written, outDir)
		if degraded > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d degraded", degraded)
		}
		if failed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d failed to load", failed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if failed > 0 {
		return errors.New("some sources could not be loaded")
	}
	return nil
}

type buildOutcome struct {
	fileSet *source.FileSet
	results []driver.DirResult
	err     error
}

// translateDirWithUI runs the directory translation behind the progress UI,
// feeding pipeline events into the Bubble Tea model until the driver
// finishes.
func translateDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []driver.DirResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		fileSet, results, err := driver.TranslateDir(ctx, dir, optsCopy)
		outcomeCh <- buildOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
