package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"catalyst/internal/diag"
	"catalyst/internal/driver"
	"catalyst/internal/pipeline"
	"catalyst/internal/pyparse"
	"catalyst/internal/source"
)

var (
	translateOut     string
	translateStdout  bool
	translateNoCache bool
)

func init() {
	translateCmd.Flags().StringVarP(&translateOut, "out", "o", "", "output directory (defaults next to each source)")
	translateCmd.Flags().BoolVar(&translateStdout, "stdout", false, "print generated code instead of writing files")
	translateCmd.Flags().BoolVar(&translateNoCache, "no-cache", false, "bypass the translation cache")
}

var translateCmd = &cobra.Command{
	Use:   "translate <file.py|dir>",
	Short: "Translate Python sources to C++",
	Long: `Translate one Python file or every *.py file under a directory into C++.
Statements that cannot be represented are kept as commented-out source with
the reason attached; the run never fails on input the translator does not
understand.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	setupColor(cmd)
	cfg := flagsOf(cmd)

	opts := driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		Jobs:           cfg.jobs,
	}
	if !translateNoCache {
		// Без кэша просто медленнее, не фатально.
		if cache, err := driver.OpenDiskCache("catalyst"); err == nil {
			opts.Cache = cache
		}
	}

	target := args[0]
	st, err := os.Stat(target)
	if err != nil {
		return err
	}

	if st.IsDir() {
		fileSet, results, err := driver.TranslateDir(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
		degraded := 0
		translated := 0
		for _, dr := range results {
			printBag(cmd, dr.Bag, fileSet, cfg)
			if dr.Res == nil {
				continue
			}
			translated++
			if dr.Res.Degraded() {
				degraded++
			}
			if err := emitResult(cmd, dr.Res, cfg); err != nil {
				return err
			}
		}
		if !cfg.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "translated %d file(s), %d degraded\n", translated, degraded)
		}
		return nil
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(target)
	if err != nil {
		return err
	}
	parser, err := pyparse.NewParser()
	if err != nil {
		return err
	}
	defer parser.Close()

	res, err := driver.TranslateFile(cmd.Context(), parser, fileSet, id, opts)
	if err != nil {
		return err
	}
	printBag(cmd, res.Bag, fileSet, cfg)
	if err := emitResult(cmd, res, cfg); err != nil {
		return err
	}
	if cfg.timings {
		printTimings(cmd, res)
	}
	return nil
}

// emitResult writes (or prints) one translation result.
func emitResult(cmd *cobra.Command, res *driver.Result, cfg rootFlags) error {
	if translateStdout {
		fmt.Fprint(cmd.OutOrStdout(), res.Output)
		return nil
	}
	outPath := driver.OutputPath(res.Path)
	if translateOut != "" {
		outPath = filepath.Join(translateOut, filepath.Base(outPath))
	}
	writeStart := time.Now()
	if err := driver.WriteOutput(outPath, res.Output); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	res.Stages.Set(pipeline.StageWrite, time.Since(writeStart))
	if !cfg.quiet {
		note := ""
		if res.FromCache {
			note = " (cached)"
		} else if res.Degraded() {
			note = fmt.Sprintf(" (%d pass-through)", res.Passthroughs)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s%s\n", res.Path, outPath, note)
	}
	return nil
}

var severityPaint = map[string]*color.Color{
	diag.SevError.String():   color.New(color.FgRed, color.Bold),
	diag.SevWarning.String(): color.New(color.FgYellow),
	diag.SevInfo.String():    color.New(color.FgCyan),
}

// paintSeverities colorizes the leading severity word of each diagnostic
// line. color.NoColor already reflects --color and tty detection.
func paintSeverities(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		word, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		if c, found := severityPaint[word]; found {
			lines[i] = c.Sprint(word) + " " + rest
		}
	}
	return strings.Join(lines, "\n")
}

func printBag(cmd *cobra.Command, bag *diag.Bag, fileSet *source.FileSet, cfg rootFlags) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	bag.Dedup()
	fmt.Fprintln(cmd.ErrOrStderr(), paintSeverities(diag.FormatShort(bag.Items(), fileSet, !cfg.quiet)))
}

var reportedStages = []pipeline.Stage{
	pipeline.StageParse, pipeline.StageAnalyze, pipeline.StageRender, pipeline.StageWrite,
}

func printTimings(cmd *cobra.Command, res *driver.Result) {
	if res.FromCache {
		fmt.Fprintln(cmd.ErrOrStderr(), "timings: cached result, nothing ran")
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "timings:")
	for _, stage := range reportedStages {
		if !res.Stages.Has(stage) {
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  %-12s %7.2f ms\n", stage, millis(res.Stages.Duration(stage)))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "  %-12s %7.2f ms\n", "total", millis(res.Stages.Sum(reportedStages...)))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
