// Package driver orchestrates the translation pipeline: load, parse,
// analyze, render, write, with an optional disk cache short-circuiting the
// whole chain for unchanged inputs.
package driver

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"catalyst/internal/analyzer"
	"catalyst/internal/cpp"
	"catalyst/internal/diag"
	"catalyst/internal/observ"
	"catalyst/internal/pipeline"
	"catalyst/internal/pyparse"
	"catalyst/internal/render"
	"catalyst/internal/source"
)

// Options configures one translation run.
type Options struct {
	// IndentUnit is the generated code's indentation unit; the analyzer
	// default applies when empty.
	IndentUnit string
	// MaxDiagnostics caps each file's bag.
	MaxDiagnostics int
	// Jobs limits directory-level parallelism; GOMAXPROCS when <= 0.
	Jobs int
	// Cache short-circuits unchanged files when non-nil.
	Cache *DiskCache
	// Progress receives per-file stage events.
	Progress pipeline.ProgressSink
}

const defaultMaxDiagnostics = 256

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result is the outcome of translating one file.
type Result struct {
	Path   string
	FileID source.FileID
	Output string
	Bag    *diag.Bag
	// Passthroughs counts the fragments that degraded to verbatim copies.
	Passthroughs int
	FromCache    bool
	Timing       observ.Report
	// Stages holds per-stage durations; the write stage is recorded by
	// whoever writes the output.
	Stages pipeline.Timings
}

// Degraded reports whether the output contains pass-through fragments.
func (r *Result) Degraded() bool { return r != nil && r.Passthroughs > 0 }

// TranslateFile runs the full pipeline for one already-loaded file. The
// parser is owned by the caller: tree-sitter parsers are not safe for
// concurrent use, so the parallel driver hands each worker its own.
func TranslateFile(ctx context.Context, parser *pyparse.Parser, fileSet *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file := fileSet.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	display := file.Path

	if opts.Cache != nil {
		key := TranslationKey(file, opts.IndentUnit)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok && payload.Schema == diskCacheSchemaVersion {
			rehydrateDiags(bag, payload.Diags, id)
			emitDone(opts.Progress, display, payload.Passthroughs, 0)
			return &Result{
				Path:         file.Path,
				FileID:       id,
				Output:       payload.Output,
				Bag:          bag,
				Passthroughs: payload.Passthroughs,
				FromCache:    true,
			}, nil
		}
	}

	timer := observ.NewTimer()
	var stages pipeline.Timings
	started := time.Now()

	pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	idx := timer.Begin(string(pipeline.StageParse))
	mod, err := parser.ParseModule(file, rep)
	stages.Set(pipeline.StageParse, timer.End(idx, ""))
	if err != nil {
		pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err})
		return nil, err
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageAnalyze, Status: pipeline.StatusWorking})
	idx = timer.Begin(string(pipeline.StageAnalyze))
	az := analyzer.New(file, rep, analyzer.Options{IndentUnit: opts.IndentUnit})
	unit := az.Run(mod)
	stages.Set(pipeline.StageAnalyze, timer.End(idx, ""))

	pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	idx = timer.Begin(string(pipeline.StageRender))
	output := render.Finalize(unit, file, az.IndentUnit())
	stages.Set(pipeline.StageRender, timer.End(idx, ""))

	passthroughs := countPassthroughs(unit)
	res := &Result{
		Path:         file.Path,
		FileID:       id,
		Output:       output,
		Bag:          bag,
		Passthroughs: passthroughs,
		Timing:       timer.Report(),
		Stages:       stages,
	}

	if opts.Cache != nil {
		key := TranslationKey(file, opts.IndentUnit)
		// Cache failures only cost the next run a retranslation.
		_ = opts.Cache.Put(key, &DiskPayload{
			Schema:       diskCacheSchemaVersion,
			Path:         file.Path,
			Output:       output,
			Passthroughs: passthroughs,
			Diags:        cacheDiags(bag),
		})
	}

	emitDone(opts.Progress, display, passthroughs, time.Since(started))
	return res, nil
}

func emitDone(sink pipeline.ProgressSink, file string, passthroughs int, elapsed time.Duration) {
	status := pipeline.StatusDone
	if passthroughs > 0 {
		status = pipeline.StatusDegraded
	}
	pipeline.Emit(sink, pipeline.Event{File: file, Stage: pipeline.StageRender, Status: status, Elapsed: elapsed})
}

func countPassthroughs(unit *cpp.File) int {
	count := 0
	for _, key := range unit.FunctionOrder() {
		fn, ok := unit.Function(key)
		if !ok {
			continue
		}
		for _, frag := range fn.Lines {
			if frag.Reason != "" {
				count++
			}
		}
	}
	return count
}

// OutputPath maps a source path onto its generated counterpart.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".cpp"
}
