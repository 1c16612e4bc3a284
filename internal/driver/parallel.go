package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"catalyst/internal/diag"
	"catalyst/internal/pipeline"
	"catalyst/internal/pyparse"
	"catalyst/internal/source"
)

// DirResult содержит результат трансляции одного файла директории.
type DirResult struct {
	Path   string
	FileID source.FileID
	Res    *Result
	Bag    *diag.Bag
}

// ListSourceFiles возвращает отсортированный список всех *.py файлов в
// директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TranslateDir переводит все *.py файлы директории параллельно. Each worker
// owns its parser; result slots are index-unique so no mutex is needed.
func TranslateDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	pipeline.EmitQueued(opts.Progress, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				pipeline.Emit(opts.Progress, pipeline.Event{
					File: path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: loadErr,
				})
				results[i] = DirResult{Path: path, Bag: bag}
				return nil
			}

			parser, err := pyparse.NewParser()
			if err != nil {
				return err
			}
			defer parser.Close()

			fileID := fileIDs[path]
			res, err := TranslateFile(gctx, parser, fileSet, fileID, opts)
			if err != nil {
				return err
			}
			results[i] = DirResult{Path: path, FileID: fileID, Res: res, Bag: res.Bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
