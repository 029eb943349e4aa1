package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"tuplegen/internal/diag"
	"tuplegen/internal/source"
)

// collectRustFiles expands directories into their *.rs files; explicit file
// arguments are kept whatever their extension. The result is sorted.
func collectRustFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// target/ и скрытые каталоги не обходим
				if path != root && (d.Name() == "target" || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".rs") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return slices.Compact(files), nil
}

// ExpandPaths expands every file under paths concurrently. Results follow
// the sorted file order; a load failure becomes an IO diagnostic of that file.
func ExpandPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*FileResult, error) {
	files, err := collectRustFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	// FileSet заполняется до запуска горутин и дальше только читается
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				results[i] = loadFailure(path, loadErrs[i], opts)
				return nil
			}
			results[i] = ExpandFile(fileSet, ids[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, err error, opts Options) *FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.NoSpan, fmt.Sprintf("failed to load %s: %v", path, err)))
	return &FileResult{Path: path, FileID: source.NoFile, Bag: bag}
}

// TargetPath is where the output for path goes: in place when outDir is
// empty, otherwise under outDir at path's location relative to root.
func TargetPath(path, root, outDir string) (string, error) {
	if outDir == "" {
		return path, nil
	}
	rel := filepath.Base(path)
	if root != "" {
		r, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.Join(outDir, rel), nil
}

// WriteResult atomically writes res.Output to target.
func WriteResult(res *FileResult, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".tuplegen-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(res.Output); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
