package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/codefang-tech/lingua/pkg/attrs"
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/detect/strategies"
	"github.com/codefang-tech/lingua/pkg/language"
)

// DirectoryAggregator walks a filesystem directory tree and aggregates
// per-language byte statistics over its tracked files, using a bounded pool
// of workers to run detection concurrently.
type DirectoryAggregator struct {
	Registry   *language.Registry
	Pipeline   *detect.Pipeline
	Workers    int
	MaxEntries int
}

// NewDirectoryAggregator builds a DirectoryAggregator over reg's standard
// detection pipeline, sized to GOMAXPROCS workers.
func NewDirectoryAggregator(reg *language.Registry) *DirectoryAggregator {
	return &DirectoryAggregator{
		Registry: reg,
		Pipeline: strategies.NewPipeline(reg),
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Aggregate walks root and returns a Cache of detection results. Detection
// runs across a bounded worker pool; results merge into a single Cache
// under its internal lock. The walk stops early if ctx is canceled.
func (a *DirectoryAggregator) Aggregate(ctx context.Context, root string) (*Cache, error) {
	workers := a.Workers
	if workers <= 0 {
		workers = 1
	}

	cache := NewCache(a.MaxEntries)

	overrides, err := loadGitattributes(root)
	if err != nil {
		return nil, err
	}

	paths := make(chan string, workers*2)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for relPath := range paths {
				select {
				case <-ctx.Done():
					continue
				default:
				}

				entry := a.detectOne(root, relPath, overrides)
				cache.add(entry)
			}
		}()
	}

	walkErr := filepath.Walk(root, func(fullPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		relPath, relErr := filepath.Rel(root, fullPath)
		if relErr != nil {
			return relErr
		}

		paths <- filepath.ToSlash(relPath)

		return nil
	})

	close(paths)
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	return cache, ctx.Err()
}

func (a *DirectoryAggregator) detectOne(root, relPath string, overrides *attrs.File) FileEntry {
	fb, err := blob.NewFileBlob(relPath, filepath.Join(root, relPath))
	if err != nil {
		return FileEntry{Path: relPath}
	}

	return classify(a.Registry, a.Pipeline, fb, overrides, relPath)
}

// classify applies .gitattributes overrides and, failing an override, the
// detection pipeline, to produce a single file's aggregation entry.
func classify(reg *language.Registry, pipeline *detect.Pipeline, b blob.Blob, overrides *attrs.File, relPath string) FileEntry {
	d := blob.New(b)

	var ov attrs.Overrides
	if overrides != nil {
		ov = overrides.Lookup(relPath)
	}

	if d.IsSymlink() {
		return FileEntry{Path: relPath}
	}

	var lang *language.Language

	switch {
	case ov.LanguageSet:
		if l, ok := reg.FindByName(ov.Language); ok {
			lang = reg.Group(l)
		}
	case ov.DetectableSet && !ov.Detectable:
		return FileEntry{Path: relPath, Counted: false}
	default:
		if l, ok := pipeline.Detect(b, false); ok {
			lang = reg.Group(l)
		}
	}

	if lang == nil {
		return FileEntry{Path: relPath}
	}

	vendored := d.IsVendored()
	if ov.VendoredSet {
		vendored = ov.Vendored
	}

	documentation := d.IsDocumentation()
	if ov.DocumentSet {
		documentation = ov.Documentation
	}

	generated := d.IsGenerated()
	if ov.GeneratedSet {
		generated = ov.Generated
	}

	counted := !vendored && !documentation && !generated && !d.IsBinary() && !d.IsEmpty() &&
		(lang.Type == language.TypeProgramming || lang.Type == language.TypeMarkup)

	return FileEntry{
		Path:     relPath,
		Language: lang.Name,
		Bytes:    d.Size(),
		Counted:  counted,
	}
}

func loadGitattributes(root string) (*attrs.File, error) {
	data, err := os.ReadFile(filepath.Join(root, ".gitattributes"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil //nolint:nilnil // absence of .gitattributes is not an error
		}

		return nil, err
	}

	return attrs.Parse(data), nil
}
