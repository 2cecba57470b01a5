package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mbeaumont/dircomp/pkg/filter"
	"github.com/mbeaumont/dircomp/pkg/models"
)

// Error reports a root that could not be scanned. It is fatal for the
// whole run; per-file problems inside the tree are not.
type Error struct {
	Root string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Root, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Scanner walks a root directory and produces the set of qualifying
// relative paths. Two scanners (or two Scan calls) share no mutable
// state and may run concurrently.
type Scanner struct {
	filter *filter.Filter
	log    zerolog.Logger
}

// New creates a scanner using the given compiled filter.
func New(f *filter.Filter, log zerolog.Logger) *Scanner {
	return &Scanner{filter: f, log: log}
}

type workItem struct {
	abs string
	rel string // slash-separated, empty for the root itself
}

// Scan enumerates the tree rooted at root, applying the filter to prune
// directories and admit files. Relative paths are normalized to forward
// slashes. Directory traversal uses an explicit worklist with a
// visited-identity guard so symlink loops and deep trees are safe.
func (s *Scanner) Scan(ctx context.Context, root string) (*models.FileSet, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &Error{Root: root, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &Error{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Root: root, Err: fmt.Errorf("not a directory")}
	}

	set := models.NewFileSet(abs)
	visited := make(map[string]struct{})
	if canon, err := filepath.EvalSymlinks(abs); err == nil {
		visited[canon] = struct{}{}
	}

	stack := []workItem{{abs: abs, rel: ""}}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, &Error{Root: root, Err: ctx.Err()}
		default:
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(item.abs)
		if err != nil {
			if item.rel == "" {
				return nil, &Error{Root: root, Err: err}
			}
			s.log.Warn().Err(err).Str("dir", item.abs).Msg("skipping unreadable directory")
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			childAbs := filepath.Join(item.abs, name)
			childRel := name
			if item.rel != "" {
				childRel = item.rel + "/" + name
			}

			switch {
			case entry.IsDir():
				if next, ok := s.enterDir(name, childAbs, visited); ok {
					stack = append(stack, workItem{abs: next, rel: childRel})
				}

			case entry.Type()&fs.ModeSymlink != 0:
				// Follow the link; broken links are skipped
				target, err := os.Stat(childAbs)
				if err != nil {
					s.log.Debug().Err(err).Str("path", childAbs).Msg("skipping broken symlink")
					continue
				}
				if target.IsDir() {
					if next, ok := s.enterDir(name, childAbs, visited); ok {
						stack = append(stack, workItem{abs: next, rel: childRel})
					}
					continue
				}
				s.admit(set, childRel, name, target)

			case entry.Type().IsRegular():
				info, err := entry.Info()
				if err != nil {
					s.log.Debug().Err(err).Str("path", childAbs).Msg("skipping unreadable entry")
					continue
				}
				s.admit(set, childRel, name, info)
			}
		}
	}

	s.log.Debug().Str("root", abs).Int("files", set.Len()).Msg("scan complete")
	return set, nil
}

// enterDir applies directory pruning and the cycle guard. It returns the
// path to descend into and whether descent should happen at all.
func (s *Scanner) enterDir(name, abs string, visited map[string]struct{}) (string, bool) {
	if !s.filter.IncludeDir(name) {
		return "", false
	}

	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	if _, seen := visited[canon]; seen {
		s.log.Debug().Str("dir", abs).Msg("skipping already visited directory")
		return "", false
	}
	visited[canon] = struct{}{}
	return abs, true
}

func (s *Scanner) admit(set *models.FileSet, relPath, baseName string, info fs.FileInfo) {
	if !s.filter.IncludeFile(relPath, baseName) {
		return
	}
	set.Add(relPath, models.FileMeta{
		Size:    info.Size(),
		ModTime: info.ModTime(),
	})
}
