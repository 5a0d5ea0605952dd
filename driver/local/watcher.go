package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gobeaver/finfo"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// fsWatcher is the subset of fsnotify.Watcher used by Watch
type fsWatcher interface {
	Add(path string) error
	Close() error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
}

type fsnotifyWatcher struct {
	watcher *fsnotify.Watcher
}

// newFSWatcher creates a new file system watcher using fsnotify
var newFSWatcher = func() (fsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &fsnotifyWatcher{watcher: w}, nil
}

func (w *fsnotifyWatcher) Add(path string) error { return w.watcher.Add(path) }
func (w *fsnotifyWatcher) Close() error { return w.watcher.Close() }
func (w *fsnotifyWatcher) Events() <-chan fsnotify.Event { return w.watcher.Events }
func (w *fsnotifyWatcher) Errors() <-chan error { return w.watcher.Errors }

// watchTarget is one watched path. Events on the path itself always count;
// events on entries of a directory count when they match the filter.
type watchTarget struct {
	path  string
	isDir bool
}

// Watch implements finfo.CanWatch using fsnotify for native file system events.
// The filter is a glob matched against entry base names, or against the path
// relative to the watched directory when it contains a separator. A filter
// containing "**" also watches every nested directory.
func (a *Adapter) Watch(ctx context.Context, paths []string, filter string) (finfo.ChangeToken, error) {
	if filter == "" {
		filter = "*"
	}
	g, err := glob.Compile(filter, '/')
	if err != nil {
		return nil, &finfo.PathError{Op: "watch", Path: filter, Err: errors.Join(finfo.ErrInvalidArgument, err)}
	}
	recursive := strings.Contains(filter, "**")

	watcher, err := newFSWatcher()
	if err != nil {
		return nil, &finfo.PathError{Op: "watch", Path: strings.Join(paths, ","), Err: err}
	}

	targets := make([]watchTarget, 0, len(paths))
	for _, p := range paths {
		t, err := addTarget(watcher, filepath.Clean(p), recursive, a.logger)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		targets = append(targets, t)
	}

	token := finfo.NewCallbackChangeToken()

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events():
				if !ok {
					return
				}
				if matchEvent(targets, g, event.Name) {
					a.logger.Debug("change detected",
						zap.String("path", event.Name),
						zap.Stringer("op", event.Op),
					)
					token.SignalChange()
					return // Token is spent after first change
				}
			case err, ok := <-watcher.Errors():
				if !ok {
					return
				}
				a.logger.Warn("watch error", zap.Error(err))
			}
		}
	}()

	return token, nil
}

// addTarget registers path with the watcher. Non-directories are observed
// through their parent so that replacement and creation are seen.
func addTarget(watcher fsWatcher, path string, recursive bool, logger *zap.Logger) (watchTarget, error) {
	info, err := os.Lstat(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return watchTarget{}, pathError("watch", path, err)
	}

	if err == nil && info.IsDir() {
		if err := watcher.Add(path); err != nil {
			return watchTarget{}, pathError("watch", path, err)
		}
		if recursive {
			err := filepath.WalkDir(path, func(sub string, d fs.DirEntry, err error) error {
				if err != nil {
					logger.Warn("watch walk error", zap.String("path", sub), zap.Error(err))
					return nil
				}
				if d.IsDir() && sub != path {
					if err := watcher.Add(sub); err != nil {
						logger.Warn("watch add error", zap.String("path", sub), zap.Error(err))
					}
				}
				return nil
			})
			if err != nil {
				logger.Warn("watch walk error", zap.String("path", path), zap.Error(err))
			}
		}
		return watchTarget{path: path, isDir: true}, nil
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return watchTarget{}, pathError("watch", path, err)
	}
	return watchTarget{path: path}, nil
}

func matchEvent(targets []watchTarget, g glob.Glob, name string) bool {
	name = filepath.Clean(name)
	for _, t := range targets {
		if name == t.path {
			return true
		}
		if !t.isDir {
			continue
		}
		rel, err := filepath.Rel(t.path, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		rel = filepath.ToSlash(rel)
		if g.Match(rel) || g.Match(filepath.Base(name)) {
			return true
		}
	}
	return false
}
