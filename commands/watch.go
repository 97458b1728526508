package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cblocks/archive"
	"cblocks/common"
	"cblocks/state"
	"cblocks/storage"
)

// editors tend to produce several events for single save
const debounce = 300 * time.Millisecond

func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}
	mode, err := common.ParseRenderMode(cmd.String("mode"))
	if err != nil {
		log.Warn("Unknown render mode requested, switching to static", zap.Error(err))
		mode = common.RenderModeStatic
	}
	// rendered files are going to be replaced over and over
	env.Mode, env.Overwrite = mode, true

	if err := renderSource(ctx, src, dst, env, log); err != nil {
		log.Warn("Initial rendering incomplete", zap.Error(err))
	}

	w, err := NewWatcher(src, dst, env, log)
	if err != nil {
		return err
	}
	log.Info("Watching for changes", zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", mode))
	return w.Run(ctx)
}

// Watcher re-renders block documents when they change.
type Watcher struct {
	src, dst string
	root     string // watched directory
	single   bool   // src is a file
	env      *state.LocalEnv
	log      *zap.Logger
	debounce time.Duration

	// rendered is called after every re-rendering, used by tests
	rendered func(rel string, err error)
}

func NewWatcher(src, dst string, env *state.LocalEnv, log *zap.Logger) (*Watcher, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	w := &Watcher{src: src, dst: dst, root: src, env: env, log: log, debounce: debounce}
	if !fi.IsDir() {
		w.root, w.single = filepath.Dir(src), true
	}
	return w, nil
}

// Run blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addDirs(fw, w.root); err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if rel, ok := w.relevant(fw, event); ok {
				pending[rel] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File watcher error", zap.Error(err))

		case <-timer.C:
			w.flush(ctx, pending)
			clear(pending)
		}
	}
}

// relevant filters events and returns source relative document name.
func (w *Watcher) relevant(fw *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if event.Has(fsnotify.Create) && !w.single {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := w.addDirs(fw, event.Name); err != nil {
				w.log.Warn("Unable to watch directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return "", false
		}
	}
	if w.single {
		if filepath.Clean(event.Name) != filepath.Clean(w.src) {
			return "", false
		}
		return filepath.Base(w.src), true
	}
	if !storage.IsDocument(event.Name) {
		return "", false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return "", false
	}
	return rel, true
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	names := make([]string, 0, len(pending))
	for rel := range pending {
		names = append(names, rel)
	}
	sort.Sort(natural.StringSlice(names))

	for _, rel := range names {
		var err error
		if w.single && archive.IsArchive(w.src) {
			// bundle is re-rendered as a whole
			err = renderArchive(ctx, w.src, w.dst, w.env, w.log)
		} else {
			err = renderDocument(ctx, filepath.Join(w.root, rel), rel, w.dst, w.env, w.log)
		}
		if err != nil {
			w.log.Error("Unable to render document", zap.String("file", rel), zap.Error(err))
		}
		if w.rendered != nil {
			w.rendered(rel, err)
		}
	}
}

func (w *Watcher) addDirs(fw *fsnotify.Watcher, dir string) error {
	if w.single {
		return fw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == w.dst {
			// output placed inside source must not trigger itself
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		return nil
	})
}
