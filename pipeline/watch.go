package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/typebridge/typebridge/errors"
)

// WatchEngine rebuilds the combined declaration file whenever an input
// module changes, with rapid changes debounced into one rebuild.
type WatchEngine struct {
	runner   *Runner
	root     string
	debounce time.Duration
	log      *zap.SugaredLogger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatchEngine creates a watch engine over root.
func NewWatchEngine(runner *Runner, root string, log *zap.SugaredLogger) (*WatchEngine, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	debounce := time.Duration(runner.cfg.Pipeline.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WatchEngine{
		runner:   runner,
		root:     root,
		debounce: debounce,
		log:      log,
		watcher:  watcher,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start performs an initial build, registers all directories under root and
// launches the rebuild loop.
func (e *WatchEngine) Start() error {
	if err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return e.watcher.Add(path)
		}
		return nil
	}); err != nil {
		return errors.Wrapf(err, "failed to watch %s", e.root)
	}

	// Initial build failures are reported but do not stop watching; the
	// next save gets another chance.
	if err := e.runner.Build(e.ctx, e.root); err != nil {
		e.log.Warnw("initial build failed", "error", err)
	}

	e.wg.Add(1)
	go e.loop()
	e.log.Infow("watching for module changes", "root", e.root, "debounce", e.debounce)
	return nil
}

// Stop shuts the engine down and waits for the loop to exit.
func (e *WatchEngine) Stop() {
	e.cancel()
	_ = e.watcher.Close()
	e.wg.Wait()
	e.log.Info("watch engine stopped")
}

func (e *WatchEngine) loop() {
	defer e.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-e.ctx.Done():
			return

		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if !e.relevant(event) {
				continue
			}
			e.log.Debugw("module change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(e.debounce)
				timerC = timer.C
			} else {
				timer.Reset(e.debounce)
			}

		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.log.Warnw("watcher error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := e.runner.Build(e.ctx, e.root); err != nil {
				e.log.Errorw("rebuild failed", "error", err)
			}
		}
	}
}

// relevant filters events down to changes of parser interchange files, plus
// new directories that need registering.
func (e *WatchEngine) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Create) {
		// New directories must be added to the watch set; fsnotify does not
		// recurse on its own.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = e.watcher.Add(event.Name)
		}
	}
	if !strings.HasSuffix(event.Name, moduleExt) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}
