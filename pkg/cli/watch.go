package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/helmwave/helmwave-lint/pkg/console"
)

// WatchAndValidate validates the selected files once, then re-validates
// helmwave files whenever they change until ctx is cancelled. Bursts of
// events are coalesced for opts.Config.Debounce.
func WatchAndValidate(ctx context.Context, opts ValidateOptions) error {
	opts.Watch = true
	if err := RunValidate(opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirectories(opts.Paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %d directories for changes...", len(dirs))))
	if opts.Verbose {
		for _, dir := range dirs {
			fmt.Fprintln(os.Stderr, console.FormatLocationMessage(console.ToRelativePath(dir)))
		}
		fmt.Fprintln(os.Stderr, console.FormatVerboseMessage("Press Ctrl+C to stop watching."))
	}

	d := newDebouncer(opts.Config.Debounce, func(files []string) {
		results := ValidateFiles(files, opts.Config.Concurrency, nil)
		if err := printResults(opts, results); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
	})
	defer d.stop()

	explicit := explicitFiles(opts.Paths)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			name := filepath.Clean(event.Name)
			if _, isExplicit := explicit[name]; !isExplicit && !MatchesHelmwaveFile(name, opts.Config.Patterns) {
				continue
			}

			if opts.Verbose {
				fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", name, event.Op.String())))
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				d.forget(name)
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage("Removed: "+console.ToRelativePath(name)))
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				d.add(name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
		}
	}
}

// watchDirectories returns the directories to subscribe to: every directory
// argument and its subdirectories, and the parent of every file argument
func watchDirectories(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var dirs []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			dirs = append(dirs, filepath.Dir(path))
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if p != path && (d.Name()[0] == '.' || slices.Contains(skippedDirs, d.Name())) {
				return filepath.SkipDir
			}
			dirs = append(dirs, filepath.Clean(p))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

func explicitFiles(paths []string) map[string]struct{} {
	files := make(map[string]struct{})
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files[filepath.Clean(path)] = struct{}{}
		}
	}
	return files
}

// debouncer collects changed files and flushes them once no change has
// arrived for delay. Later changes restart the wait. Flushes never overlap.
type debouncer struct {
	mu       sync.Mutex
	flushing sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  map[string]struct{}
	flush    func(files []string)
}

func newDebouncer(delay time.Duration, flush func(files []string)) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]struct{}),
		flush:   flush,
	}
}

func (d *debouncer) add(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[file] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) forget(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, file)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	files := make([]string, 0, len(d.pending))
	for file := range d.pending {
		files = append(files, file)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	if len(files) == 0 {
		return
	}
	slices.Sort(files)

	d.flushing.Lock()
	defer d.flushing.Unlock()
	d.flush(files)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
