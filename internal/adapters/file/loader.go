package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/compiler"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/fsnotify/fsnotify"
)

// Loader implements ports.TreeLoader and ports.Watchable over a YAML project file.
type Loader struct {
	Path   string
	parser *compiler.Parser
	logger *slog.Logger
	also   []ports.Watchable
}

// NewLoader creates a loader for the project file at path.
func NewLoader(path string, logger *slog.Logger, opts ...compiler.Option) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		Path:   path,
		parser: compiler.NewParser(opts...),
		logger: logger,
	}
}

// Load reads and parses the project file. A project without a name is named
// after the file.
func (l *Loader) Load(ctx context.Context) (*ports.Project, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project %s: %w", l.Path, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	project, err := l.parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if project.Name == "" {
		base := filepath.Base(l.Path)
		project.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return project, nil
}

// Also adds sources whose changes are reported by Watch next to those of
// the project file, such as the store behind textFrom references.
func (l *Loader) Also(sources ...ports.Watchable) *Loader {
	l.also = append(l.also, sources...)
	return l
}

// Watch implements ports.Watchable. Events of the project file and of every
// source given to Also arrive on the same channel.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	if len(l.also) == 0 {
		return l.watchFile(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	own, err := l.watchFile(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	chans := []<-chan string{own}
	for _, src := range l.also {
		ch, err := src.Watch(ctx)
		if err != nil {
			cancel()
			return nil, err
		}
		chans = append(chans, ch)
	}
	return merge(ctx, cancel, chans), nil
}

// merge fans chans into one channel that closes once all of them have.
func merge(ctx context.Context, cancel context.CancelFunc, chans []<-chan string) <-chan string {
	out := make(chan string, 1)
	var wg sync.WaitGroup
	for _, ch := range chans {
		wg.Add(1)
		go func(ch <-chan string) {
			defer wg.Done()
			for evt := range ch {
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}
	go func() {
		wg.Wait()
		cancel()
		close(out)
	}()
	return out
}

// Editors often replace files instead of writing them in place, so the
// parent directory is watched and events are filtered by name.
func (l *Loader) watchFile(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(l.Path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(evt.Name) != filepath.Base(abs) || !evt.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				select {
				case ch <- evt.Name:
				case <-ctx.Done():
					return
				default:
					// A reload is already pending.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Warn("watch error", "path", l.Path, "err", err)
			}
		}
	}()
	return ch, nil
}
