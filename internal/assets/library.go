// Package assets loads sprite images from an optional directory and falls
// back to sprites generated in code.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrUnknownSprite is returned when a source is neither on disk nor built in.
var ErrUnknownSprite = errors.New("assets: unknown sprite")

// DefaultTimeout bounds a single asynchronous load.
const DefaultTimeout = 5 * time.Second

// Options configures a Library.
type Options struct {
	// Dir is searched before the built-in sprites. Empty disables it.
	Dir string
	// FS replaces Dir when set.
	FS fs.FS
	// Timeout bounds each asynchronous load. Zero uses DefaultTimeout.
	Timeout time.Duration
	// Sync makes Load call back before returning. Headless runs use it to
	// stay deterministic.
	Sync   bool
	Logger *log.Logger
}

// Library decodes and caches sprite images. It is safe for concurrent use.
type Library struct {
	fsys    fs.FS
	timeout time.Duration
	sync    bool
	logger  *log.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// New creates a library.
func New(opts Options) *Library {
	l := &Library{
		fsys:    opts.FS,
		timeout: opts.Timeout,
		sync:    opts.Sync,
		logger:  opts.Logger,
		cache:   make(map[string]image.Image),
	}
	if l.fsys == nil && opts.Dir != "" {
		l.fsys = os.DirFS(opts.Dir)
	}
	if l.timeout <= 0 {
		l.timeout = DefaultTimeout
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Load decodes src in the background and reports the result through done.
// A load that outlives the timeout or ctx fails with the context error.
func (l *Library) Load(ctx context.Context, src string, done func(image.Image, error)) {
	if l.sync {
		done(l.Decode(ctx, src))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		type result struct {
			img image.Image
			err error
		}
		ch := make(chan result, 1)
		go func() {
			img, err := l.Decode(ctx, src)
			ch <- result{img, err}
		}()

		select {
		case r := <-ch:
			done(r.img, r.err)
		case <-ctx.Done():
			l.logger.Warn("sprite load abandoned", "src", src, "err", ctx.Err())
			done(nil, fmt.Errorf("assets: cannot load %q: %w", src, ctx.Err()))
		}
	}()
}

// Decode returns the image for src, reading the directory first and the
// built-in sprites second. Results are cached.
func (l *Library) Decode(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assets: cannot load %q: %w", src, err)
	}

	l.mu.Lock()
	img, ok := l.cache[src]
	l.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := l.decode(src)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[src] = img
	l.mu.Unlock()
	return img, nil
}

func (l *Library) decode(src string) (image.Image, error) {
	if l.fsys != nil {
		f, err := l.fsys.Open(path.Clean(src))
		switch {
		case err == nil:
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				return nil, fmt.Errorf("assets: cannot decode %q: %w", src, err)
			}
			l.logger.Debug("sprite loaded from disk", "src", src)
			return img, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("assets: cannot open %q: %w", src, err)
		}
	}

	if gen, ok := builtins[src]; ok {
		return gen(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, src)
}

// Builtins returns the names of the generated sprites.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
