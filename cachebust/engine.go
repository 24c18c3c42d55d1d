package cachebust

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/cachebust/metrics"
	"github.com/dendrascience/cachebust/util"
	"github.com/rs/zerolog"
)

// Engine fingerprints assets and rewrites their public paths. An Engine is
// immutable and safe for concurrent use.
type Engine struct {
	cfg Config
	log zerolog.Logger

	pattern    *regexp.Regexp
	patternErr error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug tracing. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an Engine for cfg, which must come from Builder.Build. An
// engine over the zero Config fails every asset lookup with
// ErrInvalidConfig.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if expr, err := e.buildPattern(); err != nil {
		e.patternErr = err
	} else {
		e.pattern, e.patternErr = regexp.Compile(expr)
	}
	return e
}

// Engine builds the configuration and wraps it in a new Engine.
func (b *Builder) Engine(opts ...Option) (*Engine, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// CallOption adjusts a single engine call.
type CallOption func(*callOptions)

type callOptions struct {
	publicDir *string
}

// PublicDir resolves the asset against dir instead of the configured public
// directory. dir must exist.
func PublicDir(dir string) CallOption {
	return func(o *callOptions) {
		o.publicDir = &dir
	}
}

func collect(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fail records err in the error counter and returns it unchanged.
func (e *Engine) fail(err error) error {
	metrics.Errors.WithLabelValues(errorKind(err)).Inc()
	return err
}

// DiskPath resolves a web path to its location on disk. Any query string
// or fragment is ignored, and ".." segments cannot climb above the public
// directory.
func (e *Engine) DiskPath(webPath string, opts ...CallOption) (string, error) {
	p, err := e.diskPath(webPath, collect(opts))
	if err != nil {
		return "", e.fail(err)
	}
	return p, nil
}

func (e *Engine) diskPath(webPath string, o callOptions) (string, error) {
	fsys := e.cfg.fileSystem
	if fsys == nil {
		return "", ErrInvalidConfig
	}
	dir := e.cfg.publicDirectory
	if o.publicDir != nil {
		dir = *o.publicDir
		if err := util.DirExists(fsys, dir); err != nil {
			return "", newError(ErrDirectoryNotFound, dir, err)
		}
	}

	assetPath, _, _ := splitWebPath(webPath)
	rel := strings.TrimPrefix(path.Clean("/"+strings.Trim(assetPath, "/")), "/")
	diskPath := filepath.Join(dir, filepath.FromSlash(rel))

	if err := util.FileExists(fsys, diskPath); err != nil {
		return "", newError(ErrAssetNotFound, webPath, err)
	}
	return diskPath, nil
}

// Hash returns the seeded digest of the asset at webPath. The digest input
// is the file content when UseFileContents is set and the decimal Unix
// modification time otherwise, followed by the seed.
func (e *Engine) Hash(webPath string, opts ...CallOption) (string, error) {
	h, err := e.hash(webPath, collect(opts))
	if err != nil {
		return "", e.fail(err)
	}
	return h, nil
}

func (e *Engine) hash(webPath string, o callOptions) (string, error) {
	start := time.Now()
	diskPath, err := e.diskPath(webPath, o)
	if err != nil {
		return "", err
	}

	fsys := e.cfg.fileSystem
	source := "mtime"
	var identity []byte
	if e.cfg.useFileContents {
		source = "contents"
		identity, err = fsys.ReadFile(diskPath)
		if err != nil {
			return "", fmt.Errorf("reading asset %s: %w", webPath, err)
		}
	} else {
		mtime, err := util.ModTime(fsys, diskPath)
		if err != nil {
			return "", fmt.Errorf("reading modification time of %s: %w", webPath, err)
		}
		identity = strconv.AppendInt(nil, mtime.Unix(), 10)
	}

	sum := e.cfg.algorithm.Digest(identity, []byte(e.cfg.seed))
	metrics.HashLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
	e.log.Debug().
		Str("asset", webPath).
		Str("disk_path", diskPath).
		Str("source", source).
		Str("algorithm", e.cfg.algorithm.Name).
		Str("hash", sum).
		Msg("hashed asset")
	return sum, nil
}

// PrefixedHash is Hash with the configured prefix prepended as
// "{prefix}-{hash}". Without a prefix it returns the bare hash.
func (e *Engine) PrefixedHash(webPath string, opts ...CallOption) (string, error) {
	h, err := e.prefixedHash(webPath, collect(opts))
	if err != nil {
		return "", e.fail(err)
	}
	return h, nil
}

func (e *Engine) prefixedHash(webPath string, o callOptions) (string, error) {
	h, err := e.hash(webPath, o)
	if err != nil {
		return "", err
	}
	if e.cfg.prefix == "" {
		return h, nil
	}
	return e.cfg.prefix + "-" + h, nil
}
