package cachebust

import (
	"strconv"

	"github.com/dendrascience/cachebust/util"
)

const (
	defaultSeed            = "a4bb8768"
	defaultQueryParam      = "c"
	defaultPublicDirectory = "."
)

// Config is a validated, immutable engine configuration. The zero value is
// not usable; obtain one from Builder.Build.
type Config struct {
	enabled         bool
	algorithm       util.Algorithm
	seed            string
	useFileContents bool
	publicDirectory string
	prefix          string
	bustMethod      BustMethod
	queryParam      string
	fileSystem      util.FileSystem
}

// Enabled reports whether busting is on. A disabled engine returns paths unchanged.
func (c Config) Enabled() bool { return c.enabled }

// Algorithm returns the hash algorithm name.
func (c Config) Algorithm() string { return c.algorithm.Name }

// Seed returns the string appended to every hash input.
func (c Config) Seed() string { return c.seed }

// UseFileContents reports whether file bytes are hashed instead of the mtime.
func (c Config) UseFileContents() bool { return c.useFileContents }

// PublicDirectory returns the directory web paths resolve against.
func (c Config) PublicDirectory() string { return c.publicDirectory }

// Prefix returns the string placed before the hash by the File and Path methods.
func (c Config) Prefix() string { return c.prefix }

// BustMethod returns the method used by Engine.Bust.
func (c Config) BustMethod() BustMethod { return c.bustMethod }

// QueryParam returns the query key used by the Query method.
func (c Config) QueryParam() string { return c.queryParam }

// FileSystem returns the filesystem assets are read from.
func (c Config) FileSystem() util.FileSystem { return c.fileSystem }

// Builder returns a Builder preloaded with c, for deriving a modified
// configuration.
func (c Config) Builder() *Builder {
	return &Builder{
		enabled:         c.enabled,
		algorithm:       c.algorithm.Name,
		seed:            c.seed,
		useFileContents: c.useFileContents,
		publicDirectory: c.publicDirectory,
		prefix:          c.prefix,
		bustMethod:      c.bustMethod,
		queryParam:      c.queryParam,
		fileSystem:      c.fileSystem,
	}
}

// Builder accumulates configuration values. Setters never fail; all
// validation happens in Build.
type Builder struct {
	enabled         bool
	algorithm       string
	seed            string
	useFileContents bool
	publicDirectory string
	prefix          string
	bustMethod      BustMethod
	bustMethodName  *string
	queryParam      string
	fileSystem      util.FileSystem
}

// NewBuilder returns a Builder holding the defaults: enabled, crc32, the
// default seed, mtime hashing, the current directory and the File method.
func NewBuilder() *Builder {
	return &Builder{
		enabled:         true,
		algorithm:       util.DefaultAlgorithm,
		seed:            defaultSeed,
		publicDirectory: defaultPublicDirectory,
		bustMethod:      File,
		queryParam:      defaultQueryParam,
		fileSystem:      util.OSFileSystem{},
	}
}

// Enabled turns busting on or off.
func (b *Builder) Enabled(enabled bool) *Builder {
	b.enabled = enabled
	return b
}

// Algorithm sets the hash algorithm by registered name.
func (b *Builder) Algorithm(name string) *Builder {
	b.algorithm = name
	return b
}

// Seed sets the string mixed into every hash.
func (b *Builder) Seed(seed string) *Builder {
	b.seed = seed
	return b
}

// UseFileContents selects content hashing instead of mtime hashing.
func (b *Builder) UseFileContents(use bool) *Builder {
	b.useFileContents = use
	return b
}

// PublicDirectory sets the directory web paths resolve against.
func (b *Builder) PublicDirectory(dir string) *Builder {
	b.publicDirectory = dir
	return b
}

// Prefix sets the string placed before the hash as "{prefix}-{hash}".
func (b *Builder) Prefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// BustMethod sets the method and discards any earlier BustMethodName.
func (b *Builder) BustMethod(m BustMethod) *Builder {
	b.bustMethod = m
	b.bustMethodName = nil
	return b
}

// BustMethodName sets the method by name; an unknown name fails Build with
// ErrInvalidBustMethod.
func (b *Builder) BustMethodName(name string) *Builder {
	b.bustMethodName = &name
	return b
}

// QueryParam sets the query key used by the Query method. The empty string
// restores the default "c".
func (b *Builder) QueryParam(param string) *Builder {
	b.queryParam = param
	return b
}

// FileSystem sets where assets are read from. Nil means the OS filesystem.
func (b *Builder) FileSystem(fsys util.FileSystem) *Builder {
	b.fileSystem = fsys
	return b
}

// Build validates the accumulated values and returns an immutable Config.
// The public directory is checked against the builder's filesystem.
func (b *Builder) Build() (Config, error) {
	method := b.bustMethod
	if b.bustMethodName != nil {
		m, err := ParseBustMethod(*b.bustMethodName)
		if err != nil {
			return Config{}, err
		}
		method = m
	}
	if !method.Valid() {
		return Config{}, newError(ErrInvalidBustMethod, strconv.Itoa(int(method)), nil)
	}

	algo, ok := util.LookupAlgorithm(b.algorithm)
	if !ok {
		return Config{}, newError(ErrInvalidAlgorithm, b.algorithm, nil)
	}

	fsys := b.fileSystem
	if fsys == nil {
		fsys = util.OSFileSystem{}
	}
	dir := b.publicDirectory
	if dir == "" {
		dir = defaultPublicDirectory
	}
	if err := util.DirExists(fsys, dir); err != nil {
		return Config{}, newError(ErrDirectoryNotFound, dir, err)
	}

	param := b.queryParam
	if param == "" {
		param = defaultQueryParam
	}

	return Config{
		enabled:         b.enabled,
		algorithm:       algo,
		seed:            b.seed,
		useFileContents: b.useFileContents,
		publicDirectory: dir,
		prefix:          b.prefix,
		bustMethod:      method,
		queryParam:      param,
		fileSystem:      fsys,
	}, nil
}

// Options is the plain-data form of a configuration, as read from a config
// file. Nil pointers keep the builder defaults.
type Options struct {
	Enabled         *bool   `toml:"enabled" yaml:"enabled"`
	Algorithm       string  `toml:"algorithm" yaml:"algorithm"`
	Seed            *string `toml:"seed" yaml:"seed"`
	UseFileContents *bool   `toml:"use_file_contents" yaml:"use_file_contents"`
	PublicDirectory string  `toml:"public_dir" yaml:"public_dir"`
	Prefix          string  `toml:"prefix" yaml:"prefix"`
	BustMethod      string  `toml:"bust_method" yaml:"bust_method"`
	QueryParam      string  `toml:"query_param" yaml:"query_param"`
}

// Builder converts o into a Builder on top of the defaults.
func (o Options) Builder() *Builder {
	b := NewBuilder()
	if o.Enabled != nil {
		b.Enabled(*o.Enabled)
	}
	if o.Algorithm != "" {
		b.Algorithm(o.Algorithm)
	}
	if o.Seed != nil {
		b.Seed(*o.Seed)
	}
	if o.UseFileContents != nil {
		b.UseFileContents(*o.UseFileContents)
	}
	if o.PublicDirectory != "" {
		b.PublicDirectory(o.PublicDirectory)
	}
	if o.Prefix != "" {
		b.Prefix(o.Prefix)
	}
	if o.BustMethod != "" {
		b.BustMethodName(o.BustMethod)
	}
	if o.QueryParam != "" {
		b.QueryParam(o.QueryParam)
	}
	return b
}
