package cachebust

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dendrascience/cachebust/metrics"
	"github.com/dendrascience/cachebust/util"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBust(t *testing.T) {
	dir := newPublicDir(t)

	tests := []struct {
		name    string
		builder *Builder
		path    string
		want    string
	}{
		{
			name:    "file",
			builder: NewBuilder(),
			path:    "/files/styles.css",
			want:    "/files/" + fixtureHash + ".styles.css",
		},
		{
			name:    "file with prefix",
			builder: NewBuilder().Prefix("cache"),
			path:    "/files/styles.css",
			want:    "/files/cache-" + fixtureHash + ".styles.css",
		},
		{
			name:    "path",
			builder: NewBuilder().BustMethod(Path),
			path:    "/files/styles.css",
			want:    "/files/" + fixtureHash + "/styles.css",
		},
		{
			name:    "path with prefix",
			builder: NewBuilder().BustMethod(Path).Prefix("cache"),
			path:    "/files/styles.css",
			want:    "/files/cache-" + fixtureHash + "/styles.css",
		},
		{
			name:    "query",
			builder: NewBuilder().BustMethod(Query),
			path:    "/files/styles.css",
			want:    "/files/styles.css?c=" + fixtureHash,
		},
		{
			name:    "query with custom param",
			builder: NewBuilder().BustMethod(Query).QueryParam("cache"),
			path:    "/files/styles.css",
			want:    "/files/styles.css?cache=" + fixtureHash,
		},
		{
			name:    "query ignores prefix",
			builder: NewBuilder().BustMethod(Query).Prefix("cache"),
			path:    "/files/styles.css",
			want:    "/files/styles.css?c=" + fixtureHash,
		},
		{
			name:    "query keeps path untouched",
			builder: NewBuilder().BustMethod(Query),
			path:    "files/styles.css/",
			want:    "files/styles.css/?c=" + fixtureHash,
		},
		{
			name:    "query escapes param",
			builder: NewBuilder().BustMethod(Query).QueryParam("a b"),
			path:    "/files/styles.css",
			want:    "/files/styles.css?a+b=" + fixtureHash,
		},
		{
			name:    "query appends to existing query",
			builder: NewBuilder().BustMethod(Query),
			path:    "/files/styles.css?media=print#top",
			want:    "/files/styles.css?media=print&c=" + fixtureHash + "#top",
		},
		{
			name:    "query after bare question mark",
			builder: NewBuilder().BustMethod(Query),
			path:    "/files/styles.css?",
			want:    "/files/styles.css?c=" + fixtureHash,
		},
		{
			name:    "file without leading slash",
			builder: NewBuilder(),
			path:    "files/styles.css",
			want:    "/files/" + fixtureHash + ".styles.css",
		},
		{
			name:    "file with trailing slash",
			builder: NewBuilder(),
			path:    "/files/styles.css/",
			want:    "/files/" + fixtureHash + ".styles.css",
		},
		{
			name:    "file keeps query and fragment",
			builder: NewBuilder(),
			path:    "/files/styles.css?media=print#top",
			want:    "/files/" + fixtureHash + ".styles.css?media=print#top",
		},
		{
			name:    "path keeps query",
			builder: NewBuilder().BustMethod(Path),
			path:    "/files/styles.css?v=2",
			want:    "/files/" + fixtureHash + "/styles.css?v=2",
		},
		{
			name:    "other seed",
			builder: NewBuilder().Seed("deadbeef"),
			path:    "/files/styles.css",
			want:    "/files/" + fixtureHashOtherSeed + ".styles.css",
		},
		{
			name:    "file contents",
			builder: NewBuilder().UseFileContents(true),
			path:    "/files/styles.css",
			want:    "/files/" + fixtureContentHash + ".styles.css",
		},
		{
			name:    "sha256",
			builder: NewBuilder().Algorithm("sha256"),
			path:    "/files/styles.css",
			want:    "/files/" + fixtureSHA256 + ".styles.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.builder.PublicDirectory(dir))
			got, err := e.Bust(tt.path)
			if err != nil {
				t.Fatalf("Bust(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Bust(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestBustNestedAndRootAssets(t *testing.T) {
	dir := newPublicDir(t)
	writeAsset(t, dir, "app.js", "console.log(1)\n")
	writeAsset(t, dir, "a/b/c/logo.svg", "<svg/>")

	e := newEngine(t, NewBuilder().PublicDirectory(dir))
	for _, tc := range []struct {
		path   string
		file   string
		folder string
	}{
		{path: "/app.js", folder: "/", file: "app.js"},
		{path: "/a/b/c/logo.svg", folder: "/a/b/c/", file: "logo.svg"},
	} {
		got, err := e.Bust(tc.path)
		if err != nil {
			t.Fatalf("Bust(%q) error = %v", tc.path, err)
		}
		want := tc.folder + fixtureHash + "." + tc.file
		if got != want {
			t.Errorf("Bust(%q) = %v, want %v", tc.path, got, want)
		}
	}
}

func TestBustDisabledIsIdentityWithoutIO(t *testing.T) {
	dir := newPublicDir(t)
	paths := []string{"/files/styles.css", "/files/missing.css", "", "weird//path/?q=1#f"}

	for _, method := range []BustMethod{File, Path, Query} {
		t.Run(method.String(), func(t *testing.T) {
			fsys := &countingFS{FileSystem: util.OSFileSystem{}}
			e := newEngine(t, NewBuilder().
				Enabled(false).
				PublicDirectory(dir).
				BustMethod(method).
				FileSystem(fsys))
			fsys.calls.Store(0)

			for _, p := range paths {
				got, err := e.Bust(p)
				if err != nil {
					t.Fatalf("Bust(%q) error = %v", p, err)
				}
				if got != p {
					t.Errorf("Bust(%q) = %q, want unchanged", p, got)
				}
				got, err = e.QueryBust(p, PublicDir("/does/not/exist"))
				if err != nil || got != p {
					t.Errorf("QueryBust(%q) = %q, %v, want unchanged", p, got, err)
				}
			}
			if n := fsys.calls.Load(); n != 0 {
				t.Errorf("disabled engine made %d filesystem calls", n)
			}
		})
	}
}

func TestBustMissingAsset(t *testing.T) {
	dir := newPublicDir(t)
	for _, method := range []BustMethod{File, Path, Query} {
		t.Run(method.String(), func(t *testing.T) {
			e := newEngine(t, NewBuilder().PublicDirectory(dir).BustMethod(method))
			_, err := e.Bust("/files/missing.css")
			if !errors.Is(err, ErrAssetNotFound) {
				t.Fatalf("Bust() error = %v, want %v", err, ErrAssetNotFound)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Bust() error = %v, want wrapped fs.ErrNotExist", err)
			}
			var cbErr *Error
			if !errors.As(err, &cbErr) || cbErr.Value != "/files/missing.css" {
				t.Errorf("Bust() error value = %+v, want /files/missing.css", cbErr)
			}
		})
	}
}

func TestBustDirectoryIsNotAnAsset(t *testing.T) {
	dir := newPublicDir(t)
	e := newEngine(t, NewBuilder().PublicDirectory(dir))
	for _, p := range []string{"/files", "/", ""} {
		_, err := e.Bust(p)
		if !errors.Is(err, ErrAssetNotFound) || !errors.Is(err, util.ErrExpectedFile) {
			t.Errorf("Bust(%q) error = %v, want %v wrapping %v", p, err, ErrAssetNotFound, util.ErrExpectedFile)
		}
	}
}

func TestBustOverriddenPublicDir(t *testing.T) {
	dir := newPublicDir(t)
	e := newEngine(t, NewBuilder())

	got, err := e.Bust("/files/styles.css", PublicDir(dir))
	if err != nil {
		t.Fatalf("Bust() error = %v", err)
	}
	if want := "/files/" + fixtureHash + ".styles.css"; got != want {
		t.Errorf("Bust() = %v, want %v", got, want)
	}

	invalid := dir + "Some/Invalid/Directory"
	_, err = e.Bust("/files/styles.css", PublicDir(invalid))
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("Bust() error = %v, want %v", err, ErrDirectoryNotFound)
	}
	var cbErr *Error
	if !errors.As(err, &cbErr) || cbErr.Value != invalid {
		t.Errorf("Bust() error value = %+v, want %q", cbErr, invalid)
	}
}

func TestBustDotDotStaysInPublicDir(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "public")
	writeAsset(t, public, "files/styles.css", fixtureCSS)
	writeAsset(t, root, "secret.txt", "secret")

	e := newEngine(t, NewBuilder().PublicDirectory(public))
	if _, err := e.Bust("/../secret.txt"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Bust(/../secret.txt) error = %v, want %v", err, ErrAssetNotFound)
	}
	diskPath, err := e.DiskPath("/files/../files/styles.css")
	if err != nil {
		t.Fatalf("DiskPath() error = %v", err)
	}
	if want := filepath.Join(public, "files", "styles.css"); diskPath != want {
		t.Errorf("DiskPath() = %v, want %v", diskPath, want)
	}
}

func TestBustIsNotIdempotent(t *testing.T) {
	dir := newPublicDir(t)

	t.Run("file", func(t *testing.T) {
		e := newEngine(t, NewBuilder().PublicDirectory(dir))
		once, err := e.Bust("/files/styles.css")
		if err != nil {
			t.Fatal(err)
		}
		// The busted name is not on disk, so busting again fails.
		if _, err := e.Bust(once); !errors.Is(err, ErrAssetNotFound) {
			t.Errorf("Bust(%q) error = %v, want %v", once, err, ErrAssetNotFound)
		}

		// With the busted name present, the hash nests.
		writeAsset(t, dir, "files/"+fixtureHash+".styles.css", fixtureCSS)
		twice, err := e.Bust(once)
		if err != nil {
			t.Fatal(err)
		}
		if want := "/files/" + fixtureHash + "." + fixtureHash + ".styles.css"; twice != want {
			t.Errorf("Bust(Bust(p)) = %v, want %v", twice, want)
		}
	})

	t.Run("query", func(t *testing.T) {
		e := newEngine(t, NewBuilder().PublicDirectory(dir).BustMethod(Query))
		once, err := e.Bust("/files/styles.css")
		if err != nil {
			t.Fatal(err)
		}
		twice, err := e.Bust(once)
		if err != nil {
			t.Fatal(err)
		}
		if want := "/files/styles.css?c=" + fixtureHash + "&c=" + fixtureHash; twice != want {
			t.Errorf("Bust(Bust(p)) = %v, want %v", twice, want)
		}
	})
}

func TestQueryBustIgnoresConfiguredMethod(t *testing.T) {
	dir := newPublicDir(t)
	e := newEngine(t, NewBuilder().PublicDirectory(dir).BustMethod(Path).Prefix("cache"))
	got, err := e.QueryBust("/files/styles.css")
	if err != nil {
		t.Fatalf("QueryBust() error = %v", err)
	}
	if want := "/files/styles.css?c=" + fixtureHash; got != want {
		t.Errorf("QueryBust() = %v, want %v", got, want)
	}
}

func TestHash(t *testing.T) {
	dir := newPublicDir(t)
	e := newEngine(t, NewBuilder().PublicDirectory(dir).Prefix("cache"))

	h, err := e.Hash("/files/styles.css")
	if err != nil || h != fixtureHash {
		t.Errorf("Hash() = %v, %v, want %v", h, err, fixtureHash)
	}
	for i := 0; i < 3; i++ {
		again, _ := e.Hash("/files/styles.css")
		if again != h {
			t.Fatalf("Hash() not stable: %v then %v", h, again)
		}
	}

	ph, err := e.PrefixedHash("/files/styles.css")
	if err != nil || ph != "cache-"+fixtureHash {
		t.Errorf("PrefixedHash() = %v, %v, want cache-%v", ph, err, fixtureHash)
	}

	noPrefix := newEngine(t, e.Config().Builder().Prefix(""))
	ph, err = noPrefix.PrefixedHash("/files/styles.css")
	if err != nil || ph != fixtureHash {
		t.Errorf("PrefixedHash() without prefix = %v, %v, want %v", ph, err, fixtureHash)
	}

	if _, err := e.Hash("/files/missing.css"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Hash(missing) error = %v, want %v", err, ErrAssetNotFound)
	}
}

func TestHashFollowsAssetIdentity(t *testing.T) {
	dir := newPublicDir(t)
	asset := filepath.Join(dir, "files", "styles.css")

	byMTime := newEngine(t, NewBuilder().PublicDirectory(dir))
	byContent := newEngine(t, NewBuilder().PublicDirectory(dir).UseFileContents(true))

	mtimeBefore, _ := byMTime.Hash("/files/styles.css")
	contentBefore, _ := byContent.Hash("/files/styles.css")

	// Same content, new mtime: only the mtime hash moves.
	later := time.Unix(fixtureMTime+60, 0)
	if err := os.Chtimes(asset, later, later); err != nil {
		t.Fatal(err)
	}
	mtimeAfter, _ := byMTime.Hash("/files/styles.css")
	contentAfter, _ := byContent.Hash("/files/styles.css")
	if mtimeAfter == mtimeBefore {
		t.Error("mtime hash unchanged after touching the asset")
	}
	if contentAfter != contentBefore {
		t.Error("content hash changed although content did not")
	}

	// New content, original mtime: only the content hash moves.
	writeAsset(t, dir, "files/styles.css", "body { color: blue; }\n")
	mtimeRestored, _ := byMTime.Hash("/files/styles.css")
	contentChanged, _ := byContent.Hash("/files/styles.css")
	if mtimeRestored != mtimeBefore {
		t.Errorf("mtime hash = %v, want %v", mtimeRestored, mtimeBefore)
	}
	if contentChanged != "bee2966c" {
		t.Errorf("content hash = %v, want bee2966c", contentChanged)
	}
}

func TestBustFromEmbeddedFS(t *testing.T) {
	mapFS := fstest.MapFS{
		"static/files/styles.css": &fstest.MapFile{
			Data:    []byte(fixtureCSS),
			ModTime: time.Unix(fixtureMTime, 0),
		},
	}
	e := newEngine(t, NewBuilder().
		FileSystem(util.FromFS(mapFS)).
		PublicDirectory("static").
		BustMethod(Path))

	got, err := e.Bust("/files/styles.css")
	if err != nil {
		t.Fatalf("Bust() error = %v", err)
	}
	if want := "/files/" + fixtureHash + "/styles.css"; got != want {
		t.Errorf("Bust() = %v, want %v", got, want)
	}

	if _, err := NewBuilder().FileSystem(util.FromFS(mapFS)).PublicDirectory("public").Build(); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Build() error = %v, want %v", err, ErrDirectoryNotFound)
	}
}

func TestBustMetrics(t *testing.T) {
	dir := newPublicDir(t)
	e := newEngine(t, NewBuilder().PublicDirectory(dir).BustMethod(Path))

	busts := testutil.ToFloat64(metrics.Busts.WithLabelValues("path"))
	missing := testutil.ToFloat64(metrics.Errors.WithLabelValues("asset_not_found"))

	if _, err := e.Bust("/files/styles.css"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Bust("/files/missing.css"); err == nil {
		t.Fatal("Bust(missing) succeeded")
	}

	if got := testutil.ToFloat64(metrics.Busts.WithLabelValues("path")); got != busts+1 {
		t.Errorf("busts_total{method=path} = %v, want %v", got, busts+1)
	}
	if got := testutil.ToFloat64(metrics.Errors.WithLabelValues("asset_not_found")); got != missing+1 {
		t.Errorf("errors_total{kind=asset_not_found} = %v, want %v", got, missing+1)
	}
}

func TestZeroConfigEngine(t *testing.T) {
	e := New(Config{})

	got, err := e.Bust("/files/styles.css")
	if err != nil || got != "/files/styles.css" {
		t.Errorf("Bust() = %q, %v, want identity", got, err)
	}
	if _, err := e.Hash("/files/styles.css"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Hash() error = %v, want %v", err, ErrInvalidConfig)
	}
	if _, err := e.DiskPath("/files/styles.css"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("DiskPath() error = %v, want %v", err, ErrInvalidConfig)
	}
	if _, ok := e.RecoverAsset("/files/43cb9286.styles.css"); ok {
		t.Error("RecoverAsset() succeeded on zero config")
	}
}
