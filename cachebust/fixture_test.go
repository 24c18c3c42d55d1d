package cachebust

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dendrascience/cachebust/util"
)

const (
	fixtureSeed  = "a4bb8768"
	fixtureCSS   = "body { color: red; }\n"
	fixtureMTime = 1420070400

	// crc32("1420070400" + "a4bb8768")
	fixtureHash = "43cb9286"
	// crc32("1420070400" + "deadbeef")
	fixtureHashOtherSeed = "51909e93"
	// crc32(fixtureCSS + "a4bb8768")
	fixtureContentHash = "92085fef"
	// sha256("1420070400" + "a4bb8768")
	fixtureSHA256 = "45ca8bec398a03255e21f1e957c9b105b0b121627610715d693c9e949572121f"
)

// newPublicDir creates a public directory holding files/styles.css with a
// pinned modification time.
func newPublicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeAsset(t, dir, "files/styles.css", fixtureCSS)
	return dir
}

func writeAsset(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Unix(fixtureMTime, 0)
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return p
}

func newEngine(t *testing.T, b *Builder) *Engine {
	t.Helper()
	e, err := b.Engine()
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	return e
}

// countingFS records every filesystem access.
type countingFS struct {
	util.FileSystem
	calls atomic.Int64
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	c.calls.Add(1)
	return c.FileSystem.Stat(name)
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.calls.Add(1)
	return c.FileSystem.ReadFile(name)
}
