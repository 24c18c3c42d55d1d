package util

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"time"
)

// FileSystem is the read-only view of disk that cachebust needs. Names are
// host paths for OSFileSystem and slash paths for FromFS.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem reads from the host filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

type ioFS struct {
	fsys fs.FS
}

// FromFS adapts an fs.FS, such as an embed.FS, to FileSystem. Leading
// slashes are stripped and the empty name refers to the root.
func FromFS(fsys fs.FS) FileSystem {
	return ioFS{fsys: fsys}
}

func (f ioFS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, fsName(name))
}

func (f ioFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, fsName(name))
}

func fsName(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return name
}

// DirExists reports whether name exists and is a directory.
func DirExists(fsys FileSystem, name string) error {
	info, err := fsys.Stat(name)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	return nil
}

// FileExists reports whether name exists and is a regular file.
func FileExists(fsys FileSystem, name string) error {
	info, err := fsys.Stat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrExpectedFile
	}
	return nil
}

// ModTime returns the last-modified time of name.
func ModTime(fsys FileSystem, name string) (time.Time, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
