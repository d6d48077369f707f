// Package feedfs wraps the file-system operations of the import staging
// area: listing transfer files, extracting archives into the scratch
// directory, hashing and copying media into the files folders.
package feedfs

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TmpDirName is the scratch directory below the import folder. It is scoped
// to one run and purged unconditionally at run end.
const TmpDirName = "tmp"

// FileMeta describes one candidate transfer file.
type FileMeta struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Staging provides file operations rooted at an interface's folders.
type Staging struct{}

// NewStaging creates a staging file-system accessor
func NewStaging() *Staging {
	return &Staging{}
}

// ListByExt returns the files directly below dir whose extension is in
// exts (case-insensitive, without dot). A missing directory yields an empty
// list, not an error.
func (s *Staging) ListByExt(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read import folder: %w", err)
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
		if allowed[ext] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Meta returns modification time and size of a file
func (s *Staging) Meta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{Path: path, ModTime: info.ModTime(), Size: info.Size()}, nil
}

// FileSize returns the size of a file in bytes, or 0 if it does not exist
func (s *Staging) FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Copy copies src to dst, creating the destination directory tree.
func (s *Staging) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Sync()
}

// Hash returns the hex md5 content hash of a file
func (s *Staging) Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Remove deletes a single file
func (s *Staging) Remove(path string) error {
	return os.Remove(path)
}

// RemoveDir deletes a directory tree
func (s *Staging) RemoveDir(path string) error {
	return os.RemoveAll(path)
}

// Purge empties a directory without removing it. A missing directory is
// not an error.
func (s *Staging) Purge(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// IsValidMD5 reports whether s looks like a hex md5 digest
func IsValidMD5(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// FormatSize renders a byte count for the operator view
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
