package feedfs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractArchive unpacks a zip archive into destDir and returns the
// extracted member paths. The destination is emptied first so members of a
// previous transfer never leak into the current run.
func (s *Staging) ExtractArchive(path, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer reader.Close()

	if err := s.Purge(destDir); err != nil {
		return nil, fmt.Errorf("failed to clear scratch directory: %w", err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	var extracted []string
	for _, member := range reader.File {
		if member.FileInfo().IsDir() {
			continue
		}

		target, err := sanitizeMemberPath(destDir, member.Name)
		if err != nil {
			return nil, err
		}

		if err := extractMember(member, target); err != nil {
			return nil, err
		}
		extracted = append(extracted, target)
	}

	return extracted, nil
}

// sanitizeMemberPath rejects member names escaping the destination dir.
func sanitizeMemberPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member %q escapes the scratch directory", name)
	}
	return target, nil
}

func extractMember(member *zip.File, target string) error {
	in, err := member.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive member %s: %w", member.Name, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to extract %s: %w", member.Name, err)
	}
	return nil
}
