package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

const dirPerm = 0o755

// Manager handles the deploy root and the per-site deployment directories
// under it.
type Manager struct {
	root string
}

// NewManager creates a manager for the deploy root at root.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Create ensures the deploy root exists. An existing directory is not an error.
func (m *Manager) Create() error {
	if m.root == "" {
		return errors.New("deploy root is not set")
	}
	if err := EnsureDir(m.root); err != nil {
		return fmt.Errorf("failed to create deploy root: %w", err)
	}
	slog.Debug("Using deploy root", logfields.Path(m.root))
	return nil
}

// GetPath returns the deploy root.
func (m *Manager) GetPath() string {
	return m.root
}

// SiteDir returns the deployment directory for site without touching disk.
func (m *Manager) SiteDir(site string) string {
	return filepath.Join(m.root, site)
}

// ResetSite removes any previous deployment of site and recreates its
// directory empty. A missing directory is not an error.
func (m *Manager) ResetSite(site string) (string, error) {
	if site == "" || site == "." || site == ".." || site != filepath.Base(site) || IsVCSMetadata(site) {
		return "", fmt.Errorf("invalid site name %q", site)
	}

	dir := m.SiteDir(site)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to clear deployment directory: %w", err)
	}
	if err := os.Mkdir(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create deployment directory: %w", err)
	}
	slog.Debug("Reset deployment directory", logfields.Site(site), logfields.Path(dir))
	return dir, nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	return nil
}

// vcsMetadata names version control entries that are never site content.
var vcsMetadata = map[string]bool{".git": true, ".hg": true, ".svn": true}

// IsVCSMetadata reports whether name is a version control entry.
func IsVCSMetadata(name string) bool {
	return vcsMetadata[name]
}

// ListSubdirs returns the names of the immediate subdirectories of dir in
// lexicographic order. Version control directories are left out.
func ListSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || IsVCSMetadata(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListFiles returns the names of the regular files directly inside dir,
// dotfiles included. Subdirectories are not descended into and version
// control entries are left out.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || IsVCSMetadata(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// CopyFile copies src to dst byte for byte and applies the source permission
// bits. dst must not exist yet.
func CopyFile(src, dst string) error {
	// #nosec G304 -- src is a file listed from the site directory.
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	// #nosec G304 -- dst is inside a deployment directory owned by the build.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}

	// Preserve file permissions regardless of umask.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}
