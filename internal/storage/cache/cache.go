// Package cache manages the on-disk store of downloaded mod files, keyed by
// game version and mod so that a part fetched once for eduke32 doesn't
// collide with the same mod's rednukem download, and a re-launch with the
// file already on disk skips refetching it.
package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache manages the downloaded-file cache under the data directory's
// downloads/ subtree.
type Cache struct {
	basePath string
}

// New creates a cache rooted at basePath (basePath/gameVersionID/modID/file).
func New(basePath string) *Cache {
	return &Cache{basePath: basePath}
}

// ModPath returns the directory where a mod's downloaded parts for a given
// game version are stored.
func (c *Cache) ModPath(gameVersionID, modID string) string {
	return filepath.Join(c.basePath, gameVersionID, modID)
}

// FilePath returns the full path a named download would occupy in the cache.
func (c *Cache) FilePath(gameVersionID, modID, fileName string) string {
	return filepath.Join(c.ModPath(gameVersionID, modID), fileName)
}

// Has reports whether fileName is already cached for gameVersionID/modID.
func (c *Cache) Has(gameVersionID, modID, fileName string) bool {
	info, err := os.Stat(c.FilePath(gameVersionID, modID, fileName))
	return err == nil && !info.IsDir()
}

// ListFiles returns every cached file name for a mod/game version pair.
func (c *Cache) ListFiles(gameVersionID, modID string) ([]string, error) {
	modPath := c.ModPath(gameVersionID, modID)

	var files []string
	err := filepath.WalkDir(modPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Skip symlinks to avoid traversing outside the cache root.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		relPath, err := filepath.Rel(modPath, path)
		if err != nil {
			return err
		}
		files = append(files, relPath)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing cached files: %w", err)
	}

	return files, nil
}

// Delete removes every cached file for a mod/game version pair, used when a
// catalog refresh invalidates previously downloaded parts.
func (c *Cache) Delete(gameVersionID, modID string) error {
	if err := os.RemoveAll(c.ModPath(gameVersionID, modID)); err != nil {
		return fmt.Errorf("deleting cached mod: %w", err)
	}
	return nil
}

// Size returns the total size in bytes of a mod's cached downloads.
func (c *Cache) Size(gameVersionID, modID string) (int64, error) {
	modPath := c.ModPath(gameVersionID, modID)

	var totalSize int64
	err := filepath.WalkDir(modPath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		totalSize += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("calculating cache size: %w", err)
	}

	return totalSize, nil
}
