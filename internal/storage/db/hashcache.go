package db

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// CachedHash is a previously-computed SHA-1 for a file, keyed by path, size
// and modification time so a changed file is never served a stale digest.
type CachedHash struct {
	Path    string
	Size    int64
	ModTime time.Time
	SHA1    string
}

// GetCachedHash returns the cached digest for path, or nil if nothing is
// cached yet.
func (d *DB) GetCachedHash(path string) (*CachedHash, error) {
	var h CachedHash
	err := d.QueryRow(`
		SELECT path, size, mod_time, sha1 FROM file_hashes WHERE path = ?
	`, path).Scan(&h.Path, &h.Size, &h.ModTime, &h.SHA1)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting cached hash: %w", err)
	}
	return &h, nil
}

// PutCachedHash records path's digest, replacing any prior entry.
func (d *DB) PutCachedHash(path string, size int64, modTime time.Time, sha1Hex string) error {
	_, err := d.Exec(`
		INSERT INTO file_hashes (path, size, mod_time, sha1, hashed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			size = excluded.size,
			mod_time = excluded.mod_time,
			sha1 = excluded.sha1,
			hashed_at = CURRENT_TIMESTAMP
	`, path, size, modTime, sha1Hex)
	if err != nil {
		return fmt.Errorf("saving cached hash: %w", err)
	}
	return nil
}

// HashFile returns path's SHA-1 digest, reusing the cached value when the
// file's size and modification time haven't changed since it was last
// computed (the `--hash-new` behaviour); pass force=true to always
// recompute (`--hash-all`).
func (d *DB) HashFile(path string, force bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stating %s: %w", path, err)
	}

	if !force {
		cached, err := d.GetCachedHash(path)
		if err != nil {
			return "", err
		}
		if cached != nil && cached.Size == info.Size() && cached.ModTime.Equal(info.ModTime()) {
			return cached.SHA1, nil
		}
	}

	digest, err := sha1File(path)
	if err != nil {
		return "", err
	}
	if err := d.PutCachedHash(path, info.Size(), info.ModTime(), digest); err != nil {
		return "", err
	}
	return digest, nil
}

// HashFiles hashes every path concurrently, bounded to concurrency
// simultaneous file reads, for the `--hash-new`/`--hash-all` pass over the
// configured mods and maps directories (C1). Returns a path-to-digest map;
// the first error encountered aborts the remaining work.
func (d *DB) HashFiles(ctx context.Context, paths []string, force bool, concurrency int) (map[string]string, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make(map[string]string, len(paths))
	resultsCh := make(chan [2]string, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digest, err := d.HashFile(path, force)
			if err != nil {
				return fmt.Errorf("hashing %s: %w", path, err)
			}
			resultsCh <- [2]string{path, digest}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(resultsCh)

	for pair := range resultsCh {
		results[pair[0]] = pair[1]
	}
	return results, nil
}

func sha1File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
