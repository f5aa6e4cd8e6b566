// Package download implements the host application's default collaborator
// for spec §6's downloadFile(url, destinationPath) -> bool contract: fetching
// a mod package over HTTP, verifying it against a catalog-supplied SHA-1, and
// unpacking eDuke32-family zip containers onto disk. Local-mode launches
// never construct a Fetcher, matching "local mode never calls this".
package download

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Fetcher retrieves mod package files over HTTP, rendering progress to the
// terminal the way the reference download manager's transfer window does.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a Fetcher using http.DefaultClient.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: http.DefaultClient}
}

// Fetch downloads url into destPath, creating any missing parent directory.
// A non-2xx response or a transport error is returned as-is; the caller
// decides whether that's fatal for the launch in progress.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download: building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download: %s returned %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("download: creating %s: %w", filepath.Dir(destPath), err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("download: creating %s: %w", destPath, err)
	}
	defer out.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, "fetching "+filepath.Base(destPath))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return fmt.Errorf("download: writing %s: %w", destPath, err)
	}
	return nil
}

// VerifySHA1 reports whether the file at path hashes to want. An empty want
// always verifies, since not every catalog entry carries a checksum.
func VerifySHA1(path, want string) (bool, error) {
	if want == "" {
		return true, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, err
	}
	return strings.EqualFold(hex.EncodeToString(h.Sum(nil)), want), nil
}

// CombinedSHA1 hashes the concatenation of parts in order: the SHA-1 of a
// requiresCombinedGroup engine's reassembled multi-part download (spec §4.1
// "Multi-part download reassembly").
func CombinedSHA1(parts []string) (string, error) {
	h := sha1.New()
	for _, p := range parts {
		f, err := os.Open(p)
		if err != nil {
			return "", err
		}
		_, copyErr := io.Copy(h, f)
		f.Close()
		if copyErr != nil {
			return "", copyErr
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Concatenate writes parts, in order, to destPath as a single file — how a
// requiresCombinedGroup engine's split group-file download is reassembled
// before it's handed to the engine as one GRP.
func Concatenate(parts []string, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("download: creating %s: %w", filepath.Dir(destPath), err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("download: creating %s: %w", destPath, err)
	}
	defer out.Close()

	for _, p := range parts {
		if err := appendFile(out, p); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(out *os.File, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("download: opening part %s: %w", path, err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("download: appending %s: %w", path, err)
	}
	return nil
}
