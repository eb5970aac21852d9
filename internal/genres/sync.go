package genres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/version"
)

const (
	whitelistFileName = "genres.txt"
	treeFileName      = "genres-tree.yaml"
	licenseFileName   = "LICENSE"
)

// DataFiles locates the genre data files under dir.
type DataFiles struct {
	Whitelist string
	Tree      string
	License   string
}

// FilesIn returns the expected genre data file paths under dir.
func FilesIn(dir string) DataFiles {
	return DataFiles{
		Whitelist: filepath.Join(dir, whitelistFileName),
		Tree:      filepath.Join(dir, treeFileName),
		License:   filepath.Join(dir, licenseFileName),
	}
}

// SyncOptions configures a genre data download.
type SyncOptions struct {
	WhitelistURL string
	TreeURL      string
	LicenseURL   string
	HTTPClient   *http.Client
	Logger       *slog.Logger
	// Force re-downloads files that already exist.
	Force bool
}

// Sync ensures the beets genre data files exist under dir, downloading any
// that are missing. The upstream license file is fetched alongside the data.
func Sync(ctx context.Context, dir string, opts SyncOptions) (DataFiles, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DataFiles{}, fmt.Errorf("create genre data dir: %w", err)
	}

	files := FilesIn(dir)
	downloads := []struct {
		url  string
		path string
	}{
		{opts.WhitelistURL, files.Whitelist},
		{opts.TreeURL, files.Tree},
		{opts.LicenseURL, files.License},
	}
	for _, download := range downloads {
		if download.url == "" {
			continue
		}
		if !opts.Force {
			if _, err := os.Stat(download.path); err == nil {
				continue
			}
		}
		logger.Info("downloading genre data file", "url", download.url, "path", download.path)
		if err := fetchFile(ctx, httpClient, download.url, download.path); err != nil {
			return DataFiles{}, err
		}
	}
	return files, nil
}

func fetchFile(ctx context.Context, httpClient *http.Client, rawURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s returned %d", rawURL, resp.StatusCode)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
