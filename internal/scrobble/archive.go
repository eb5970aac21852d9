package scrobble

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/lastfm"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/textmatch"
)

const (
	archivePrefix    = "scrobble-archive"
	archiveExtension = ".json"
)

// ArchiveMetadata records which slice of a user's history an archive holds.
// From is inclusive, To exclusive.
type ArchiveMetadata struct {
	ArchivedAt time.Time `json:"archived_at"`
	Username   string    `json:"username"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

// Archive is one on-disk snapshot of scrobble history.
type Archive struct {
	Metadata ArchiveMetadata `json:"metadata"`
	Tracks   []lastfm.Track  `json:"scrobbled_tracks"`
}

// rawArchive is the wire form. Timestamps are epoch seconds so the files
// stay trivially greppable and sortable.
type rawArchive struct {
	Metadata rawArchiveMetadata `json:"metadata"`
	Tracks   []lastfm.Track     `json:"scrobbled_tracks"`
}

type rawArchiveMetadata struct {
	ArchivedAt int64  `json:"archived_at"`
	Username   string `json:"username"`
	From       int64  `json:"from"`
	To         int64  `json:"to"`
}

// FileName returns the deterministic archive file name for a user and range.
// The username is folded to filesystem-safe ASCII.
func FileName(username string, from, to time.Time) string {
	folded := strings.ReplaceAll(textmatch.Normalize(username), " ", "-")
	if folded == "" {
		folded = "unknown"
	}
	return fmt.Sprintf("%s_user-%s_from-%d_to-%d%s",
		archivePrefix, folded, from.Unix(), to.Unix(), archiveExtension)
}

// Write serializes the archive into dir under its deterministic file name
// and returns the full path.
func Write(dir string, archive Archive) (string, error) {
	raw := rawArchive{
		Metadata: rawArchiveMetadata{
			ArchivedAt: archive.Metadata.ArchivedAt.Unix(),
			Username:   archive.Metadata.Username,
			From:       archive.Metadata.From.Unix(),
			To:         archive.Metadata.To.Unix(),
		},
		Tracks: archive.Tracks,
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	path := filepath.Join(dir, FileName(archive.Metadata.Username, archive.Metadata.From, archive.Metadata.To))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}

// Load reads one archive file. Files in the legacy page-list format are
// converted on the fly with a zero-value metadata block.
func Load(path string) (Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Archive{}, fmt.Errorf("read archive: %w", err)
	}

	if isLegacyPageList(data) {
		tracks, err := parseLegacyPages(data)
		if err != nil {
			return Archive{}, fmt.Errorf("parse legacy archive %s: %w", filepath.Base(path), err)
		}
		return Archive{Tracks: tracks}, nil
	}

	var raw rawArchive
	if err := json.Unmarshal(data, &raw); err != nil {
		return Archive{}, fmt.Errorf("parse archive %s: %w", filepath.Base(path), err)
	}
	return Archive{
		Metadata: ArchiveMetadata{
			ArchivedAt: time.Unix(raw.Metadata.ArchivedAt, 0).UTC(),
			Username:   raw.Metadata.Username,
			From:       time.Unix(raw.Metadata.From, 0).UTC(),
			To:         time.Unix(raw.Metadata.To, 0).UTC(),
		},
		Tracks: raw.Tracks,
	}, nil
}

// ScanDir lists the archive files in dir with their covered ranges parsed
// from the file names, sorted by range start. Files that do not follow the
// archive naming scheme are ignored.
func ScanDir(dir string) ([]ArchiveFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var files []ArchiveFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		file.Path = filepath.Join(dir, entry.Name())
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].From.Before(files[j].From) })
	return files, nil
}

// ArchiveFile is one archive located on disk, with the time range parsed
// from its file name.
type ArchiveFile struct {
	Path string
	From time.Time
	To   time.Time
}

func parseFileName(name string) (ArchiveFile, bool) {
	if !strings.HasPrefix(name, archivePrefix+"_") || !strings.HasSuffix(name, archiveExtension) {
		return ArchiveFile{}, false
	}
	trimmed := strings.TrimSuffix(name, archiveExtension)

	var from, to int64
	seenFrom, seenTo := false, false
	for _, part := range strings.Split(trimmed, "_") {
		switch {
		case strings.HasPrefix(part, "from-"):
			value, err := strconv.ParseInt(strings.TrimPrefix(part, "from-"), 10, 64)
			if err != nil {
				return ArchiveFile{}, false
			}
			from, seenFrom = value, true
		case strings.HasPrefix(part, "to-"):
			value, err := strconv.ParseInt(strings.TrimPrefix(part, "to-"), 10, 64)
			if err != nil {
				return ArchiveFile{}, false
			}
			to, seenTo = value, true
		}
	}
	if !seenFrom || !seenTo || to < from {
		return ArchiveFile{}, false
	}
	return ArchiveFile{
		From: time.Unix(from, 0).UTC(),
		To:   time.Unix(to, 0).UTC(),
	}, true
}

// LoadAll loads every .json file in dir and returns the contained tracks
// in scrobble time order, oldest first. Legacy page-list files are detected
// by content, so they load regardless of their file name. Nowplaying
// entries never belong in an archive; any present are dropped.
func LoadAll(dir string) ([]lastfm.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var tracks []lastfm.Track
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), archiveExtension) {
			continue
		}
		archive, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, track := range archive.Tracks {
			if track.NowPlaying {
				continue
			}
			tracks = append(tracks, track)
		}
	}
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].ScrobbledAt.Before(tracks[j].ScrobbledAt)
	})
	return tracks, nil
}
