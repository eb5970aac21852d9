package config

const (
	defaultDataDir            = "~/.local/share/lastfm-extended-scrobbles"
	defaultScrobbleArchiveDir = "~/.local/share/lastfm-extended-scrobbles/archives"
	defaultCacheDir           = "~/.cache/lastfm-extended-scrobbles"
	defaultLogDir             = "~/.local/share/lastfm-extended-scrobbles/logs"
	defaultSpreadsheetPath    = "~/.local/share/lastfm-extended-scrobbles/extended-scrobbles.xlsx"

	defaultLastFmBaseURL     = "https://ws.audioscrobbler.com/2.0/"
	defaultLastFmPageSize    = 200
	defaultRequestIntervalMS = 250
	defaultSearchPageLimit   = 15

	defaultMusicBrainzBaseURL  = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzCacheTTL = 240

	defaultYouTubeBaseURL    = "https://www.youtube.com"
	defaultYouTubeMaxResults = 8

	defaultMinArtistScore       = 85
	defaultMinAlbumScore        = 80
	defaultMinTitleScore        = 82
	defaultMinYouTubeTitleScore = 70
	defaultMinLastFmSimilarity  = 75

	defaultGenreMaxCount   = 4
	defaultGenreMinWeight  = 10
	defaultGenreListURL    = "https://raw.githubusercontent.com/beetbox/beets/master/beetsplug/lastgenre/genres.txt"
	defaultGenreTreeURL    = "https://raw.githubusercontent.com/beetbox/beets/master/beetsplug/lastgenre/genres-tree.yaml"
	defaultGenreLicenseURL = "https://raw.githubusercontent.com/beetbox/beets/master/LICENSE"

	defaultScanWorkers      = 4
	defaultCacheLogInterval = 500
	defaultParseLogInterval = 100
	defaultWriteRetries     = 5
	defaultWriteRetryDelay  = 5

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:            defaultDataDir,
			ScrobbleArchiveDir: defaultScrobbleArchiveDir,
			CacheDir:           defaultCacheDir,
			LogDir:             defaultLogDir,
			SpreadsheetPath:    defaultSpreadsheetPath,
		},
		LastFm: LastFm{
			BaseURL:           defaultLastFmBaseURL,
			PageSize:          defaultLastFmPageSize,
			RequestIntervalMS: defaultRequestIntervalMS,
			SearchPageLimit:   defaultSearchPageLimit,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:         defaultMusicBrainzBaseURL,
			CacheTTLMinutes: defaultMusicBrainzCacheTTL,
		},
		YouTube: YouTube{
			Enabled:    true,
			BaseURL:    defaultYouTubeBaseURL,
			MaxResults: defaultYouTubeMaxResults,
		},
		Matching: Matching{
			MinArtistScore:       defaultMinArtistScore,
			MinAlbumScore:        defaultMinAlbumScore,
			MinTitleScore:        defaultMinTitleScore,
			MinYouTubeTitleScore: defaultMinYouTubeTitleScore,
			MinLastFmSimilarity:  defaultMinLastFmSimilarity,
		},
		Genres: Genres{
			Enabled:    true,
			MaxCount:   defaultGenreMaxCount,
			MinWeight:  defaultGenreMinWeight,
			ListURL:    defaultGenreListURL,
			TreeURL:    defaultGenreTreeURL,
			LicenseURL: defaultGenreLicenseURL,
		},
		Analysis: Analysis{
			ScanWorkers:            defaultScanWorkers,
			CacheLogInterval:       defaultCacheLogInterval,
			ParseLogInterval:       defaultParseLogInterval,
			WriteRetries:           defaultWriteRetries,
			WriteRetryDelaySeconds: defaultWriteRetryDelay,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
