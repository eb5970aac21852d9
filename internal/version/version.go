// Package version carries build identity used in User-Agent strings and CLI output.
package version

const (
	// Name is the canonical project name.
	Name = "lastfm-extended-scrobbles"

	// Version is the release version, overridable at build time via -ldflags.
	Version = "2.0.0"

	// Repository is the public home of the project, included in API
	// User-Agent strings as requested by the MusicBrainz rate limiting
	// guidelines.
	Repository = "https://github.com/simongoricar/lastfm-extended-scrobbles"
)

// UserAgent returns the contact-bearing User-Agent value for outbound API requests.
func UserAgent() string {
	return Name + "/" + Version + " ( " + Repository + " )"
}
