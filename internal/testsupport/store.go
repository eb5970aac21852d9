package testsupport

import (
	"testing"

	"github.com/simongoricar/lastfm-extended-scrobbles/internal/config"
	"github.com/simongoricar/lastfm-extended-scrobbles/internal/library"
)

// MustOpenStore opens the library cache store for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.OpenStore(cfg.LibraryDatabasePath())
	if err != nil {
		t.Fatalf("library.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
