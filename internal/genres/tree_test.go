package genres

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTree = `
- rock:
    - alternative rock:
        - grunge
        - indie rock
    - hard rock
- electronic:
    - house
`

const sampleWhitelist = `
rock
alternative rock
electronic
# a comment
hip hop
`

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTree(t *testing.T) {
	tree, err := LoadTree(writeTempFile(t, "genres-tree.yaml", sampleTree))
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if tree.Size() != 7 {
		t.Fatalf("expected 7 genres, got %d", tree.Size())
	}
	if !tree.Has("grunge") || !tree.Has("Rock") {
		t.Fatal("expected tree membership checks to pass")
	}

	parents := tree.Parents("grunge")
	if len(parents) != 2 || parents[0] != "alternative rock" || parents[1] != "rock" {
		t.Fatalf("unexpected ancestor chain %v", parents)
	}
	if got := tree.Parents("rock"); len(got) != 0 {
		t.Fatalf("expected root genre to have no parents, got %v", got)
	}
}

func TestLoadTreeMalformed(t *testing.T) {
	if _, err := LoadTree(writeTempFile(t, "bad.yaml", "rock: {broken: true}")); err == nil {
		t.Fatal("expected error for malformed tree")
	}
}

func TestLoadWhitelist(t *testing.T) {
	whitelist, err := LoadWhitelist(writeTempFile(t, "genres.txt", sampleWhitelist))
	if err != nil {
		t.Fatalf("LoadWhitelist: %v", err)
	}
	if whitelist.Size() != 4 {
		t.Fatalf("expected 4 genres, got %d", whitelist.Size())
	}
	if !whitelist.Contains("Rock") || !whitelist.Contains("hip hop") {
		t.Fatal("expected case-insensitive membership")
	}
	if whitelist.Contains("# a comment") {
		t.Fatal("comments must not be whitelisted")
	}
}

func TestLoadWhitelistEmpty(t *testing.T) {
	if _, err := LoadWhitelist(writeTempFile(t, "empty.txt", "\n# only comments\n")); err == nil {
		t.Fatal("expected error for empty whitelist")
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical("hip hop"); got != "Hip Hop" {
		t.Fatalf("Canonical(hip hop) = %q", got)
	}
	if got := Canonical("ROCK"); got != "Rock" {
		t.Fatalf("Canonical(ROCK) = %q", got)
	}
}
