package main

import "testing"

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, []string{"--help"}, "")
	if err != nil {
		t.Fatalf("--help: %v", err)
	}
	for _, command := range []string{"download", "analyze", "library", "genres", "config"} {
		requireContains(t, out, command)
	}
}

func TestLibraryStatsOnEmptyCache(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, []string{"library", "stats"}, configPath)
	if err != nil {
		t.Fatalf("library stats: %v", err)
	}
	requireContains(t, out, "Tracks")
}

func TestAnalyzeWithoutArchivesFails(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, []string{"analyze"}, configPath); err == nil {
		t.Fatal("expected analyze to fail with no archives")
	}
}
