package genres

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tree is the beets genre hierarchy: a parent map from each genre to the
// genre one level up.
type Tree struct {
	parents map[string]string
}

// LoadTree parses a beets genres-tree.yaml file. The format is a nested
// structure of sequences whose items are either plain genre strings or
// single-key maps from a genre to its subgenres.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open genre tree: %w", err)
	}

	var root []any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse genre tree: %w", err)
	}

	tree := &Tree{parents: make(map[string]string)}
	if err := tree.walk(root, ""); err != nil {
		return nil, err
	}
	return tree, nil
}

func (t *Tree) walk(items []any, parent string) error {
	for _, item := range items {
		switch node := item.(type) {
		case string:
			t.record(node, parent)
		case map[string]any:
			for name, children := range node {
				t.record(name, parent)
				childItems, ok := children.([]any)
				if !ok {
					return fmt.Errorf("genre %q has malformed children", name)
				}
				if err := t.walk(childItems, name); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unexpected genre tree node %T", item)
		}
	}
	return nil
}

func (t *Tree) record(name, parent string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	t.parents[name] = strings.ToLower(strings.TrimSpace(parent))
}

// Has reports whether the genre appears anywhere in the tree.
func (t *Tree) Has(genre string) bool {
	_, ok := t.parents[strings.ToLower(strings.TrimSpace(genre))]
	return ok
}

// Parents returns the ancestor chain of a genre, nearest first, excluding
// the genre itself.
func (t *Tree) Parents(genre string) []string {
	var chain []string
	current := strings.ToLower(strings.TrimSpace(genre))
	for {
		parent, ok := t.parents[current]
		if !ok || parent == "" {
			return chain
		}
		chain = append(chain, parent)
		current = parent
		if len(chain) > len(t.parents) {
			return chain
		}
	}
}

// Size reports the number of known genres.
func (t *Tree) Size() int { return len(t.parents) }
