// Package config loads the watch list of forums and threads preloaded at start.
package config

import (
	"fmt"
	"os"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"gopkg.in/yaml.v3"
)

const (
	defaultForumDepth  = 1
	defaultThreadDepth = 3
)

// WatchList names the forums and threads queried at start.
type WatchList struct {
	Forums  []WatchedForum  `yaml:"forums"`
	Threads []WatchedThread `yaml:"threads"`
}

// WatchedForum is a category and how many reply levels below its threads to load.
type WatchedForum struct {
	Path     string   `yaml:"path"`
	Depth    int      `yaml:"depth"`
	Segments []string `yaml:"-"`
}

// WatchedThread is a single thread by root id.
type WatchedThread struct {
	ID    string `yaml:"id"`
	Depth int    `yaml:"depth"`
}

// Load reads and parses a watch list file.
func Load(path string) (*WatchList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch list: %w", err)
	}
	return Parse(data)
}

// Parse decodes a watch list, applies defaults and validates it.
func Parse(data []byte) (*WatchList, error) {
	var list WatchList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse watch list: %w", err)
	}
	applyDefaults(&list)
	if err := validate(&list); err != nil {
		return nil, fmt.Errorf("invalid watch list: %w", err)
	}
	return &list, nil
}

func applyDefaults(list *WatchList) {
	for i := range list.Forums {
		if list.Forums[i].Depth == 0 {
			list.Forums[i].Depth = defaultForumDepth
		}
	}
	for i := range list.Threads {
		if list.Threads[i].Depth == 0 {
			list.Threads[i].Depth = defaultThreadDepth
		}
	}
}

func validate(list *WatchList) error {
	seen := make(map[string]struct{}, len(list.Forums))
	for i := range list.Forums {
		f := &list.Forums[i]
		if f.Depth < 0 {
			return fmt.Errorf("forum %q: negative depth", f.Path)
		}
		segments, err := schema.DecodePath(f.Path)
		if err != nil {
			return fmt.Errorf("forum %d: %w", i, err)
		}
		f.Segments = segments
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("forum %q listed twice", f.Path)
		}
		seen[f.Path] = struct{}{}
	}
	for i, th := range list.Threads {
		if th.ID == "" {
			return fmt.Errorf("thread %d: id is required", i)
		}
		if th.Depth < 0 {
			return fmt.Errorf("thread %s: negative depth", th.ID)
		}
	}
	return nil
}
