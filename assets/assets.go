// Package assets embeds the data files the arena ships with.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/automoto/ashfall/shared/leveldata"
)

var (
	//go:embed all:levels
	levelFS embed.FS
)

// LevelsDir is the directory of the embedded arenas inside Levels().
const LevelsDir = "levels"

// DefaultArena names the arena used when none is chosen.
const DefaultArena = "arena"

// Levels returns the embedded level files.
func Levels() fs.FS {
	return levelFS
}

// LoadArena parses the embedded arena called name (the file stem under
// LevelsDir). An empty name selects DefaultArena.
func LoadArena(name string, pixelsPerUnit float64) (*leveldata.Arena, error) {
	if name == "" {
		name = DefaultArena
	}
	arenas, names, err := leveldata.LoadAllArenas(Levels(), LevelsDir, pixelsPerUnit)
	if err != nil {
		return nil, err
	}
	arena, ok := arenas[name]
	if !ok {
		return nil, fmt.Errorf("unknown arena %q (have %s)", name, strings.Join(names, ", "))
	}
	return arena, nil
}
