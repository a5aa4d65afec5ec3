package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// LoadArena parses a TMX file into an Arena. It takes an fs.FS so callers
// can pass embed.FS or os.DirFS. pixelsPerUnit converts map pixels to world
// units; the map centre becomes the world origin and map "up" is +Z.
//
// Obstacles are the objects of the Obstacles group. Sized objects take half
// their larger side as radius; point objects use a "radius" property or
// DefaultObstacleRadius. Every EnemySpawn object needs a "kind" property.
func LoadArena(fsys fs.FS, tmxPath string, pixelsPerUnit float64) (*Arena, error) {
	if pixelsPerUnit <= 0 {
		return nil, fmt.Errorf("pixels per unit must be > 0, got %v", pixelsPerUnit)
	}
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	mapW := float64(levelMap.Width * levelMap.TileWidth)
	mapH := float64(levelMap.Height * levelMap.TileHeight)
	if mapW <= 0 || mapH <= 0 {
		return nil, fmt.Errorf("TMX %s: empty map", tmxPath)
	}
	toWorld := func(x, y float64) gamemath.Vec3 {
		return gamemath.Vec3{
			X: (x - mapW/2) / pixelsPerUnit,
			Z: (mapH/2 - y) / pixelsPerUnit,
		}
	}

	arena := &Arena{HalfExtent: math.Min(mapW, mapH) / 2 / pixelsPerUnit}
	playerSet := false

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupObstacles:
			for _, o := range og.Objects {
				radius := math.Max(o.Width, o.Height) / 2 / pixelsPerUnit
				if radius <= 0 {
					radius = o.Properties.GetFloat("radius")
				}
				if radius <= 0 {
					radius = DefaultObstacleRadius
				}
				arena.Obstacles = append(arena.Obstacles, Obstacle{
					Position: toWorld(o.X+o.Width/2, o.Y+o.Height/2),
					Radius:   radius,
				})
			}
		case GroupPlayerSpawn:
			if len(og.Objects) == 0 || playerSet {
				continue
			}
			o := og.Objects[0]
			arena.PlayerSpawn = toWorld(o.X, o.Y)
			arena.PlayerFacing = o.Properties.GetFloat("facing")
			playerSet = true
		case GroupEnemySpawn:
			for _, o := range og.Objects {
				kind := strings.TrimSpace(o.Properties.GetString("kind"))
				if kind == "" {
					return nil, fmt.Errorf("TMX %s: enemy spawn %d has no kind", tmxPath, o.ID)
				}
				arena.EnemySpawns = append(arena.EnemySpawns, EnemySpawn{
					Position: toWorld(o.X, o.Y),
					Facing:   o.Properties.GetFloat("facing"),
					Kind:     kind,
				})
			}
		}
	}

	// Sort spawns left-to-right for a stable spawn order
	sort.SliceStable(arena.EnemySpawns, func(i, j int) bool {
		return arena.EnemySpawns[i].Position.X < arena.EnemySpawns[j].Position.X
	})

	return arena, nil
}

// Validate reports layout problems: a player spawn outside the arena or
// inside an obstacle.
func (a *Arena) Validate() error {
	if a.HalfExtent <= 0 {
		return errors.New("arena half extent must be > 0")
	}
	p := a.PlayerSpawn
	if math.Abs(p.X) > a.HalfExtent || math.Abs(p.Z) > a.HalfExtent {
		return fmt.Errorf("player spawn (%.1f, %.1f) is outside the arena", p.X, p.Z)
	}
	for i, ob := range a.Obstacles {
		if gamemath.FlatDistance(ob.Position, p) < ob.Radius {
			return fmt.Errorf("player spawn is inside obstacle %d", i)
		}
	}
	return nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys and loads each,
// returning a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string, pixelsPerUnit float64) (map[string]*Arena, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		arena, err := LoadArena(fsys, path, pixelsPerUnit)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		arenas[stem] = arena
		names = append(names, stem)
	}

	sort.Strings(names)
	return arenas, names, nil
}
