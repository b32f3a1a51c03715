package zonemap

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

//go:embed maps/*.json
var mapFS embed.FS

// rawObject is the tagged variant every map object decodes into. The
// kind field selects which of the remaining fields matter. Coordinates
// stay raw so a malformed value can degrade to zero instead of failing
// the whole map.
type rawObject struct {
	Kind          string          `json:"kind"`
	ID            string          `json:"id"`
	X             json.RawMessage `json:"x"`
	Y             json.RawMessage `json:"y"`
	Facing        string          `json:"facing"`
	Default       bool            `json:"default"`
	TargetZone    string          `json:"targetZone"`
	TargetSpawn   string          `json:"targetSpawn"`
	ArrivalFacing string          `json:"arrivalFacing"`
	TriggerKind   string          `json:"triggerKind"`
	Event         TriggerEvent    `json:"event"`
	Once          bool            `json:"once"`
}

type rawMap struct {
	ID        string      `json:"id"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Collision []string    `json:"collision"`
	Objects   []rawObject `json:"objects"`
}

// Load reads the embedded map file for a zone id.
func Load(zoneID string) (*ZoneMap, error) {
	content, err := mapFS.ReadFile("maps/" + zoneID + ".json")
	if err != nil {
		return nil, fmt.Errorf("no map file for zone %s: %w", zoneID, err)
	}

	var raw rawMap
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map for zone %s: %w", zoneID, err)
	}
	return build(zoneID, &raw)
}

func build(zoneID string, raw *rawMap) (*ZoneMap, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, fmt.Errorf("zone %s has invalid dimensions %dx%d", zoneID, raw.Width, raw.Height)
	}
	if len(raw.Collision) != raw.Height {
		return nil, fmt.Errorf("zone %s collision grid has %d rows, want %d", zoneID, len(raw.Collision), raw.Height)
	}

	m := &ZoneMap{
		ID:      zoneID,
		Width:   raw.Width,
		Height:  raw.Height,
		blocked: make([]bool, raw.Width*raw.Height),
	}

	for y, row := range raw.Collision {
		if len(row) != raw.Width {
			return nil, fmt.Errorf("zone %s collision row %d has %d cells, want %d", zoneID, y, len(row), raw.Width)
		}
		for x := 0; x < raw.Width; x++ {
			m.blocked[y*raw.Width+x] = row[x] == '#'
		}
	}

	triggerIDs := make(map[string]bool)
	for i := range raw.Objects {
		obj := &raw.Objects[i]
		x := coord(zoneID, obj, "x", obj.X)
		y := coord(zoneID, obj, "y", obj.Y)

		switch obj.Kind {
		case "spawn":
			m.Spawns = append(m.Spawns, Spawn{
				ID:      obj.ID,
				X:       x,
				Y:       y,
				Facing:  facing(obj.Facing, South),
				Default: obj.Default,
			})
		case "portal":
			if obj.TargetZone == "" {
				return nil, fmt.Errorf("zone %s portal at (%d,%d) has no target zone", zoneID, x, y)
			}
			m.Portals = append(m.Portals, Portal{
				X:             x,
				Y:             y,
				TargetZone:    obj.TargetZone,
				TargetSpawn:   obj.TargetSpawn,
				ArrivalFacing: facing(obj.ArrivalFacing, South),
			})
		case "trigger":
			if obj.ID == "" {
				return nil, fmt.Errorf("zone %s trigger at (%d,%d) has no id", zoneID, x, y)
			}
			if triggerIDs[obj.ID] {
				return nil, fmt.Errorf("zone %s has duplicate trigger id %q", zoneID, obj.ID)
			}
			triggerIDs[obj.ID] = true
			kind := TriggerKind(obj.TriggerKind)
			switch kind {
			case OnEnter, OnStep, OnInteract:
			default:
				return nil, fmt.Errorf("zone %s trigger %s has unknown kind %q", zoneID, obj.ID, obj.TriggerKind)
			}
			m.Triggers = append(m.Triggers, Trigger{
				ID:    obj.ID,
				Kind:  kind,
				X:     x,
				Y:     y,
				Event: obj.Event,
				Once:  obj.Once,
			})
		default:
			return nil, fmt.Errorf("zone %s has object of unknown kind %q", zoneID, obj.Kind)
		}
	}

	return m, nil
}

// coord parses a raw coordinate value. A malformed value is a data-shape
// problem, not a fatal one: warn and fall back to zero.
func coord(zoneID string, obj *rawObject, field string, raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		slog.Warn("malformed coordinate in zone map, using 0",
			"zone", zoneID, "object", obj.ID, "kind", obj.Kind, "field", field, "value", string(raw))
		return 0
	}
	return v
}

func facing(s string, fallback Facing) Facing {
	switch Facing(s) {
	case North, South, East, West:
		return Facing(s)
	}
	return fallback
}
