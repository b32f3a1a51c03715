// Package zonemap loads zone layouts: collision grids, spawn points,
// portals and triggers. The JSON map files are the authoring format;
// nothing outside this package reads them.
package zonemap

// Facing is a cardinal direction.
type Facing string

const (
	North Facing = "north"
	South Facing = "south"
	East  Facing = "east"
	West  Facing = "west"
)

// Delta returns the unit step for the direction.
func (f Facing) Delta() (dx, dy int) {
	switch f {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// FacingFor returns the direction matching a unit step, or the fallback
// when the step is not a cardinal unit.
func FacingFor(dx, dy int, fallback Facing) Facing {
	switch {
	case dx == 1 && dy == 0:
		return East
	case dx == -1 && dy == 0:
		return West
	case dx == 0 && dy == 1:
		return South
	case dx == 0 && dy == -1:
		return North
	}
	return fallback
}

// Spawn is a named entry point into a zone.
type Spawn struct {
	ID      string
	X, Y    int
	Facing  Facing
	Default bool
}

// Portal moves the player to another zone when stepped on.
type Portal struct {
	X, Y          int
	TargetZone    string
	TargetSpawn   string
	ArrivalFacing Facing
}

// TriggerKind says when a trigger fires.
type TriggerKind string

const (
	OnEnter    TriggerKind = "ON_ENTER"
	OnStep     TriggerKind = "ON_STEP"
	OnInteract TriggerKind = "ON_INTERACT"
)

// EventType names what a trigger does when it fires.
type EventType string

const (
	EventChest     EventType = "chest"
	EventEncounter EventType = "encounter"
	EventSetFlag   EventType = "set_flag"
	EventDialogue  EventType = "dialogue"
	EventShop      EventType = "shop"
)

// TriggerEvent is the payload a trigger carries. Only the fields for its
// Type are set.
type TriggerEvent struct {
	Type       EventType `json:"type"`
	ItemID     string    `json:"itemId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	FlagID     string    `json:"flagId,omitempty"`
	GroupID    string    `json:"groupId,omitempty"`
	DialogueID string    `json:"dialogueId,omitempty"`
	ShopID     string    `json:"shopId,omitempty"`
}

// Trigger fires its event when the player enters, steps on or interacts
// with its tile.
type Trigger struct {
	ID    string
	Kind  TriggerKind
	X, Y  int
	Event TriggerEvent
	Once  bool
}

// ZoneMap is one loaded zone layout.
type ZoneMap struct {
	ID       string
	Width    int
	Height   int
	blocked  []bool
	Spawns   []Spawn
	Portals  []Portal
	Triggers []Trigger
}

// InBounds reports whether (x, y) lies on the grid.
func (m *ZoneMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Blocked reports whether (x, y) is impassable. Off-grid tiles block.
func (m *ZoneMap) Blocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.blocked[y*m.Width+x]
}

// SpawnByID returns the named spawn, or nil.
func (m *ZoneMap) SpawnByID(id string) *Spawn {
	for i := range m.Spawns {
		if m.Spawns[i].ID == id {
			return &m.Spawns[i]
		}
	}
	return nil
}

// DefaultSpawn returns the spawn flagged as default, or nil.
func (m *ZoneMap) DefaultSpawn() *Spawn {
	for i := range m.Spawns {
		if m.Spawns[i].Default {
			return &m.Spawns[i]
		}
	}
	return nil
}

// PortalAt returns the portal on (x, y), or nil.
func (m *ZoneMap) PortalAt(x, y int) *Portal {
	for i := range m.Portals {
		if m.Portals[i].X == x && m.Portals[i].Y == y {
			return &m.Portals[i]
		}
	}
	return nil
}

// TriggersAt returns the triggers of the given kind on (x, y), in map
// file order.
func (m *ZoneMap) TriggersAt(x, y int, kind TriggerKind) []*Trigger {
	var out []*Trigger
	for i := range m.Triggers {
		t := &m.Triggers[i]
		if t.X == x && t.Y == y && t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
