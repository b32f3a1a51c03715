// Package world runs the overworld state machine: zone loading, player
// movement, portals and trigger firing.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/gametime"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/telemetry"
	"github.com/samdwyer/trisarira/internal/zonemap"
)

// Chance in percent of a roaming encounter per accepted step, in zones
// that declare an encounter group.
const roamingEncounterChance = 8

// Request asks the scene layer to do something the world cannot: start
// a battle, open a dialogue, open a shop.
type Request struct {
	EncounterGroup string
	DialogueID     string
	ShopID         string
}

// MoveResult reports one movement attempt.
type MoveResult struct {
	Moved       bool
	ZoneChanged bool
	Requests    []Request
	Messages    []string
}

// InteractResult reports one interaction attempt.
type InteractResult struct {
	Fired    bool
	Requests []Request
	Messages []string
}

// World holds the loaded zone and the player's position in it.
type World struct {
	registry *gamedata.Registry
	bus      *event.Bus
	flags    *flags.Store
	clock    *gametime.Clock
	inv      *inventory.Inventory
	rng      *rand.Rand

	zone    *gamedata.ZoneDef
	zoneMap *zonemap.ZoneMap

	playerX, playerY int
	facing           zonemap.Facing

	// fired holds once-per-save trigger keys, zone-qualified. It is part
	// of the save snapshot.
	fired map[string]bool
}

// New wires the world against its collaborators. No zone is loaded yet.
func New(registry *gamedata.Registry, bus *event.Bus, fl *flags.Store, clock *gametime.Clock, inv *inventory.Inventory, rng *rand.Rand) *World {
	return &World{
		registry: registry,
		bus:      bus,
		flags:    fl,
		clock:    clock,
		inv:      inv,
		rng:      rng,
		fired:    make(map[string]bool),
	}
}

// ZoneID returns the loaded zone id, or "".
func (w *World) ZoneID() string {
	if w.zone == nil {
		return ""
	}
	return w.zone.ID
}

// Zone returns the loaded zone metadata.
func (w *World) Zone() *gamedata.ZoneDef {
	return w.zone
}

// Map returns the loaded zone map.
func (w *World) Map() *zonemap.ZoneMap {
	return w.zoneMap
}

// Player returns the player's tile and facing.
func (w *World) Player() (x, y int, facing zonemap.Facing) {
	return w.playerX, w.playerY, w.facing
}

// SetPlayer places the player directly. Used by save restore.
func (w *World) SetPlayer(x, y int, facing zonemap.Facing) {
	w.playerX, w.playerY = x, y
	w.facing = facing
}

// FiredTriggers returns the once-per-save trigger keys, for snapshots.
func (w *World) FiredTriggers() []string {
	out := make([]string, 0, len(w.fired))
	for k := range w.fired {
		out = append(out, k)
	}
	return out
}

// RestoreFiredTriggers replaces the fired set from snapshot data.
func (w *World) RestoreFiredTriggers(keys []string) {
	w.fired = make(map[string]bool, len(keys))
	for _, k := range keys {
		w.fired[k] = true
	}
}

// LoadZone enters a zone and places the player. Spawn resolution order:
// the named spawn, the default spawn, the grid center. fromPortal
// suppresses the portal check on the spawn tile, which is what stops a
// portal landing on another portal from bouncing forever.
func (w *World) LoadZone(ctx context.Context, zoneID, spawnID string, fromPortal bool) (*MoveResult, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.load_zone")
	defer span.End()

	zone, err := w.registry.Zone(zoneID)
	if err != nil {
		return nil, err
	}
	zm, err := zonemap.Load(zoneID)
	if err != nil {
		return nil, err
	}

	w.zone = zone
	w.zoneMap = zm

	spawn := zm.SpawnByID(spawnID)
	if spawn == nil {
		spawn = zm.DefaultSpawn()
	}
	if spawn != nil {
		w.playerX, w.playerY = spawn.X, spawn.Y
		w.facing = spawn.Facing
	} else {
		slog.Warn("zone has no usable spawn, using grid center", "zone", zoneID, "spawn", spawnID)
		w.playerX, w.playerY = zm.Width/2, zm.Height/2
		w.facing = zonemap.South
	}

	span.SetAttributes(
		attribute.String("zone.id", zoneID),
		attribute.String("zone.spawn", spawnID),
		attribute.Bool("zone.from_portal", fromPortal),
	)

	result := &MoveResult{ZoneChanged: true}
	w.bus.Publish(event.Event{Type: event.ZoneEntered, ZoneID: zoneID})
	w.fireAt(w.playerX, w.playerY, zonemap.OnEnter, result.collector())

	if !fromPortal {
		if err := w.checkPortal(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// RestoreZone loads a zone for snapshot restore: no spawn placement, no
// trigger firing, no events, no portal check. The caller positions the
// player afterwards. A restore replays saved state; it must not create
// new state.
func (w *World) RestoreZone(ctx context.Context, zoneID string) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.restore_zone")
	defer span.End()
	span.SetAttributes(attribute.String("zone.id", zoneID))

	zone, err := w.registry.Zone(zoneID)
	if err != nil {
		return err
	}
	zm, err := zonemap.Load(zoneID)
	if err != nil {
		return err
	}
	w.zone = zone
	w.zoneMap = zm
	return nil
}

// collector adapts a MoveResult for trigger firing.
type sink struct {
	requests *[]Request
	messages *[]string
}

func (r *MoveResult) collector() sink {
	return sink{requests: &r.Requests, messages: &r.Messages}
}

func (r *InteractResult) collector() sink {
	return sink{requests: &r.Requests, messages: &r.Messages}
}

// MovePlayer attempts a single-tile step. Facing updates even when the
// step is blocked. An accepted step advances the clock, fires triggers
// on the destination tile and then follows any portal there.
func (w *World) MovePlayer(ctx context.Context, dx, dy int) (*MoveResult, error) {
	if w.zoneMap == nil {
		return nil, fmt.Errorf("no zone is loaded")
	}

	result := &MoveResult{}
	w.facing = zonemap.FacingFor(dx, dy, w.facing)

	nx, ny := w.playerX+dx, w.playerY+dy
	if w.zoneMap.Blocked(nx, ny) {
		return result, nil
	}

	w.playerX, w.playerY = nx, ny
	result.Moved = true
	w.clock.OnPlayerStep()
	w.bus.Publish(event.Event{Type: event.StepTaken, ZoneID: w.zone.ID})

	s := result.collector()
	w.fireAt(nx, ny, zonemap.OnEnter, s)
	w.fireAt(nx, ny, zonemap.OnStep, s)

	if len(result.Requests) == 0 {
		w.rollRoamingEncounter(s)
	}

	if err := w.checkPortal(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Interact fires ON_INTERACT triggers on the player's tile first, then
// on the faced tile. Only the first tile with matches fires.
func (w *World) Interact(ctx context.Context) (*InteractResult, error) {
	if w.zoneMap == nil {
		return nil, fmt.Errorf("no zone is loaded")
	}

	result := &InteractResult{}
	s := result.collector()

	if w.fireAt(w.playerX, w.playerY, zonemap.OnInteract, s) {
		result.Fired = true
		return result, nil
	}
	dx, dy := w.facing.Delta()
	if w.fireAt(w.playerX+dx, w.playerY+dy, zonemap.OnInteract, s) {
		result.Fired = true
	}
	return result, nil
}

// checkPortal follows a portal under the player, if any. The chained
// load always passes fromPortal=true.
func (w *World) checkPortal(ctx context.Context, result *MoveResult) error {
	portal := w.zoneMap.PortalAt(w.playerX, w.playerY)
	if portal == nil {
		return nil
	}
	arrival := portal.ArrivalFacing

	chained, err := w.LoadZone(ctx, portal.TargetZone, portal.TargetSpawn, true)
	if err != nil {
		return err
	}
	w.facing = arrival
	result.ZoneChanged = true
	result.Requests = append(result.Requests, chained.Requests...)
	result.Messages = append(result.Messages, chained.Messages...)
	return nil
}

// fireAt fires all live triggers of one kind on a tile. Returns whether
// anything fired.
func (w *World) fireAt(x, y int, kind zonemap.TriggerKind, s sink) bool {
	fired := false
	for _, t := range w.zoneMap.TriggersAt(x, y, kind) {
		key := w.zone.ID + "/" + t.ID
		if t.Once && w.fired[key] {
			continue
		}
		if t.Once {
			w.fired[key] = true
		}
		w.fireTrigger(t, s)
		fired = true
	}
	return fired
}

// fireTrigger applies one trigger event.
func (w *World) fireTrigger(t *zonemap.Trigger, s sink) {
	switch t.Event.Type {
	case zonemap.EventChest:
		qty := t.Event.Quantity
		if qty <= 0 {
			qty = 1
		}
		w.inv.Add(t.Event.ItemID, qty)
		if item, err := w.registry.Item(t.Event.ItemID); err == nil {
			*s.messages = append(*s.messages, fmt.Sprintf("Found %s x%d.", item.Name, qty))
		}
		if t.Event.FlagID != "" {
			w.setFlag(t.Event.FlagID)
		}
	case zonemap.EventEncounter:
		*s.requests = append(*s.requests, Request{EncounterGroup: t.Event.GroupID})
	case zonemap.EventSetFlag:
		w.setFlag(t.Event.FlagID)
	case zonemap.EventDialogue:
		*s.requests = append(*s.requests, Request{DialogueID: t.Event.DialogueID})
	case zonemap.EventShop:
		*s.requests = append(*s.requests, Request{ShopID: t.Event.ShopID})
	default:
		slog.Warn("trigger has unknown event type", "trigger", t.ID, "type", t.Event.Type)
	}
}

func (w *World) setFlag(flagID string) {
	w.flags.Set(flagID)
	w.bus.Publish(event.Event{Type: event.FlagSet, FlagID: flagID})
}

// rollRoamingEncounter rolls the zone's roaming encounter, if it has one.
func (w *World) rollRoamingEncounter(s sink) {
	if w.zone.EncounterGroup == "" {
		return
	}
	if w.rng.Intn(100) < roamingEncounterChance {
		*s.requests = append(*s.requests, Request{EncounterGroup: w.zone.EncounterGroup})
	}
}
