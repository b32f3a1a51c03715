// Package save captures and restores complete game snapshots.
package save

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/gametime"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/party"
	"github.com/samdwyer/trisarira/internal/quest"
	"github.com/samdwyer/trisarira/internal/world"
	"github.com/samdwyer/trisarira/internal/zonemap"
)

// Member is one party member's snapshot form.
type Member struct {
	ActorID string              `json:"actorId"`
	Name    string              `json:"name"`
	Level   int                 `json:"level"`
	XP      int                 `json:"xp"`
	Stats   gamedata.StatBlock  `json:"stats"`
	Profile gamedata.TriProfile `json:"profile"`
	Skills  []string            `json:"skills"`
	HP      int                 `json:"hp"`
	Stamina int                 `json:"stamina"`
	Focus   int                 `json:"focus"`
	Prana   int                 `json:"prana"`
}

// Snapshot is the complete game state content contract. Everything a
// playthrough accumulates is here; restoring one reproduces the session.
type Snapshot struct {
	Slot    uuid.UUID `json:"slot"`
	SavedAt time.Time `json:"savedAt"`

	ZoneID      string         `json:"zoneId"`
	PlayerX     int            `json:"playerX"`
	PlayerY     int            `json:"playerY"`
	Facing      zonemap.Facing `json:"facing"`
	FiredEvents []string       `json:"firedEvents,omitempty"`

	Active  []Member `json:"active"`
	Reserve []Member `json:"reserve,omitempty"`

	Flags   []string `json:"flags,omitempty"`
	Choices []string `json:"choices,omitempty"`

	Quests map[string]quest.SavedQuest `json:"quests,omitempty"`

	Items map[string]int `json:"items,omitempty"`
	Money int            `json:"money"`

	Minute int `json:"minute"`
	Day    int `json:"day"`
}

// Systems bundles everything a snapshot reads from and writes to.
type Systems struct {
	World     *world.World
	Party     *party.Party
	Flags     *flags.Store
	Quests    *quest.Log
	Inventory *inventory.Inventory
	Clock     *gametime.Clock
}

// Capture produces a snapshot of the running systems for a save slot.
func Capture(slot uuid.UUID, s Systems) *Snapshot {
	x, y, facing := s.World.Player()
	snap := &Snapshot{
		Slot:        slot,
		SavedAt:     time.Now().UTC(),
		ZoneID:      s.World.ZoneID(),
		PlayerX:     x,
		PlayerY:     y,
		Facing:      facing,
		FiredEvents: s.World.FiredTriggers(),
		Flags:       s.Flags.All(),
		Choices:     s.Flags.Choices(),
		Quests:      s.Quests.States(),
		Items:       s.Inventory.Items(),
		Money:       s.Inventory.Money(),
		Minute:      s.Clock.Minute(),
		Day:         s.Clock.Day(),
	}
	for _, m := range s.Party.Active() {
		snap.Active = append(snap.Active, captureMember(m))
	}
	for _, m := range s.Party.Reserve() {
		snap.Reserve = append(snap.Reserve, captureMember(m))
	}
	return snap
}

func captureMember(m *party.Member) Member {
	return Member{
		ActorID: m.ActorID,
		Name:    m.Name,
		Level:   m.Level,
		XP:      m.XP,
		Stats:   m.Stats,
		Profile: m.Profile,
		Skills:  append([]string(nil), m.Skills...),
		HP:      m.HP,
		Stamina: m.Stamina,
		Focus:   m.Focus,
		Prana:   m.Prana,
	}
}

// Restore applies a snapshot onto the running systems. The zone comes
// back through the silent restore path, so no triggers fire and no
// events publish; quest states are still restored last so nothing can
// advance them past the saved point.
func Restore(ctx context.Context, snap *Snapshot, s Systems) error {
	if snap.ZoneID == "" {
		return fmt.Errorf("snapshot has no zone id")
	}

	s.Flags.Restore(snap.Flags, snap.Choices)
	s.Inventory.Restore(snap.Items, snap.Money)
	s.Clock.Restore(snap.Minute, snap.Day)

	active := make([]*party.Member, 0, len(snap.Active))
	for i := range snap.Active {
		active = append(active, restoreMember(&snap.Active[i]))
	}
	reserve := make([]*party.Member, 0, len(snap.Reserve))
	for i := range snap.Reserve {
		reserve = append(reserve, restoreMember(&snap.Reserve[i]))
	}
	if err := s.Party.RestoreRoster(active, reserve); err != nil {
		return err
	}

	s.World.RestoreFiredTriggers(snap.FiredEvents)
	if err := s.World.RestoreZone(ctx, snap.ZoneID); err != nil {
		return err
	}
	s.World.SetPlayer(snap.PlayerX, snap.PlayerY, snap.Facing)

	return s.Quests.RestoreStates(snap.Quests)
}

func restoreMember(sm *Member) *party.Member {
	m := &party.Member{
		ActorID: sm.ActorID,
		Name:    sm.Name,
		Level:   sm.Level,
		XP:      sm.XP,
		Stats:   sm.Stats,
		Profile: sm.Profile,
		Skills:  append([]string(nil), sm.Skills...),
		HP:      sm.HP,
		Stamina: sm.Stamina,
		Focus:   sm.Focus,
		Prana:   sm.Prana,
	}
	m.RecomputeMaxima()
	return m
}
