package save

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/gametime"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/party"
	"github.com/samdwyer/trisarira/internal/quest"
	"github.com/samdwyer/trisarira/internal/world"
	"github.com/samdwyer/trisarira/internal/zonemap"
)

func newSystems(t *testing.T) (Systems, *event.Bus) {
	t.Helper()
	registry := gamedata.MustLoadRegistry()
	mc, err := registry.MainCharacter()
	if err != nil {
		t.Fatalf("MainCharacter failed: %v", err)
	}

	bus := event.NewBus()
	fl := flags.NewStore()
	clock := gametime.NewClock(480, 1)
	inv := inventory.New(25)
	p := party.New(mc)
	w := world.New(registry, bus, fl, clock, inv, rand.New(rand.NewSource(5)))
	log := quest.NewLog(registry, p, inv, fl, bus)

	return Systems{
		World:     w,
		Party:     p,
		Flags:     fl,
		Quests:    log,
		Inventory: inv,
		Clock:     clock,
	}, bus
}

// playSession mutates every system so the snapshot has something to say.
func playSession(t *testing.T, s Systems) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.World.LoadZone(ctx, "z_r1_forest_route", "sp_west", false); err != nil {
		t.Fatalf("LoadZone failed: %v", err)
	}
	s.World.SetPlayer(8, 3, zonemap.North)
	if _, err := s.World.Interact(ctx); err != nil { // opens the chest
		t.Fatalf("Interact failed: %v", err)
	}
	if err := s.Quests.Start("q_shrine_offering"); err != nil {
		t.Fatalf("Quest start failed: %v", err)
	}
	party.ApplyXP(s.Party.Active()[0], 45)
	s.Inventory.AddMoney(30)
	s.Clock.Advance(200)
	s.Flags.RecordChoice("c_accept")
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newSystems(t)
	playSession(t, src)

	slot := uuid.New()
	snap := Capture(slot, src)

	dst, _ := newSystems(t)
	if err := Restore(ctx, snap, dst); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// A second capture must describe the identical state
	again := Capture(slot, dst)

	if again.ZoneID != snap.ZoneID {
		t.Errorf("ZoneID %s, want %s", again.ZoneID, snap.ZoneID)
	}
	if again.PlayerX != snap.PlayerX || again.PlayerY != snap.PlayerY || again.Facing != snap.Facing {
		t.Errorf("Player %d,%d %s; want %d,%d %s",
			again.PlayerX, again.PlayerY, again.Facing, snap.PlayerX, snap.PlayerY, snap.Facing)
	}
	if again.Money != snap.Money {
		t.Errorf("Money %d, want %d", again.Money, snap.Money)
	}
	if len(again.Active) != len(snap.Active) {
		t.Fatalf("Active size %d, want %d", len(again.Active), len(snap.Active))
	}
	m, want := again.Active[0], snap.Active[0]
	if m.Level != want.Level || m.XP != want.XP || m.Stats != want.Stats {
		t.Errorf("Member %+v, want %+v", m, want)
	}
	if again.Minute != snap.Minute || again.Day != snap.Day {
		t.Errorf("Clock %d/%d, want %d/%d", again.Minute, again.Day, snap.Minute, snap.Day)
	}

	itemsEqual := len(again.Items) == len(snap.Items)
	for id, qty := range snap.Items {
		if again.Items[id] != qty {
			itemsEqual = false
		}
	}
	if !itemsEqual {
		t.Errorf("Items %v, want %v", again.Items, snap.Items)
	}

	questsEqual := len(again.Quests) == len(snap.Quests)
	for id, q := range snap.Quests {
		if again.Quests[id].Status != q.Status || again.Quests[id].StageID != q.StageID {
			questsEqual = false
		}
	}
	if !questsEqual {
		t.Errorf("Quests %v, want %v", again.Quests, snap.Quests)
	}

	if len(again.Choices) != 1 || again.Choices[0] != "c_accept" {
		t.Errorf("Choices %v, want [c_accept]", again.Choices)
	}
}

func TestRestoreKeepsFiredTriggersShut(t *testing.T) {
	ctx := context.Background()
	src, _ := newSystems(t)
	playSession(t, src)
	snap := Capture(uuid.New(), src)

	dst, _ := newSystems(t)
	if err := Restore(ctx, snap, dst); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	teaBefore := dst.Inventory.Quantity("it_clarity_tea")
	dst.World.SetPlayer(8, 3, zonemap.North)
	res, err := dst.World.Interact(ctx)
	if err != nil {
		t.Fatalf("Interact failed: %v", err)
	}
	if res.Fired {
		t.Error("Restored chest should stay shut")
	}
	if dst.Inventory.Quantity("it_clarity_tea") != teaBefore {
		t.Error("Restored chest must not grant loot again")
	}
}

func TestRestoreDoesNotAdvanceQuests(t *testing.T) {
	// The saved quest sits at the reach-the-shrine stage. Restoring the
	// snapshot re-enters the saved zone; the restored stage must still
	// match the saved one.
	ctx := context.Background()
	src, _ := newSystems(t)
	if _, err := src.World.LoadZone(ctx, "z_r1_chandrapur_town", "sp_start", false); err != nil {
		t.Fatalf("LoadZone failed: %v", err)
	}
	if err := src.Quests.Start("q_shrine_offering"); err != nil {
		t.Fatalf("Quest start failed: %v", err)
	}
	snap := Capture(uuid.New(), src)

	dst, _ := newSystems(t)
	if err := Restore(ctx, snap, dst); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if dst.Quests.StageID("q_shrine_offering") != "st_reach_shrine" {
		t.Errorf("Stage = %s, want the saved st_reach_shrine", dst.Quests.StageID("q_shrine_offering"))
	}

	if err := Restore(ctx, &Snapshot{}, dst); err == nil {
		t.Error("Expected error restoring an empty snapshot")
	}
}

func TestRestorePublishesNoWorldEvents(t *testing.T) {
	// A restore replays saved state. Zone entry must not fire triggers
	// or publish events, or restoring would mutate flags, inventory and
	// quests beyond what was saved.
	ctx := context.Background()
	src, _ := newSystems(t)
	playSession(t, src)
	snap := Capture(uuid.New(), src)

	dst, bus := newSystems(t)
	bus.SubscribeAll(func(e event.Event) {
		t.Errorf("Restore published %s event", e.Type)
	})
	if err := Restore(ctx, snap, dst); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if dst.World.ZoneID() != snap.ZoneID {
		t.Errorf("ZoneID = %s, want %s", dst.World.ZoneID(), snap.ZoneID)
	}
	x, y, _ := dst.World.Player()
	if x != snap.PlayerX || y != snap.PlayerY {
		t.Errorf("Player at %d,%d, want %d,%d", x, y, snap.PlayerX, snap.PlayerY)
	}
}
