package game

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/trisarira/internal/combat"
	"github.com/samdwyer/trisarira/internal/config"
	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/save"
	"github.com/samdwyer/trisarira/internal/scene"
)

// newTestGame builds a game without a terminal. Scenes are driven by
// synthetic key events; Render is never called.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		TimeRate:    0.5,
		StartZone:   "z_r1_chandrapur_town",
	}
	g := &Game{
		cfg:      cfg,
		logger:   slog.Default(),
		registry: gamedata.MustLoadRegistry(),
		stack:    scene.NewStack(),
		store:    save.NewMemoryStore(),
		rng:      rand.New(rand.NewSource(11)),
	}
	return g
}

func keyEvent(key tcell.Key) tcell.Event {
	return tcell.NewEventKey(key, 0, tcell.ModNone)
}

func TestStartNewGameEntersStartZone(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)

	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	if g.world.ZoneID() != "z_r1_chandrapur_town" {
		t.Errorf("ZoneID = %s, want the configured start zone", g.world.ZoneID())
	}
	if len(g.party.Active()) != 1 || g.party.Active()[0].ActorID != "mc_adhira" {
		t.Errorf("New game party = %v, want just the main character", g.party.Active())
	}
	if g.slot == uuid.Nil {
		t.Error("New game should allocate a save slot")
	}
}

func TestEncounterRequestPushesBattle(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	g.stack.ClearAndSet(newOverworldScene(g))

	g.startBattle(ctx, "grp_forest_ambush")

	if _, ok := g.stack.Top().(*battleScene); !ok {
		t.Fatalf("Top scene is %T, want a battle", g.stack.Top())
	}
	if g.stack.Len() != 2 {
		t.Errorf("Stack depth %d, want the overworld underneath", g.stack.Len())
	}
}

// TestBattleSceneWinFlow drives a battle to victory through key events
// alone: Attack, pick the first target, repeat.
func TestBattleSceneWinFlow(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	g.stack.ClearAndSet(newOverworldScene(g))

	var won []string
	g.bus.Subscribe(event.BattleWon, func(e event.Event) {
		won = append(won, e.GroupID)
	})
	moneyBefore := g.inv.Money()

	g.startBattle(ctx, "grp_forest_ambush")
	bs, ok := g.stack.Top().(*battleScene)
	if !ok {
		t.Fatalf("Top scene is %T, want a battle", g.stack.Top())
	}
	// Wear the sprouts down so the win arrives within a few commands.
	for _, e := range bs.battle.Enemies() {
		e.TakeDamage(e.HP - 1)
	}

	for i := 0; i < 200 && bs.mode != modeFinished; i++ {
		bs.HandleEvent(ctx, keyEvent(tcell.KeyEnter))
	}
	if bs.mode != modeFinished {
		t.Fatal("Battle never finished")
	}
	if bs.battle.Outcome() != combat.Win {
		t.Fatalf("Outcome = %s, want WIN", bs.battle.Outcome())
	}

	if len(won) != 1 || won[0] != "grp_forest_ambush" {
		t.Errorf("BattleWon events = %v, want one for the group", won)
	}
	if g.inv.Money() <= moneyBefore {
		t.Error("Winning should pay out money")
	}
	if g.party.Active()[0].XP == 0 && g.party.Active()[0].Level == 1 {
		t.Error("Winning should grant XP")
	}

	// The closing key press returns to the overworld
	bs.HandleEvent(ctx, keyEvent(tcell.KeyEnter))
	if _, ok := g.stack.Top().(*overworldScene); !ok {
		t.Errorf("Top scene is %T, want the overworld back", g.stack.Top())
	}
}

func TestDialogueSceneRecruitsCompanion(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	g.stack.ClearAndSet(newOverworldScene(g))

	g.openDialogue("dlg_rajani")
	ds, ok := g.stack.Top().(*dialogueScene)
	if !ok {
		t.Fatalf("Top scene is %T, want a dialogue", g.stack.Top())
	}
	if !ds.Overlay() {
		t.Error("Dialogue should render as an overlay")
	}

	// First choice on the offer node is the recruitment
	ds.HandleEvent(ctx, keyEvent(tcell.KeyEnter))
	// The joined node closes on continue
	ds.HandleEvent(ctx, keyEvent(tcell.KeyEnter))

	if !g.party.IsActive("comp_rajani") {
		t.Error("Choosing to recruit should add the companion to the active party")
	}
	if !g.flags.Has("fl_rajani_joined") {
		t.Error("Recruitment should set its flag")
	}
	if _, ok := g.stack.Top().(*overworldScene); !ok {
		t.Errorf("Top scene is %T, want the overworld after the talk", g.stack.Top())
	}
}

func TestShopSceneBuyAndSell(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	g.stack.ClearAndSet(newOverworldScene(g))

	g.openShop("shop_chandrapur_general")
	ss, ok := g.stack.Top().(*shopScene)
	if !ok {
		t.Fatalf("Top scene is %T, want a shop", g.stack.Top())
	}

	// First stock line is the herb poultice at its base value of 10
	moneyBefore := g.inv.Money()
	ss.HandleEvent(ctx, keyEvent(tcell.KeyEnter))
	if g.inv.Quantity("it_herb_poultice") != 1 {
		t.Fatalf("Quantity = %d, want 1 after buying", g.inv.Quantity("it_herb_poultice"))
	}
	if g.inv.Money() != moneyBefore-10 {
		t.Errorf("Money = %d, want %d", g.inv.Money(), moneyBefore-10)
	}

	// Tab to the bag and sell it back at half value
	ss.HandleEvent(ctx, keyEvent(tcell.KeyTab))
	ss.HandleEvent(ctx, keyEvent(tcell.KeyEnter))
	if g.inv.Quantity("it_herb_poultice") != 0 {
		t.Error("Selling should remove the item")
	}
	if g.inv.Money() != moneyBefore-10+5 {
		t.Errorf("Money = %d, want %d after selling at half value", g.inv.Money(), moneyBefore-5)
	}

	ss.HandleEvent(ctx, keyEvent(tcell.KeyEscape))
	if _, ok := g.stack.Top().(*overworldScene); !ok {
		t.Errorf("Top scene is %T, want the overworld after leaving", g.stack.Top())
	}
}

func TestPauseSaveThenLoadRestoresPosition(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}

	x, y, facing := g.world.Player()
	if err := g.SaveGame(ctx); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	// Wander off, then load the snapshot back
	if _, err := g.world.MovePlayer(ctx, 0, -1); err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}
	if err := g.LoadLatest(ctx); err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}

	lx, ly, lfacing := g.world.Player()
	if lx != x || ly != y || lfacing != facing {
		t.Errorf("Player at %d,%d %s after load, want %d,%d %s", lx, ly, lfacing, x, y, facing)
	}
}

func TestLoadLatestWithoutSavesFails(t *testing.T) {
	g := newTestGame(t)
	if err := g.LoadLatest(context.Background()); err == nil {
		t.Error("Expected an error with an empty save store")
	}
}

func TestQuestLogSceneClosesOnEscape(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t)
	if err := g.StartNewGame(ctx); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	g.stack.ClearAndSet(newOverworldScene(g))

	g.stack.Push(newQuestLogScene(g))
	g.stack.HandleEvent(ctx, keyEvent(tcell.KeyEscape))
	if _, ok := g.stack.Top().(*overworldScene); !ok {
		t.Errorf("Top scene is %T, want the overworld back", g.stack.Top())
	}
}
