// Package game wires the systems together and runs the main loop.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/trisarira/internal/combat"
	"github.com/samdwyer/trisarira/internal/config"
	"github.com/samdwyer/trisarira/internal/dialogue"
	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/gametime"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/party"
	"github.com/samdwyer/trisarira/internal/quest"
	"github.com/samdwyer/trisarira/internal/save"
	"github.com/samdwyer/trisarira/internal/scene"
	"github.com/samdwyer/trisarira/internal/telemetry"
	"github.com/samdwyer/trisarira/internal/ui"
	"github.com/samdwyer/trisarira/internal/world"
)

// How many HUD messages the overworld log keeps.
const messageLogSize = 6

// Game owns the screen, the scene stack and every gameplay system.
type Game struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *gamedata.Registry
	screen   *ui.Screen
	stack    *scene.Stack
	store    save.Store
	rng      *rand.Rand

	bus    *event.Bus
	flags  *flags.Store
	clock  *gametime.Clock
	inv    *inventory.Inventory
	party  *party.Party
	world  *world.World
	quests *quest.Log

	slot     uuid.UUID
	messages []string
	running  bool
}

// New builds a game against a screen and a save store. No session exists
// until the main menu starts or loads one.
func New(cfg *config.Config, logger *slog.Logger, screen *ui.Screen, store save.Store) (*Game, error) {
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		screen:   screen,
		stack:    scene.NewStack(),
		store:    store,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Run drives the loop: render the stack, block on input, dispatch to the
// top scene. The loop ends when a scene calls Quit or the stack drains.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	g.stack.ClearAndSet(newMenuScene(g))
	g.running = true
	last := time.Now()

	for g.running {
		g.screen.Clear()
		g.stack.Render(g.screen)
		g.screen.Show()

		ev := g.screen.PollEvent()
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		switch tev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			continue
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				g.running = false
				continue
			}
		}

		g.stack.HandleEvent(ctx, ev)
		g.stack.Update(ctx, dt)
		if g.stack.Len() == 0 {
			g.running = false
		}
	}
	return nil
}

// Quit stops the loop after the current iteration.
func (g *Game) Quit() {
	g.running = false
}

// newSession rebuilds every gameplay system from scratch.
func (g *Game) newSession() {
	g.bus = event.NewBus()
	g.flags = flags.NewStore()
	g.clock = gametime.NewClock(480, g.cfg.TimeRate)
	g.inv = inventory.New(25)

	mc, err := g.registry.MainCharacter()
	if err != nil {
		// LoadRegistry validated the data; reaching this is a bug.
		panic(err)
	}
	g.party = party.New(mc)
	g.world = world.New(g.registry, g.bus, g.flags, g.clock, g.inv, g.rng)
	g.quests = quest.NewLog(g.registry, g.party, g.inv, g.flags, g.bus)
	g.messages = nil

	g.bus.Subscribe(event.QuestLog, func(e event.Event) {
		g.pushMessage(e.Message)
	})
}

// StartNewGame begins a fresh session in the configured start zone.
func (g *Game) StartNewGame(ctx context.Context) error {
	g.newSession()
	g.slot = uuid.New()

	res, err := g.world.LoadZone(ctx, g.cfg.StartZone, "", false)
	if err != nil {
		return err
	}
	g.pushMessages(res.Messages)
	g.logger.Info("new game started", "zone", g.cfg.StartZone, "slot", g.slot)
	return nil
}

func (g *Game) systems() save.Systems {
	return save.Systems{
		World:     g.world,
		Party:     g.party,
		Flags:     g.flags,
		Quests:    g.quests,
		Inventory: g.inv,
		Clock:     g.clock,
	}
}

// SaveGame snapshots the session into its slot.
func (g *Game) SaveGame(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.save")
	defer span.End()

	snap := save.Capture(g.slot, g.systems())
	if err := g.store.Save(ctx, snap); err != nil {
		return err
	}
	g.pushMessage("Game saved.")
	g.logger.Info("game saved", "slot", g.slot, "zone", snap.ZoneID)
	return nil
}

// LoadLatest restores the most recent snapshot in the store.
func (g *Game) LoadLatest(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.load")
	defer span.End()

	snaps, err := g.store.List(ctx)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return save.ErrSlotNotFound
	}

	g.newSession()
	if err := save.Restore(ctx, snaps[0], g.systems()); err != nil {
		return err
	}
	g.slot = snaps[0].Slot
	g.logger.Info("game loaded", "slot", g.slot, "zone", snaps[0].ZoneID)
	return nil
}

// pushMessage appends to the HUD message log, keeping it bounded.
func (g *Game) pushMessage(msg string) {
	if msg == "" {
		return
	}
	g.messages = append(g.messages, msg)
	if len(g.messages) > messageLogSize {
		g.messages = g.messages[len(g.messages)-messageLogSize:]
	}
}

func (g *Game) pushMessages(msgs []string) {
	for _, m := range msgs {
		g.pushMessage(m)
	}
}

// handleRequests turns world requests into scene transitions.
func (g *Game) handleRequests(ctx context.Context, requests []world.Request) {
	for _, req := range requests {
		switch {
		case req.EncounterGroup != "":
			g.startBattle(ctx, req.EncounterGroup)
		case req.DialogueID != "":
			g.openDialogue(req.DialogueID)
		case req.ShopID != "":
			g.openShop(req.ShopID)
		}
	}
}

// startBattle pushes a battle scene for an encounter group.
func (g *Game) startBattle(ctx context.Context, groupID string) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.start_battle")
	defer span.End()

	group, err := g.registry.Group(groupID)
	if err != nil {
		g.logger.Error("encounter references unknown group", "group", groupID, "error", err)
		return
	}
	battle, err := combat.NewBattle(g.registry, g.party.Active(), group, g.rng)
	if err != nil {
		g.logger.Error("failed to start battle", "group", groupID, "error", err)
		return
	}
	g.stack.Push(newBattleScene(g, battle))
}

// finishBattle folds a terminal battle back into the session. Returns the
// result messages for the scene to show.
func (g *Game) finishBattle(b *combat.Battle) []string {
	result, err := b.Finish()
	if err != nil {
		g.logger.Error("battle finish failed", "error", err)
		return nil
	}

	var msgs []string
	switch result.Outcome {
	case combat.Win:
		g.inv.AddMoney(result.Money)
		msgs = append(msgs, fmt.Sprintf("Victory! %d XP, %d coins.", result.XPTotal, result.Money))
		for _, up := range result.LevelUps {
			if m := g.party.Member(up.ActorID); m != nil {
				msgs = append(msgs, fmt.Sprintf("%s reaches level %d!", m.Name, up.NewLevel))
			}
		}
		g.bus.Publish(event.Event{Type: event.BattleWon, GroupID: result.GroupID})
	case combat.Escape:
		msgs = append(msgs, "The party slips away.")
	case combat.Lose:
		msgs = append(msgs, "The party falls...")
	}
	g.pushMessages(msgs)
	return msgs
}

// openDialogue pushes a dialogue overlay.
func (g *Game) openDialogue(dialogueID string) {
	def, err := g.registry.Dialogue(dialogueID)
	if err != nil {
		g.logger.Error("trigger references unknown dialogue", "dialogue", dialogueID, "error", err)
		return
	}
	session, err := dialogue.NewSession(def, dialogue.Env{
		Flags:      g.flags,
		Inventory:  g.inv,
		Party:      g.party,
		Quests:     g.quests,
		Companions: g,
		Bus:        g.bus,
	})
	if err != nil {
		g.logger.Error("failed to open dialogue", "dialogue", dialogueID, "error", err)
		return
	}
	g.stack.Push(newDialogueScene(g, session))
}

// openShop pushes a shop scene.
func (g *Game) openShop(shopID string) {
	def, err := g.registry.Shop(shopID)
	if err != nil {
		g.logger.Error("trigger references unknown shop", "shop", shopID, "error", err)
		return
	}
	g.stack.Push(newShopScene(g, inventory.NewShop(def, g.registry)))
}

// AddCompanion recruits an actor into the party, active if there is room.
func (g *Game) AddCompanion(actorID string) error {
	def, err := g.registry.Actor(actorID)
	if err != nil {
		return err
	}
	g.party.Recruit(def)
	if err := g.party.AddToActive(actorID); err != nil {
		g.logger.Debug("recruit joins the reserve", "actor", actorID, "reason", err)
	}
	g.pushMessage(fmt.Sprintf("%s joins the party!", def.Name))
	return nil
}

// RemoveCompanion drops an actor from the roster.
func (g *Game) RemoveCompanion(actorID string) error {
	return g.party.Remove(actorID)
}

var _ dialogue.CompanionControl = (*Game)(nil)
