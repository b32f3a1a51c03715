package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/ui"
	"github.com/samdwyer/trisarira/internal/zonemap"
)

// overworldScene renders the loaded zone and routes movement input.
type overworldScene struct {
	game *Game
}

func newOverworldScene(g *Game) *overworldScene {
	return &overworldScene{game: g}
}

func (s *overworldScene) Overlay() bool { return false }

func (s *overworldScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyUp:
		s.move(ctx, 0, -1)
	case tcell.KeyDown:
		s.move(ctx, 0, 1)
	case tcell.KeyLeft:
		s.move(ctx, -1, 0)
	case tcell.KeyRight:
		s.move(ctx, 1, 0)
	case tcell.KeyEnter:
		s.interact(ctx)
	case tcell.KeyEscape:
		s.game.stack.Push(newPauseScene(s.game))
	case tcell.KeyRune:
		switch key.Rune() {
		case 'e':
			s.interact(ctx)
		case 'q':
			s.game.stack.Push(newQuestLogScene(s.game))
		}
	}
}

func (s *overworldScene) move(ctx context.Context, dx, dy int) {
	res, err := s.game.world.MovePlayer(ctx, dx, dy)
	if err != nil {
		s.game.logger.Error("move failed", "error", err)
		return
	}
	s.game.pushMessages(res.Messages)
	s.game.handleRequests(ctx, res.Requests)
}

func (s *overworldScene) interact(ctx context.Context) {
	res, err := s.game.world.Interact(ctx)
	if err != nil {
		s.game.logger.Error("interact failed", "error", err)
		return
	}
	s.game.pushMessages(res.Messages)
	s.game.handleRequests(ctx, res.Requests)
}

// Update lets game time pass while the overworld is on top.
func (s *overworldScene) Update(ctx context.Context, dt float64) {
	s.game.clock.Tick(dt)
}

func (s *overworldScene) Render(screen *ui.Screen) {
	g := s.game
	zm := g.world.Map()
	if zm == nil {
		return
	}

	const mapX, mapY = 1, 2

	zone := g.world.Zone()
	screen.DrawTextf(mapX, 0, styleTitle, "%s", zone.Name)
	screen.DrawTextf(mapX+len(zone.Name)+2, 0, styleDim,
		"day %d  %s (%s)", g.clock.Day(), g.clock.HHMM(), g.clock.Band())

	for y := 0; y < zm.Height; y++ {
		for x := 0; x < zm.Width; x++ {
			r, style := tileGlyph(zm, x, y)
			screen.SetContent(mapX+x, mapY+y, r, style)
		}
	}

	px, py, facing := g.world.Player()
	screen.SetContent(mapX+px, mapY+py, playerGlyph(facing), stylePlayer)

	hudY := mapY + zm.Height + 1
	for i, m := range g.party.Active() {
		style := styleGood
		if !m.Alive() {
			style = styleEnemy
		}
		screen.DrawTextf(mapX, hudY+i, style, "%-8s L%d  HP %d/%d  ST %d/%d  FO %d/%d  PR %d/%d",
			m.Name, m.Level, m.HP, m.MaxHP, m.Stamina, m.MaxStamina, m.Focus, m.MaxFocus, m.Prana, m.MaxPrana)
	}
	screen.DrawTextf(mapX, hudY+len(g.party.Active()), styleDim, "coins %d", g.inv.Money())

	msgY := hudY + len(g.party.Active()) + 2
	for i, msg := range g.messages {
		screen.DrawText(mapX, msgY+i, msg, styleDefault)
	}
}

// tileGlyph picks the map character for a tile. Portals and trigger
// tiles get markers so the player can find them.
func tileGlyph(zm *zonemap.ZoneMap, x, y int) (rune, tcell.Style) {
	if zm.PortalAt(x, y) != nil {
		return 'O', stylePortal
	}
	for _, kind := range []zonemap.TriggerKind{zonemap.OnInteract, zonemap.OnStep, zonemap.OnEnter} {
		if len(zm.TriggersAt(x, y, kind)) > 0 {
			return '?', styleTrigger
		}
	}
	if zm.Blocked(x, y) {
		return '#', styleWall
	}
	return '.', styleFloor
}

func playerGlyph(f zonemap.Facing) rune {
	switch f {
	case zonemap.North:
		return '^'
	case zonemap.South:
		return 'v'
	case zonemap.East:
		return '>'
	case zonemap.West:
		return '<'
	}
	return '@'
}
