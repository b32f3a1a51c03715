package game

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/save"
	"github.com/samdwyer/trisarira/internal/ui"
)

// menuScene is the title screen.
type menuScene struct {
	game     *Game
	items    []string
	selected int
	errText  string
}

func newMenuScene(g *Game) *menuScene {
	return &menuScene{
		game:  g,
		items: []string{"New Game", "Continue", "Quit"},
	}
}

func (s *menuScene) Overlay() bool { return false }

func (s *menuScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyUp:
		if s.selected > 0 {
			s.selected--
		}
	case tcell.KeyDown:
		if s.selected < len(s.items)-1 {
			s.selected++
		}
	case tcell.KeyEnter:
		s.activate(ctx)
	case tcell.KeyEscape:
		s.game.Quit()
	}
}

func (s *menuScene) activate(ctx context.Context) {
	switch s.items[s.selected] {
	case "New Game":
		if err := s.game.StartNewGame(ctx); err != nil {
			s.errText = err.Error()
			return
		}
		s.game.stack.Switch(newOverworldScene(s.game))
	case "Continue":
		err := s.game.LoadLatest(ctx)
		if errors.Is(err, save.ErrSlotNotFound) {
			s.errText = "No saved games."
			return
		}
		if err != nil {
			s.errText = err.Error()
			return
		}
		s.game.stack.Switch(newOverworldScene(s.game))
	case "Quit":
		s.game.Quit()
	}
}

func (s *menuScene) Update(ctx context.Context, dt float64) {}

func (s *menuScene) Render(screen *ui.Screen) {
	screen.DrawText(4, 2, "T R I S A R I R A", styleTitle)
	screen.DrawText(4, 3, "the three bodies", styleDim)
	screen.DrawMenu(4, 6, s.items, s.selected, styleDefault, styleSelected)
	if s.errText != "" {
		screen.DrawText(4, 10, s.errText, styleEnemy)
	}
	screen.DrawText(4, 12, "arrows move, enter picks, esc quits", styleDim)
}
