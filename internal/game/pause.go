package game

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/save"
	"github.com/samdwyer/trisarira/internal/ui"
)

// pauseScene is the in-game menu overlay.
type pauseScene struct {
	game     *Game
	items    []string
	selected int
	status   string
}

func newPauseScene(g *Game) *pauseScene {
	return &pauseScene{
		game:  g,
		items: []string{"Resume", "Save", "Load", "Quit to Title"},
	}
}

func (s *pauseScene) Overlay() bool { return true }

func (s *pauseScene) HandleEvent(ctx context.Context, ev tcell.Event) {
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
		s.game.stack.Pop()
	}
}

func (s *pauseScene) activate(ctx context.Context) {
	switch s.items[s.selected] {
	case "Resume":
		s.game.stack.Pop()
	case "Save":
		if err := s.game.SaveGame(ctx); err != nil {
			s.status = "Save failed: " + err.Error()
			return
		}
		s.status = "Saved."
	case "Load":
		err := s.game.LoadLatest(ctx)
		if errors.Is(err, save.ErrSlotNotFound) {
			s.status = "No saved games."
			return
		}
		if err != nil {
			s.status = "Load failed: " + err.Error()
			return
		}
		s.game.stack.ClearAndSet(newOverworldScene(s.game))
	case "Quit to Title":
		s.game.stack.ClearAndSet(newMenuScene(s.game))
	}
}

func (s *pauseScene) Update(ctx context.Context, dt float64) {}

func (s *pauseScene) Render(screen *ui.Screen) {
	w, _ := screen.Size()
	boxW := 26
	boxX := (w - boxW) / 2
	if boxX < 0 {
		boxX = 0
	}
	screen.DrawBox(boxX, 2, boxW, len(s.items)+4, styleDefault)
	screen.DrawText(boxX+2, 2, " Paused ", styleTitle)
	screen.DrawMenu(boxX+2, 3, s.items, s.selected, styleDefault, styleSelected)
	if s.status != "" {
		screen.DrawText(boxX+2, 3+len(s.items), s.status, styleDim)
	}
}
