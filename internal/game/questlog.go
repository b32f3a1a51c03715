package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/quest"
	"github.com/samdwyer/trisarira/internal/ui"
)

// questLogScene is an overlay listing started quests.
type questLogScene struct {
	game *Game
}

func newQuestLogScene(g *Game) *questLogScene {
	return &questLogScene{game: g}
}

func (s *questLogScene) Overlay() bool { return true }

func (s *questLogScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		s.game.stack.Pop()
	case tcell.KeyRune:
		if key.Rune() == 'q' {
			s.game.stack.Pop()
		}
	}
}

func (s *questLogScene) Update(ctx context.Context, dt float64) {}

func (s *questLogScene) Render(screen *ui.Screen) {
	w, h := screen.Size()
	boxW, boxH := w-4, h-4
	screen.DrawBox(2, 2, boxW, boxH, styleDefault)
	screen.DrawText(4, 2, " Quests ", styleTitle)

	entries := s.game.quests.Entries()
	if len(entries) == 0 {
		screen.DrawText(4, 4, "Nothing yet.", styleDim)
		return
	}

	y := 4
	for _, e := range entries {
		style := styleDefault
		if e.Status == quest.Completed {
			style = styleGood
		}
		if e.Status == quest.Failed {
			style = styleEnemy
		}
		screen.DrawTextf(4, y, style, "%-28s [%s]", e.Title, e.Status)
		y++
		if e.StageText != "" {
			screen.DrawText(6, y, e.StageText, styleDim)
			y++
		}
		y++
	}
}
