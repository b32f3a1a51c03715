package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/dialogue"
	"github.com/samdwyer/trisarira/internal/ui"
)

// dialogueScene is an overlay running one conversation. The overworld
// stays visible underneath.
type dialogueScene struct {
	game     *Game
	session  *dialogue.Session
	selected int
}

func newDialogueScene(g *Game, session *dialogue.Session) *dialogueScene {
	return &dialogueScene{game: g, session: session}
}

func (s *dialogueScene) Overlay() bool { return true }

func (s *dialogueScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	view := s.session.View()

	switch key.Key() {
	case tcell.KeyUp:
		if s.selected > 0 {
			s.selected--
		}
	case tcell.KeyDown:
		if s.selected < len(view.Choices)-1 {
			s.selected++
		}
	case tcell.KeyEnter:
		s.advance(view)
	case tcell.KeyEscape:
		// Only a choiceless node can be walked away from.
		if len(view.Choices) == 0 {
			s.game.stack.Pop()
		}
	}
}

func (s *dialogueScene) advance(view dialogue.View) {
	var err error
	if len(view.Choices) > 0 {
		err = s.session.Choose(view.Choices[s.selected].ID)
		s.selected = 0
	} else {
		err = s.session.Continue()
	}
	if err != nil {
		s.game.logger.Error("dialogue step failed", "error", err)
		s.game.stack.Pop()
		return
	}
	if s.session.Ended() {
		s.game.stack.Pop()
	}
}

func (s *dialogueScene) Update(ctx context.Context, dt float64) {}

func (s *dialogueScene) Render(screen *ui.Screen) {
	view := s.session.View()
	if view.Ended {
		return
	}

	w, h := screen.Size()
	boxH := len(view.Lines) + len(view.Choices) + 4
	if boxH < 6 {
		boxH = 6
	}
	boxY := h - boxH - 1
	if boxY < 0 {
		boxY = 0
	}
	boxW := w - 2
	screen.DrawBox(1, boxY, boxW, boxH, styleDefault)

	name := s.speakerName(view.SpeakerID)
	screen.DrawText(3, boxY, " "+name+" ", styleTitle)

	y := boxY + 1
	for _, line := range view.Lines {
		screen.DrawText(3, y, line, styleDefault)
		y++
	}

	if len(view.Choices) > 0 {
		texts := make([]string, len(view.Choices))
		for i, c := range view.Choices {
			texts[i] = c.Text
		}
		screen.DrawMenu(3, y+1, texts, s.selected, styleDefault, styleSelected)
	} else {
		screen.DrawText(3, boxY+boxH-2, "enter to continue", styleDim)
	}
}

func (s *dialogueScene) speakerName(actorID string) string {
	if def, err := s.game.registry.Actor(actorID); err == nil {
		return def.Name
	}
	return actorID
}
