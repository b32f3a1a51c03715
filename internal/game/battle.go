package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/combat"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/ui"
)

const battleLogSize = 8

type battleMode int

const (
	modeCommand battleMode = iota
	modeSkill
	modeItem
	modeTarget
	modeFinished
)

// battleScene runs one battle: the player picks commands, enemy turns
// resolve in between, and the scene pops once the outcome is terminal.
type battleScene struct {
	game   *Game
	battle *combat.Battle

	mode     battleMode
	commands []string
	cmdIdx   int
	listIdx  int

	skillIDs []string
	itemIDs  []string
	targets  []*combat.Combatant

	pendingSkill string
	pendingItem  string
	basicAttack  bool

	log        []string
	finishMsgs []string
}

func newBattleScene(g *Game, b *combat.Battle) *battleScene {
	s := &battleScene{
		game:     g,
		battle:   b,
		commands: []string{"Attack", "Skill", "Item", "Defend", "Flee"},
	}
	s.pushLog("Enemies approach!")
	// A faster enemy lineup opens the battle.
	s.runEnemyTurns()
	return s
}

func (s *battleScene) Overlay() bool { return false }

func (s *battleScene) pushLog(msgs ...string) {
	s.log = append(s.log, msgs...)
	if len(s.log) > battleLogSize {
		s.log = s.log[len(s.log)-battleLogSize:]
	}
}

func (s *battleScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	if s.mode == modeFinished {
		if key.Key() == tcell.KeyEnter {
			s.leave()
		}
		return
	}

	switch key.Key() {
	case tcell.KeyUp:
		s.moveCursor(-1)
	case tcell.KeyDown:
		s.moveCursor(1)
	case tcell.KeyEnter:
		s.confirm()
	case tcell.KeyEscape:
		if s.mode != modeCommand {
			s.mode = modeCommand
			s.listIdx = 0
		}
	}
}

func (s *battleScene) moveCursor(delta int) {
	switch s.mode {
	case modeCommand:
		s.cmdIdx = clampIndex(s.cmdIdx+delta, len(s.commands))
	case modeSkill:
		s.listIdx = clampIndex(s.listIdx+delta, len(s.skillIDs))
	case modeItem:
		s.listIdx = clampIndex(s.listIdx+delta, len(s.itemIDs))
	case modeTarget:
		s.listIdx = clampIndex(s.listIdx+delta, len(s.targets))
	}
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (s *battleScene) confirm() {
	switch s.mode {
	case modeCommand:
		s.confirmCommand()
	case modeSkill:
		if len(s.skillIDs) == 0 {
			s.mode = modeCommand
			return
		}
		s.pendingSkill = s.skillIDs[s.listIdx]
		s.beginTargeting()
	case modeItem:
		if len(s.itemIDs) == 0 {
			s.mode = modeCommand
			return
		}
		s.pendingItem = s.itemIDs[s.listIdx]
		s.beginTargeting()
	case modeTarget:
		s.confirmTarget()
	}
}

func (s *battleScene) confirmCommand() {
	switch s.commands[s.cmdIdx] {
	case "Attack":
		s.basicAttack = true
		s.pendingSkill, s.pendingItem = "", ""
		s.beginTargeting()
	case "Skill":
		actor := s.battle.Current()
		if actor == nil {
			return
		}
		s.skillIDs = append([]string(nil), actor.Skills...)
		s.listIdx = 0
		s.mode = modeSkill
	case "Item":
		s.itemIDs = s.usableItems()
		s.listIdx = 0
		s.mode = modeItem
	case "Defend":
		s.apply(s.battle.Defend())
	case "Flee":
		s.apply(s.battle.Flee())
	}
}

// usableItems lists consumables in the bag, sorted for a stable menu.
func (s *battleScene) usableItems() []string {
	var out []string
	for id := range s.game.inv.Items() {
		item, err := s.game.registry.Item(id)
		if err == nil && item.Consumable {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// beginTargeting builds the target list for the pending action. Items
// and buffs aim at the party; everything else at living enemies.
func (s *battleScene) beginTargeting() {
	friendly := s.pendingItem != ""
	if s.pendingSkill != "" {
		if skill, err := s.game.registry.Skill(s.pendingSkill); err == nil && skill.Type == gamedata.SkillBuff {
			friendly = true
		}
	}

	s.targets = s.targets[:0]
	pool := s.battle.Enemies()
	if friendly {
		pool = s.battle.PartySide()
	}
	for _, c := range pool {
		if c.Alive() {
			s.targets = append(s.targets, c)
		}
	}
	s.listIdx = 0
	s.mode = modeTarget
}

func (s *battleScene) confirmTarget() {
	if len(s.targets) == 0 {
		s.mode = modeCommand
		return
	}
	target := s.targets[s.listIdx]

	var res combat.ActionResult
	switch {
	case s.basicAttack:
		res = s.battle.Attack(target.ID)
	case s.pendingSkill != "":
		res = s.battle.UseSkill(s.pendingSkill, target.ID)
	case s.pendingItem != "":
		res = s.battle.UseItem(s.game.inv, s.pendingItem, target.ID)
	}
	s.basicAttack, s.pendingSkill, s.pendingItem = false, "", ""
	s.apply(res)
}

// apply records an action's outcome. Rejected actions keep the turn and
// re-prompt; resolved ones hand play to the enemies.
func (s *battleScene) apply(res combat.ActionResult) {
	if res.Rejected {
		s.pushLog(res.Reason)
		s.mode = modeCommand
		return
	}
	s.pushLog(res.Messages...)
	s.mode = modeCommand
	s.cmdIdx = 0
	s.runEnemyTurns()
}

// runEnemyTurns resolves AI turns until a party member is up again or
// the battle ends.
func (s *battleScene) runEnemyTurns() {
	for s.battle.Outcome() == combat.Ongoing {
		cur := s.battle.Current()
		if cur == nil || cur.Side != combat.SideEnemy {
			break
		}
		res := s.battle.TakeEnemyTurn()
		if res.Rejected {
			break
		}
		s.pushLog(res.Messages...)
	}
	if s.battle.Outcome() != combat.Ongoing {
		s.finishMsgs = s.game.finishBattle(s.battle)
		s.mode = modeFinished
	}
}

// leave pops the scene; a defeat ends the session at the title screen.
func (s *battleScene) leave() {
	if s.battle.Outcome() == combat.Lose {
		s.game.stack.ClearAndSet(newMenuScene(s.game))
		return
	}
	s.game.stack.Pop()
}

func (s *battleScene) Update(ctx context.Context, dt float64) {}

func (s *battleScene) Render(screen *ui.Screen) {
	screen.DrawTextf(1, 0, styleTitle, "Battle  round %d", s.battle.Round())

	y := 2
	for _, e := range s.battle.Enemies() {
		style := styleEnemy
		if !e.Alive() {
			style = styleDim
		}
		screen.DrawTextf(2, y, style, "%-16s HP %d/%d", e.Name, e.HP, e.MaxHP)
		y++
	}

	y++
	cur := s.battle.Current()
	for _, c := range s.battle.PartySide() {
		style := styleGood
		if !c.Alive() {
			style = styleDim
		}
		marker := "  "
		if cur != nil && c.ID == cur.ID {
			marker = "> "
		}
		screen.DrawTextf(2, y, style, "%s%-10s HP %d/%d  ST %d  FO %d  PR %d",
			marker, c.Name, c.HP, c.MaxHP, c.Stamina, c.Focus, c.Prana)
		y++
	}

	logY := y + 1
	for i, line := range s.log {
		screen.DrawText(2, logY+i, line, styleDefault)
	}

	menuY := logY + len(s.log) + 1
	switch s.mode {
	case modeCommand:
		screen.DrawMenu(2, menuY, s.commands, s.cmdIdx, styleDefault, styleSelected)
	case modeSkill:
		screen.DrawMenu(2, menuY, s.skillNames(), s.listIdx, styleDefault, styleSelected)
	case modeItem:
		screen.DrawMenu(2, menuY, s.itemNames(), s.listIdx, styleDefault, styleSelected)
	case modeTarget:
		names := make([]string, len(s.targets))
		for i, t := range s.targets {
			names[i] = t.Name
		}
		screen.DrawMenu(2, menuY, names, s.listIdx, styleDefault, styleSelected)
	case modeFinished:
		for i, msg := range s.finishMsgs {
			screen.DrawText(2, menuY+i, msg, styleTitle)
		}
		screen.DrawText(2, menuY+len(s.finishMsgs)+1, "press enter", styleDim)
	}
}

func (s *battleScene) skillNames() []string {
	names := make([]string, len(s.skillIDs))
	for i, id := range s.skillIDs {
		skill, err := s.game.registry.Skill(id)
		if err != nil {
			names[i] = id
			continue
		}
		names[i] = fmt.Sprintf("%s (%d %s)", skill.Name, skill.Cost.Amount, skill.Cost.Type)
	}
	return names
}

func (s *battleScene) itemNames() []string {
	names := make([]string, len(s.itemIDs))
	for i, id := range s.itemIDs {
		item, err := s.game.registry.Item(id)
		if err != nil {
			names[i] = id
			continue
		}
		names[i] = fmt.Sprintf("%s x%d", item.Name, s.game.inv.Quantity(id))
	}
	return names
}
