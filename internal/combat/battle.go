package combat

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/party"
)

// Outcome is the battle's terminal state, or Ongoing while it runs.
type Outcome string

const (
	Ongoing Outcome = "ONGOING"
	Win     Outcome = "WIN"
	Lose    Outcome = "LOSE"
	Escape  Outcome = "ESCAPE"
)

// Basic attack power when no skill is used.
const basicAttackPower = 5

// ActionResult reports one resolved or rejected action. Rejected actions
// do not consume the turn; the loop re-prompts.
type ActionResult struct {
	Rejected bool
	Reason   string
	Hit      bool
	Damage   int
	Messages []string
}

func rejected(reason string) ActionResult {
	return ActionResult{Rejected: true, Reason: reason}
}

// Result summarizes a finished battle.
type Result struct {
	Outcome     Outcome
	GroupID     string
	XPTotal     int
	XPPerMember map[string]int
	Money       int
	LevelUps    []party.LevelUp
}

// Battle is the combat finite-state machine. State lives in data: the
// current round order and a cursor into it, never call-stack position.
type Battle struct {
	registry *gamedata.Registry
	rng      *rand.Rand

	groupID    string
	combatants []*Combatant
	members    []*party.Member

	order   []int
	cursor  int
	round   int
	outcome Outcome
}

// NewBattle starts a battle between the active party and an encounter
// group. The rng drives hit rolls, AI targeting and money drops; tests
// pass a seeded source.
func NewBattle(registry *gamedata.Registry, members []*party.Member, group *gamedata.EncounterGroup, rng *rand.Rand) (*Battle, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("cannot start a battle with an empty party")
	}

	b := &Battle{
		registry: registry,
		rng:      rng,
		groupID:  group.ID,
		members:  members,
		outcome:  Ongoing,
	}
	for i, m := range members {
		b.combatants = append(b.combatants, FromMember(m, i))
	}
	for i, enemyID := range group.Enemies {
		def, err := registry.Enemy(enemyID)
		if err != nil {
			return nil, err
		}
		b.combatants = append(b.combatants, FromEnemy(def, i))
	}

	b.startRound()
	return b, nil
}

// Outcome returns the battle state.
func (b *Battle) Outcome() Outcome {
	return b.outcome
}

// Round returns the 1-based round number.
func (b *Battle) Round() int {
	return b.round
}

// Combatants returns every combatant, party first.
func (b *Battle) Combatants() []*Combatant {
	return b.combatants
}

// Enemies returns the enemy lineup.
func (b *Battle) Enemies() []*Combatant {
	var out []*Combatant
	for _, c := range b.combatants {
		if c.Side == SideEnemy {
			out = append(out, c)
		}
	}
	return out
}

// PartySide returns the party lineup.
func (b *Battle) PartySide() []*Combatant {
	var out []*Combatant
	for _, c := range b.combatants {
		if c.Side == SideParty {
			out = append(out, c)
		}
	}
	return out
}

// Current returns the combatant whose turn it is, or nil once the battle
// has ended.
func (b *Battle) Current() *Combatant {
	if b.outcome != Ongoing {
		return nil
	}
	return b.combatants[b.order[b.cursor]]
}

// startRound recomputes turn order: effective SPD descending, ties go to
// the party, then to lineup position.
func (b *Battle) startRound() {
	b.round++
	b.order = b.order[:0]
	for i, c := range b.combatants {
		if c.Alive() {
			b.order = append(b.order, i)
		}
	}
	sort.SliceStable(b.order, func(i, j int) bool {
		a, c := b.combatants[b.order[i]], b.combatants[b.order[j]]
		sa, sc := a.EffectiveStat("SPD"), c.EffectiveStat("SPD")
		if sa != sc {
			return sa > sc
		}
		if a.Side != c.Side {
			return a.Side == SideParty
		}
		return a.Index < c.Index
	})
	b.cursor = 0
	b.skipDead()
	// A new turn ends the actor's defensive stance
	if cur := b.Current(); cur != nil {
		cur.Defending = false
	}
}

// advance moves to the next living combatant, starting a new round when
// the order is exhausted.
func (b *Battle) advance() {
	if b.outcome != Ongoing {
		return
	}
	b.cursor++
	b.skipDead()
	if b.cursor >= len(b.order) {
		b.startRound()
		return
	}
	if cur := b.Current(); cur != nil {
		cur.Defending = false
	}
}

func (b *Battle) skipDead() {
	for b.cursor < len(b.order) && !b.combatants[b.order[b.cursor]].Alive() {
		b.cursor++
	}
}

// endCheck resolves the battle if either side is wiped out.
func (b *Battle) endCheck() {
	enemiesAlive, partyAlive := false, false
	for _, c := range b.combatants {
		if !c.Alive() {
			continue
		}
		if c.Side == SideEnemy {
			enemiesAlive = true
		} else {
			partyAlive = true
		}
	}
	switch {
	case !partyAlive:
		b.outcome = Lose
	case !enemiesAlive:
		b.outcome = Win
	}
}

func (b *Battle) findTarget(id string) *Combatant {
	for _, c := range b.combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// hitChance is clamped to [20, 95]; attacks always have a real chance to
// land and to miss.
func hitChance(attacker, defender *Combatant, bonus int) int {
	chance := 80 + (attacker.EffectiveStat("ACC")-defender.EffectiveStat("SPD"))*2 + bonus
	if chance < 20 {
		chance = 20
	}
	if chance > 95 {
		chance = 95
	}
	return chance
}

// damage computes domain damage with a floor of 1; landed hits always
// matter.
func damage(attacker, defender *Combatant, domain gamedata.Domain, power int) int {
	var raw float64
	switch domain {
	case gamedata.DomainSpiritual:
		raw = float64(attacker.EffectiveStat("MAG")+power) - float64(defender.EffectiveStat("RES"))*0.5
	case gamedata.DomainMental:
		raw = float64(attacker.EffectiveStat("FOC")+power) - float64(defender.EffectiveStat("WILL"))*0.5
	default:
		raw = float64(attacker.EffectiveStat("STR"))*1.0 + float64(power) - float64(defender.EffectiveStat("DEF"))*0.5
	}
	if defender.Defending {
		raw *= 0.5
	}
	dmg := int(raw)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// resolveStrike rolls to hit and applies damage.
func (b *Battle) resolveStrike(attacker, defender *Combatant, domain gamedata.Domain, power, accBonus int, label string) ActionResult {
	res := ActionResult{}
	chance := hitChance(attacker, defender, accBonus)
	roll := b.rng.Intn(100) + 1
	if roll > chance {
		res.Messages = append(res.Messages, fmt.Sprintf("%s's %s misses %s.", attacker.Name, label, defender.Name))
		return res
	}
	dmg := damage(attacker, defender, domain, power)
	defender.TakeDamage(dmg)
	res.Hit = true
	res.Damage = dmg
	res.Messages = append(res.Messages, fmt.Sprintf("%s's %s hits %s for %d.", attacker.Name, label, defender.Name, dmg))
	if !defender.Alive() {
		res.Messages = append(res.Messages, fmt.Sprintf("%s falls.", defender.Name))
	}
	return res
}

// Attack performs the basic physical attack against a target id.
func (b *Battle) Attack(targetID string) ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	target := b.findTarget(targetID)
	if target == nil {
		return rejected(fmt.Sprintf("no such target %s", targetID))
	}
	if !target.Alive() {
		return rejected(fmt.Sprintf("%s is already down", target.Name))
	}

	res := b.resolveStrike(actor, target, gamedata.DomainPhysical, basicAttackPower, 0, "attack")
	b.endCheck()
	b.advance()
	return res
}

// UseSkill spends the skill's resource cost and resolves it. The cost is
// checked before anything is deducted; an unaffordable skill rejects
// without side effects.
func (b *Battle) UseSkill(skillID, targetID string) ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	skill, err := b.registry.Skill(skillID)
	if err != nil {
		return rejected(err.Error())
	}
	if !actor.CanPay(skill.Cost) {
		return rejected(fmt.Sprintf("not enough %s for %s", skill.Cost.Type, skill.Name))
	}
	target := b.findTarget(targetID)
	if target == nil {
		return rejected(fmt.Sprintf("no such target %s", targetID))
	}

	var res ActionResult
	switch skill.Type {
	case gamedata.SkillAttack:
		if !target.Alive() {
			return rejected(fmt.Sprintf("%s is already down", target.Name))
		}
		actor.Pay(skill.Cost)
		res = b.resolveStrike(actor, target, skill.Domain, skill.Power, skill.AccuracyBonus, skill.Name)
	case gamedata.SkillBuff, gamedata.SkillDebuff:
		actor.Pay(skill.Cost)
		sign := 1
		verb := "rises"
		if skill.Type == gamedata.SkillDebuff {
			sign = -1
			verb = "drops"
		}
		for _, eff := range skill.Effects {
			target.Modify(eff.Stat, sign*eff.Amount)
			res.Messages = append(res.Messages, fmt.Sprintf("%s's %s %s.", target.Name, eff.Stat, verb))
		}
		res.Hit = true
	default:
		return rejected(fmt.Sprintf("skill %s has unknown type %q", skill.ID, skill.Type))
	}

	b.endCheck()
	b.advance()
	return res
}

// Defend halves incoming damage until the actor's next turn starts.
func (b *Battle) Defend() ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	actor.Defending = true
	res := ActionResult{Hit: true, Messages: []string{fmt.Sprintf("%s braces.", actor.Name)}}
	b.advance()
	return res
}

// UseItem consumes one inventory item and applies its effect to a target.
func (b *Battle) UseItem(inv *inventory.Inventory, itemID, targetID string) ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	item, err := b.registry.Item(itemID)
	if err != nil {
		return rejected(err.Error())
	}
	if !item.Consumable {
		return rejected(fmt.Sprintf("%s cannot be used", item.Name))
	}
	if !inv.Has(itemID) {
		return rejected(fmt.Sprintf("no %s left", item.Name))
	}
	target := b.findTarget(targetID)
	if target == nil {
		return rejected(fmt.Sprintf("no such target %s", targetID))
	}
	if !target.Alive() {
		return rejected(fmt.Sprintf("%s is beyond items", target.Name))
	}

	if err := inv.Remove(itemID, 1); err != nil {
		return rejected(err.Error())
	}
	target.RestoreResource(item.Effect.Type, item.Effect.Amount)
	res := ActionResult{
		Hit:      true,
		Messages: []string{fmt.Sprintf("%s uses %s on %s.", actor.Name, item.Name, target.Name)},
	}
	b.advance()
	return res
}

// Flee attempts to escape. The chance scales with the actor's speed
// against the fastest living enemy, clamped to [20, 90].
func (b *Battle) Flee() ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	fastest := 0
	for _, e := range b.Enemies() {
		if e.Alive() && e.EffectiveStat("SPD") > fastest {
			fastest = e.EffectiveStat("SPD")
		}
	}
	chance := 50 + (actor.EffectiveStat("SPD")-fastest)*5
	if chance < 20 {
		chance = 20
	}
	if chance > 90 {
		chance = 90
	}

	if b.rng.Intn(100)+1 <= chance {
		b.outcome = Escape
		return ActionResult{Hit: true, Messages: []string{"The party slips away."}}
	}
	res := ActionResult{Messages: []string{"No way out."}}
	b.advance()
	return res
}

// TakeEnemyTurn runs the AI for the current enemy: a random living party
// target, the first affordable skill, otherwise the basic attack.
func (b *Battle) TakeEnemyTurn() ActionResult {
	actor := b.Current()
	if actor == nil {
		return rejected("the battle is over")
	}
	if actor.Side != SideEnemy {
		return rejected(fmt.Sprintf("it is %s's turn", actor.Name))
	}

	var living []*Combatant
	for _, c := range b.PartySide() {
		if c.Alive() {
			living = append(living, c)
		}
	}
	if len(living) == 0 {
		b.endCheck()
		return rejected("no targets remain")
	}
	target := living[b.rng.Intn(len(living))]

	for _, skillID := range actor.Skills {
		skill, err := b.registry.Skill(skillID)
		if err != nil || skill.Type != gamedata.SkillAttack {
			continue
		}
		if !actor.CanPay(skill.Cost) {
			continue
		}
		actor.Pay(skill.Cost)
		res := b.resolveStrike(actor, target, skill.Domain, skill.Power, skill.AccuracyBonus, skill.Name)
		b.endCheck()
		b.advance()
		return res
	}

	res := b.resolveStrike(actor, target, gamedata.DomainPhysical, basicAttackPower, 0, "attack")
	b.endCheck()
	b.advance()
	return res
}

// Finish folds the battle back into the party: resources write back, and
// on a win every surviving member receives the full XP total while the
// money drop is rolled per enemy. Call exactly once, after the outcome
// is terminal.
func (b *Battle) Finish() (*Result, error) {
	if b.outcome == Ongoing {
		return nil, fmt.Errorf("battle is still ongoing")
	}

	result := &Result{
		Outcome:     b.outcome,
		GroupID:     b.groupID,
		XPPerMember: make(map[string]int),
	}

	for _, c := range b.PartySide() {
		c.WriteBack(b.members[c.Index])
	}

	if b.outcome != Win {
		return result, nil
	}

	for _, e := range b.Enemies() {
		result.XPTotal += e.XPReward
		if e.MoneyMax > e.MoneyMin {
			result.Money += e.MoneyMin + b.rng.Intn(e.MoneyMax-e.MoneyMin+1)
		} else {
			result.Money += e.MoneyMin
		}
	}

	for _, m := range b.members {
		if !m.Alive() {
			continue
		}
		result.XPPerMember[m.ActorID] = result.XPTotal
		result.LevelUps = append(result.LevelUps, party.ApplyXP(m, result.XPTotal)...)
	}
	return result, nil
}
