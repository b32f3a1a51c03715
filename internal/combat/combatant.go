// Package combat runs turn-based battles between the active party and an
// encounter group. Battles work on combatant copies; party members are
// only written back when the battle ends.
package combat

import (
	"fmt"

	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/party"
)

// Side says which lineup a combatant fights for.
type Side int

const (
	SideParty Side = iota
	SideEnemy
)

// Combatant is a battle-scoped copy of a party member or a spawned enemy.
type Combatant struct {
	ID   string
	Name string
	Side Side

	// Position in the lineup at battle start, for tie-breaking.
	Index int

	stats     gamedata.StatBlock
	modifiers map[string]int

	HP         int
	MaxHP      int
	Stamina    int
	MaxStamina int
	Focus      int
	MaxFocus   int
	Prana      int
	MaxPrana   int

	Skills    []string
	Defending bool

	// Enemy-only reward fields.
	XPReward int
	MoneyMin int
	MoneyMax int
}

// FromMember copies a party member into a combatant. Enemy lineups use
// distinct ids even for duplicate members, so ids stay unique per battle.
func FromMember(m *party.Member, index int) *Combatant {
	return &Combatant{
		ID:         m.ActorID,
		Name:       m.Name,
		Side:       SideParty,
		Index:      index,
		stats:      m.Stats,
		modifiers:  make(map[string]int),
		HP:         m.HP,
		MaxHP:      m.MaxHP,
		Stamina:    m.Stamina,
		MaxStamina: m.MaxStamina,
		Focus:      m.Focus,
		MaxFocus:   m.MaxFocus,
		Prana:      m.Prana,
		MaxPrana:   m.MaxPrana,
		Skills:     append([]string(nil), m.Skills...),
	}
}

// FromEnemy spawns a combatant from an enemy definition at full resources.
func FromEnemy(def *gamedata.EnemyDef, index int) *Combatant {
	c := &Combatant{
		ID:        fmt.Sprintf("%s#%d", def.ID, index),
		Name:      def.Name,
		Side:      SideEnemy,
		Index:     index,
		stats:     def.BaseStats,
		modifiers: make(map[string]int),
		Skills:    append([]string(nil), def.Skills...),
		XPReward:  def.XPReward,
		MoneyMin:  def.MoneyMin,
		MoneyMax:  def.MoneyMax,
	}
	c.MaxHP = 30 + c.stats.END*6
	c.MaxStamina = 10 + c.stats.END*3
	c.MaxFocus = 10 + c.stats.FOC*3
	c.MaxPrana = c.stats.PRA
	c.HP = c.MaxHP
	c.Stamina = c.MaxStamina
	c.Focus = c.MaxFocus
	c.Prana = c.MaxPrana
	return c
}

// Alive reports whether the combatant has HP left.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// EffectiveStat returns a base stat plus battle modifiers, floored at 0.
func (c *Combatant) EffectiveStat(name string) int {
	v := c.stats.Get(name) + c.modifiers[name]
	if v < 0 {
		return 0
	}
	return v
}

// Modify shifts a stat for the rest of the battle.
func (c *Combatant) Modify(stat string, delta int) {
	c.modifiers[stat] += delta
}

// CanPay reports whether the combatant can afford a resource cost.
func (c *Combatant) CanPay(cost gamedata.ResourceCost) bool {
	switch cost.Type {
	case gamedata.ResourceStamina:
		return c.Stamina >= cost.Amount
	case gamedata.ResourceFocus:
		return c.Focus >= cost.Amount
	case gamedata.ResourcePrana:
		return c.Prana >= cost.Amount
	}
	return true
}

// Pay deducts a resource cost. Callers check CanPay first.
func (c *Combatant) Pay(cost gamedata.ResourceCost) {
	switch cost.Type {
	case gamedata.ResourceStamina:
		c.Stamina -= cost.Amount
	case gamedata.ResourceFocus:
		c.Focus -= cost.Amount
	case gamedata.ResourcePrana:
		c.Prana -= cost.Amount
	}
}

// TakeDamage applies damage, flooring HP at 0.
func (c *Combatant) TakeDamage(amount int) {
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal restores HP up to the maximum.
func (c *Combatant) Heal(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// RestoreResource refills one pool up to its maximum.
func (c *Combatant) RestoreResource(kind gamedata.ItemEffectType, amount int) {
	switch kind {
	case gamedata.ItemHealHP:
		c.Heal(amount)
	case gamedata.ItemRestoreStamina:
		c.Stamina = min(c.Stamina+amount, c.MaxStamina)
	case gamedata.ItemRestoreFocus:
		c.Focus = min(c.Focus+amount, c.MaxFocus)
	case gamedata.ItemRestorePrana:
		c.Prana = min(c.Prana+amount, c.MaxPrana)
	}
}

// WriteBack copies battle-end resources onto the member. Stat modifiers
// are battle-scoped and never persist.
func (c *Combatant) WriteBack(m *party.Member) {
	m.HP = c.HP
	m.Stamina = c.Stamina
	m.Focus = c.Focus
	m.Prana = c.Prana
}
