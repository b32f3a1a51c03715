// Package party holds the roster and member progression.
package party

import (
	"github.com/samdwyer/trisarira/internal/gamedata"
)

// Member is one recruited character. It persists across battles and zone
// transitions; combat works on copies, never on the member directly.
type Member struct {
	ActorID string
	Name    string
	Level   int
	XP      int

	Stats   gamedata.StatBlock
	Profile gamedata.TriProfile
	Skills  []string

	MaxHP      int
	MaxStamina int
	MaxFocus   int
	MaxPrana   int

	HP      int
	Stamina int
	Focus   int
	Prana   int
}

// NewMember builds a member from its actor template at the template's
// level, with full resources.
func NewMember(def *gamedata.ActorDef) *Member {
	m := &Member{
		ActorID: def.ID,
		Name:    def.Name,
		Level:   def.Level,
		Stats:   def.BaseStats,
		Profile: def.TriProfile,
		Skills:  append([]string(nil), def.StartingSkills...),
	}
	m.RecomputeMaxima()
	m.RefillResources()
	return m
}

// RecomputeMaxima rederives the resource maxima from the current stats.
// Current values are clamped, never refilled.
func (m *Member) RecomputeMaxima() {
	m.MaxHP = 30 + m.Stats.END*6
	m.MaxStamina = 10 + m.Stats.END*3
	m.MaxFocus = 10 + m.Stats.FOC*3
	m.MaxPrana = m.Stats.PRA

	m.HP = min(m.HP, m.MaxHP)
	m.Stamina = min(m.Stamina, m.MaxStamina)
	m.Focus = min(m.Focus, m.MaxFocus)
	m.Prana = min(m.Prana, m.MaxPrana)
}

// RefillResources sets every pool to its maximum.
func (m *Member) RefillResources() {
	m.HP = m.MaxHP
	m.Stamina = m.MaxStamina
	m.Focus = m.MaxFocus
	m.Prana = m.MaxPrana
}

// Alive reports whether the member has HP left.
func (m *Member) Alive() bool {
	return m.HP > 0
}
