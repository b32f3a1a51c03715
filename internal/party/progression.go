package party

import (
	"math"

	"github.com/samdwyer/trisarira/internal/gamedata"
)

// LevelCap bounds the growth tables. XP earned at the cap is discarded.
const LevelCap = 10

// Stat points granted per level before tri-profile weighting.
const baseGrowthPerLevel = 10.0

// xpRequirements[n] is the XP needed to go from level n to n+1.
var xpRequirements = map[int]int{
	1: 30,
	2: 50,
	3: 75,
	4: 105,
	5: 140,
	6: 180,
	7: 225,
	8: 275,
	9: 330,
}

// XPForLevel returns the XP required to advance from the given level,
// or 0 at or above the cap.
func XPForLevel(level int) int {
	return xpRequirements[level]
}

// domainSplit distributes one domain's growth across its stats.
type domainSplit struct {
	stat  string
	share float64
}

var growthSplits = map[string][]domainSplit{
	"body": {
		{"STR", 0.4}, {"END", 0.3}, {"DEF", 0.2}, {"SPD", 0.1},
	},
	"mind": {
		{"FOC", 0.4}, {"ACC", 0.3}, {"INS", 0.2}, {"WILL", 0.1},
	},
	"spirit": {
		{"MAG", 0.4}, {"PRA", 0.3}, {"RES", 0.2}, {"WILL", 0.1},
	},
}

// LevelUp records one level transition for presentation and battle results.
type LevelUp struct {
	ActorID    string
	OldLevel   int
	NewLevel   int
	StatDeltas map[string]int

	HPDelta      int
	StaminaDelta int
	FocusDelta   int
	PranaDelta   int
}

// ApplyXP adds XP to a member and resolves every level-up it pays for,
// in order. Each level refills the member's resources to the new maxima.
// At the level cap further XP is discarded.
func ApplyXP(m *Member, xp int) []LevelUp {
	if xp <= 0 {
		return nil
	}
	if m.Level >= LevelCap {
		return nil
	}
	m.XP += xp

	var ups []LevelUp
	for m.Level < LevelCap {
		need := XPForLevel(m.Level)
		if need <= 0 || m.XP < need {
			break
		}
		m.XP -= need

		up := LevelUp{
			ActorID:    m.ActorID,
			OldLevel:   m.Level,
			NewLevel:   m.Level + 1,
			StatDeltas: make(map[string]int),
		}
		oldHP, oldStamina := m.MaxHP, m.MaxStamina
		oldFocus, oldPrana := m.MaxFocus, m.MaxPrana

		applyGrowth(&m.Stats, m.Profile, up.StatDeltas)
		m.Level++
		m.RecomputeMaxima()
		m.RefillResources()

		up.HPDelta = m.MaxHP - oldHP
		up.StaminaDelta = m.MaxStamina - oldStamina
		up.FocusDelta = m.MaxFocus - oldFocus
		up.PranaDelta = m.MaxPrana - oldPrana
		ups = append(ups, up)
	}

	if m.Level >= LevelCap {
		m.XP = 0
	}
	return ups
}

// applyGrowth adds one level's worth of weighted stat gains.
func applyGrowth(stats *gamedata.StatBlock, profile gamedata.TriProfile, deltas map[string]int) {
	domains := map[string]float64{
		"body":   profile.Body,
		"mind":   profile.Mind,
		"spirit": profile.Spirit,
	}
	for _, domain := range []string{"body", "mind", "spirit"} {
		gain := baseGrowthPerLevel * domains[domain]
		for _, split := range growthSplits[domain] {
			delta := int(math.Round(gain * split.share))
			if delta == 0 {
				continue
			}
			stats.Add(split.stat, delta)
			deltas[split.stat] += delta
		}
	}
}
