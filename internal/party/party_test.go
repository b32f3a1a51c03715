package party

import (
	"testing"

	"github.com/samdwyer/trisarira/internal/gamedata"
)

func testActor(id string, level int) *gamedata.ActorDef {
	return &gamedata.ActorDef{
		ID:    id,
		Name:  id,
		Level: level,
		BaseStats: gamedata.StatBlock{
			STR: 6, END: 5, DEF: 4, SPD: 5,
			FOC: 5, ACC: 6, INS: 4, WILL: 5,
			MAG: 4, PRA: 6, RES: 4,
		},
		TriProfile: gamedata.TriProfile{Body: 0.5, Mind: 0.2, Spirit: 0.3},
	}
}

func TestResourceMaxima(t *testing.T) {
	m := NewMember(testActor("mc_test", 1))

	if m.MaxHP != 30+5*6 {
		t.Errorf("MaxHP = %d, want %d", m.MaxHP, 30+5*6)
	}
	if m.MaxStamina != 10+5*3 {
		t.Errorf("MaxStamina = %d, want %d", m.MaxStamina, 10+5*3)
	}
	if m.MaxFocus != 10+5*3 {
		t.Errorf("MaxFocus = %d, want %d", m.MaxFocus, 10+5*3)
	}
	if m.MaxPrana != 6 {
		t.Errorf("MaxPrana = %d, want 6", m.MaxPrana)
	}
	if m.HP != m.MaxHP || m.Stamina != m.MaxStamina {
		t.Error("New member should start with full resources")
	}
}

func TestApplyXPSingleLevel(t *testing.T) {
	m := NewMember(testActor("mc_test", 1))

	ups := ApplyXP(m, 30)

	if len(ups) != 1 {
		t.Fatalf("Expected 1 level-up event, got %d", len(ups))
	}
	if m.Level != 2 {
		t.Errorf("Level = %d, want 2", m.Level)
	}
	if m.XP != 0 {
		t.Errorf("XP = %d, want 0", m.XP)
	}
	up := ups[0]
	if up.OldLevel != 1 || up.NewLevel != 2 {
		t.Errorf("Transition %d->%d, want 1->2", up.OldLevel, up.NewLevel)
	}
	if len(up.StatDeltas) == 0 {
		t.Error("Level-up should carry stat deltas")
	}
	if m.HP != m.MaxHP {
		t.Error("Level-up should refill HP to the new maximum")
	}
}

func TestApplyXPMultiLevel(t *testing.T) {
	m := NewMember(testActor("mc_test", 1))

	ups := ApplyXP(m, 80) // 30 for 1->2, 50 for 2->3

	if len(ups) != 2 {
		t.Fatalf("Expected 2 level-up events, got %d", len(ups))
	}
	if m.Level != 3 {
		t.Errorf("Level = %d, want 3", m.Level)
	}
	if m.XP != 0 {
		t.Errorf("XP = %d, want 0", m.XP)
	}
	if ups[0].NewLevel != 2 || ups[1].NewLevel != 3 {
		t.Errorf("Transitions %d, %d; want 2, 3", ups[0].NewLevel, ups[1].NewLevel)
	}
}

func TestApplyXPMonotonic(t *testing.T) {
	m := NewMember(testActor("mc_test", 1))

	for i := 0; i < 100; i++ {
		prevLevel := m.Level
		prevTotal := m.MaxHP + m.MaxStamina + m.MaxFocus + m.MaxPrana

		ApplyXP(m, 37)

		if m.Level < prevLevel {
			t.Fatalf("Level decreased: %d -> %d", prevLevel, m.Level)
		}
		total := m.MaxHP + m.MaxStamina + m.MaxFocus + m.MaxPrana
		if total < prevTotal {
			t.Fatalf("Resource maxima decreased: %d -> %d", prevTotal, total)
		}
	}
}

func TestApplyXPLevelCap(t *testing.T) {
	m := NewMember(testActor("mc_test", 1))

	ApplyXP(m, 1000000)

	if m.Level != LevelCap {
		t.Errorf("Level = %d, want cap %d", m.Level, LevelCap)
	}
	if m.XP != 0 {
		t.Errorf("XP at cap = %d, want 0", m.XP)
	}

	ups := ApplyXP(m, 500)
	if len(ups) != 0 {
		t.Errorf("Expected no level-ups past the cap, got %d", len(ups))
	}
	if m.Level != LevelCap || m.XP != 0 {
		t.Error("XP past the cap should be discarded")
	}
}

func TestApplyXPGrowthSplits(t *testing.T) {
	// Pure body growth: base 10 into 40/30/20/10
	def := testActor("mc_test", 1)
	def.TriProfile = gamedata.TriProfile{Body: 1.0}
	m := NewMember(def)
	before := m.Stats

	ups := ApplyXP(m, 30)
	if len(ups) != 1 {
		t.Fatalf("Expected 1 level-up, got %d", len(ups))
	}

	if m.Stats.STR != before.STR+4 {
		t.Errorf("STR gained %d, want 4", m.Stats.STR-before.STR)
	}
	if m.Stats.END != before.END+3 {
		t.Errorf("END gained %d, want 3", m.Stats.END-before.END)
	}
	if m.Stats.DEF != before.DEF+2 {
		t.Errorf("DEF gained %d, want 2", m.Stats.DEF-before.DEF)
	}
	if m.Stats.SPD != before.SPD+1 {
		t.Errorf("SPD gained %d, want 1", m.Stats.SPD-before.SPD)
	}
	if m.Stats.FOC != before.FOC {
		t.Error("Zero-weight domain should not grow")
	}
}

func TestRecruitIdempotent(t *testing.T) {
	p := New(testActor("mc_test", 1))

	first := p.Recruit(testActor("comp_test", 2))
	first.XP = 17
	again := p.Recruit(testActor("comp_test", 2))

	if again != first {
		t.Error("Recruiting an existing member should return it unchanged")
	}
	if again.XP != 17 {
		t.Error("Re-recruit must not reset member state")
	}
	if len(p.Active()) != 2 {
		t.Errorf("Active size = %d, want 2", len(p.Active()))
	}
}

func TestRecruitOverflowGoesToReserve(t *testing.T) {
	p := New(testActor("mc_test", 1))
	p.Recruit(testActor("comp_a", 1))
	p.Recruit(testActor("comp_b", 1))

	if len(p.Active()) != MaxActive {
		t.Errorf("Active size = %d, want %d", len(p.Active()), MaxActive)
	}
	if len(p.Reserve()) != 1 || p.Reserve()[0].ActorID != "comp_b" {
		t.Errorf("Reserve = %v, want [comp_b]", p.Reserve())
	}
}

func TestAddToActiveWhenFull(t *testing.T) {
	p := New(testActor("mc_test", 1))
	p.Recruit(testActor("comp_a", 1))
	p.Recruit(testActor("comp_b", 1))

	if err := p.AddToActive("comp_b"); err == nil {
		t.Error("Expected rejection when the party is full")
	}

	if err := p.MoveToReserve("comp_a"); err != nil {
		t.Fatalf("MoveToReserve failed: %v", err)
	}
	if err := p.AddToActive("comp_b"); err != nil {
		t.Fatalf("AddToActive failed: %v", err)
	}
	if !p.IsActive("comp_b") || p.IsActive("comp_a") {
		t.Error("Swap did not take effect")
	}
}

func TestMainCharacterProtected(t *testing.T) {
	p := New(testActor("mc_test", 1))
	p.Recruit(testActor("comp_a", 1))

	if err := p.MoveToReserve("mc_test"); err == nil {
		t.Error("Benching the main character must be rejected")
	}
	if err := p.Remove("mc_test"); err == nil {
		t.Error("Removing the main character must be rejected")
	}
	if !p.IsActive("mc_test") {
		t.Error("Main character should still be active")
	}
	if len(p.Active()) != 2 {
		t.Error("Failed operations must not mutate the roster")
	}
}
