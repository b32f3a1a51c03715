package party

import (
	"fmt"

	"github.com/samdwyer/trisarira/internal/gamedata"
)

// MaxActive is the active party size limit.
const MaxActive = 2

// Party is the full roster: the active fighting lineup plus a reserve
// pool. The main character is always in the roster and can never leave
// the active lineup.
type Party struct {
	active  []*Member
	reserve []*Member
	mcID    string
}

// New creates a party containing only the main character.
func New(mc *gamedata.ActorDef) *Party {
	p := &Party{mcID: mc.ID}
	p.active = append(p.active, NewMember(mc))
	return p
}

// MainCharacterID returns the protected member's actor id.
func (p *Party) MainCharacterID() string {
	return p.mcID
}

// Active returns the active lineup in order.
func (p *Party) Active() []*Member {
	return p.active
}

// Reserve returns the reserve pool in order.
func (p *Party) Reserve() []*Member {
	return p.reserve
}

// Member finds a roster member by actor id, active or reserve.
func (p *Party) Member(actorID string) *Member {
	for _, m := range p.active {
		if m.ActorID == actorID {
			return m
		}
	}
	for _, m := range p.reserve {
		if m.ActorID == actorID {
			return m
		}
	}
	return nil
}

// IsActive reports whether the actor is in the active lineup.
func (p *Party) IsActive(actorID string) bool {
	for _, m := range p.active {
		if m.ActorID == actorID {
			return true
		}
	}
	return false
}

// Recruit adds a new member from its template, into the active lineup if
// there is room, otherwise into reserve. Recruiting an existing member is
// a no-op.
func (p *Party) Recruit(def *gamedata.ActorDef) *Member {
	if existing := p.Member(def.ID); existing != nil {
		return existing
	}
	m := NewMember(def)
	if len(p.active) < MaxActive {
		p.active = append(p.active, m)
	} else {
		p.reserve = append(p.reserve, m)
	}
	return m
}

// AddToActive moves a reserve member into the active lineup.
func (p *Party) AddToActive(actorID string) error {
	if p.IsActive(actorID) {
		return nil
	}
	if len(p.active) >= MaxActive {
		return fmt.Errorf("party is full (%d active)", MaxActive)
	}
	for i, m := range p.reserve {
		if m.ActorID == actorID {
			p.reserve = append(p.reserve[:i], p.reserve[i+1:]...)
			p.active = append(p.active, m)
			return nil
		}
	}
	return fmt.Errorf("%s is not in the roster", actorID)
}

// MoveToReserve moves an active member to reserve. The main character
// is protected and never leaves the lineup.
func (p *Party) MoveToReserve(actorID string) error {
	if actorID == p.mcID {
		return fmt.Errorf("%s leads the party and cannot be benched", actorID)
	}
	for i, m := range p.active {
		if m.ActorID == actorID {
			p.active = append(p.active[:i], p.active[i+1:]...)
			p.reserve = append(p.reserve, m)
			return nil
		}
	}
	return fmt.Errorf("%s is not in the active party", actorID)
}

// Remove drops a member from the roster entirely. The main character
// cannot be removed.
func (p *Party) Remove(actorID string) error {
	if actorID == p.mcID {
		return fmt.Errorf("%s leads the party and cannot be removed", actorID)
	}
	for i, m := range p.active {
		if m.ActorID == actorID {
			p.active = append(p.active[:i], p.active[i+1:]...)
			return nil
		}
	}
	for i, m := range p.reserve {
		if m.ActorID == actorID {
			p.reserve = append(p.reserve[:i], p.reserve[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s is not in the roster", actorID)
}

// AnyAlive reports whether at least one active member has HP left.
func (p *Party) AnyAlive() bool {
	for _, m := range p.active {
		if m.Alive() {
			return true
		}
	}
	return false
}

// All returns every roster member, active first.
func (p *Party) All() []*Member {
	out := make([]*Member, 0, len(p.active)+len(p.reserve))
	out = append(out, p.active...)
	out = append(out, p.reserve...)
	return out
}

// RestoreRoster replaces the roster from snapshot data. The active slice
// must include the main character.
func (p *Party) RestoreRoster(active, reserve []*Member) error {
	found := false
	for _, m := range active {
		if m.ActorID == p.mcID {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("restored party does not include %s", p.mcID)
	}
	p.active = active
	p.reserve = reserve
	return nil
}
