package gamedata

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup for an id that no data file defines.
// Referencing an unknown id is a configuration error: callers surface it,
// they never substitute a default.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Registry holds all loaded game data and provides lookup by id.
// Definitions are immutable after load.
type Registry struct {
	actors    map[string]*ActorDef
	enemies   map[string]*EnemyDef
	groups    map[string]*EncounterGroup
	skills    map[string]*SkillDef
	items     map[string]*ItemDef
	zones     map[string]*ZoneDef
	dialogues map[string]*DialogueDef
	quests    map[string]*QuestDef
	shops     map[string]*ShopDef

	questOrder []string
}

// LoadRegistry loads every embedded data file and cross-checks references.
func LoadRegistry() (*Registry, error) {
	r := &Registry{
		actors:    make(map[string]*ActorDef),
		enemies:   make(map[string]*EnemyDef),
		groups:    make(map[string]*EncounterGroup),
		skills:    make(map[string]*SkillDef),
		items:     make(map[string]*ItemDef),
		zones:     make(map[string]*ZoneDef),
		dialogues: make(map[string]*DialogueDef),
		quests:    make(map[string]*QuestDef),
		shops:     make(map[string]*ShopDef),
	}

	actors, err := LoadActors()
	if err != nil {
		return nil, err
	}
	for i := range actors {
		r.actors[actors[i].ID] = &actors[i]
	}

	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	for i := range enemies {
		r.enemies[enemies[i].ID] = &enemies[i]
	}

	groups, err := LoadGroups()
	if err != nil {
		return nil, err
	}
	for i := range groups {
		r.groups[groups[i].ID] = &groups[i]
	}

	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	for i := range skills {
		r.skills[skills[i].ID] = &skills[i]
	}

	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	for i := range items {
		r.items[items[i].ID] = &items[i]
	}

	zones, err := LoadZones()
	if err != nil {
		return nil, err
	}
	for i := range zones {
		r.zones[zones[i].ID] = &zones[i]
	}

	dialogues, err := LoadDialogues()
	if err != nil {
		return nil, err
	}
	for i := range dialogues {
		r.dialogues[dialogues[i].ID] = &dialogues[i]
	}

	quests, err := LoadQuests()
	if err != nil {
		return nil, err
	}
	for i := range quests {
		r.quests[quests[i].ID] = &quests[i]
		r.questOrder = append(r.questOrder, quests[i].ID)
	}

	shops, err := LoadShops()
	if err != nil {
		return nil, err
	}
	for i := range shops {
		r.shops[shops[i].ID] = &shops[i]
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustLoadRegistry loads the registry, panicking on error.
func MustLoadRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// validate cross-checks every id reference between data files.
func (r *Registry) validate() error {
	for id, a := range r.actors {
		for _, s := range a.StartingSkills {
			if _, ok := r.skills[s]; !ok {
				return fmt.Errorf("actor %s references unknown skill %q", id, s)
			}
		}
	}
	for id, e := range r.enemies {
		for _, s := range e.Skills {
			if _, ok := r.skills[s]; !ok {
				return fmt.Errorf("enemy %s references unknown skill %q", id, s)
			}
		}
	}
	for id, g := range r.groups {
		for _, e := range g.Enemies {
			if _, ok := r.enemies[e]; !ok {
				return fmt.Errorf("group %s references unknown enemy %q", id, e)
			}
		}
	}
	for id, z := range r.zones {
		if z.EncounterGroup != "" {
			if _, ok := r.groups[z.EncounterGroup]; !ok {
				return fmt.Errorf("zone %s references unknown group %q", id, z.EncounterGroup)
			}
		}
	}
	for id, q := range r.quests {
		for _, item := range q.Rewards.Items {
			if _, ok := r.items[item.ItemID]; !ok {
				return fmt.Errorf("quest %s rewards unknown item %q", id, item.ItemID)
			}
		}
		for i := range q.Stages {
			if next := q.Stages[i].NextStageID; next != "" && q.Stage(next) == nil {
				return fmt.Errorf("quest %s stage %s references unknown stage %q", id, q.Stages[i].ID, next)
			}
		}
	}
	for id, s := range r.shops {
		for _, entry := range s.Stock {
			if _, ok := r.items[entry.ItemID]; !ok {
				return fmt.Errorf("shop %s stocks unknown item %q", id, entry.ItemID)
			}
		}
	}
	for id, d := range r.dialogues {
		if d.Node(d.StartNode) == nil {
			return fmt.Errorf("dialogue %s start node %q not found", id, d.StartNode)
		}
		for i := range d.Nodes {
			n := &d.Nodes[i]
			if n.AutoAdvanceTo != "" && d.Node(n.AutoAdvanceTo) == nil {
				return fmt.Errorf("dialogue %s node %s auto-advances to unknown node %q", id, n.ID, n.AutoAdvanceTo)
			}
			for _, c := range n.Choices {
				if c.NextNodeID != "" && d.Node(c.NextNodeID) == nil {
					return fmt.Errorf("dialogue %s choice %s references unknown node %q", id, c.ID, c.NextNodeID)
				}
			}
		}
	}
	return nil
}

// Actor returns the actor definition for id.
func (r *Registry) Actor(id string) (*ActorDef, error) {
	if a, ok := r.actors[id]; ok {
		return a, nil
	}
	return nil, &NotFoundError{Kind: "actor", ID: id}
}

// Enemy returns the enemy definition for id.
func (r *Registry) Enemy(id string) (*EnemyDef, error) {
	if e, ok := r.enemies[id]; ok {
		return e, nil
	}
	return nil, &NotFoundError{Kind: "enemy", ID: id}
}

// Group returns the encounter group for id.
func (r *Registry) Group(id string) (*EncounterGroup, error) {
	if g, ok := r.groups[id]; ok {
		return g, nil
	}
	return nil, &NotFoundError{Kind: "encounter group", ID: id}
}

// Skill returns the skill definition for id.
func (r *Registry) Skill(id string) (*SkillDef, error) {
	if s, ok := r.skills[id]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Kind: "skill", ID: id}
}

// Item returns the item definition for id.
func (r *Registry) Item(id string) (*ItemDef, error) {
	if it, ok := r.items[id]; ok {
		return it, nil
	}
	return nil, &NotFoundError{Kind: "item", ID: id}
}

// Zone returns the zone metadata for id.
func (r *Registry) Zone(id string) (*ZoneDef, error) {
	if z, ok := r.zones[id]; ok {
		return z, nil
	}
	return nil, &NotFoundError{Kind: "zone", ID: id}
}

// Dialogue returns the dialogue graph for id.
func (r *Registry) Dialogue(id string) (*DialogueDef, error) {
	if d, ok := r.dialogues[id]; ok {
		return d, nil
	}
	return nil, &NotFoundError{Kind: "dialogue", ID: id}
}

// Quest returns the quest definition for id.
func (r *Registry) Quest(id string) (*QuestDef, error) {
	if q, ok := r.quests[id]; ok {
		return q, nil
	}
	return nil, &NotFoundError{Kind: "quest", ID: id}
}

// Shop returns the shop definition for id.
func (r *Registry) Shop(id string) (*ShopDef, error) {
	if s, ok := r.shops[id]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Kind: "shop", ID: id}
}

// AllQuests returns every quest definition in file order.
func (r *Registry) AllQuests() []*QuestDef {
	out := make([]*QuestDef, 0, len(r.questOrder))
	for _, id := range r.questOrder {
		out = append(out, r.quests[id])
	}
	return out
}

// AllActors returns every actor definition.
func (r *Registry) AllActors() []*ActorDef {
	out := make([]*ActorDef, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, a)
	}
	return out
}

// MainCharacter returns the actor flagged as the protagonist.
func (r *Registry) MainCharacter() (*ActorDef, error) {
	for _, a := range r.actors {
		if a.IsMainCharacter {
			return a, nil
		}
	}
	return nil, errors.New("no actor is flagged as the main character")
}
