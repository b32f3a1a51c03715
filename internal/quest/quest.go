// Package quest tracks quest progress against world and combat events.
package quest

import (
	"fmt"

	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/party"
)

// Status is a quest's lifecycle state. Transitions only move forward.
type Status string

const (
	NotStarted Status = "NOT_STARTED"
	Active     Status = "ACTIVE"
	Completed  Status = "COMPLETED"
	Failed     Status = "FAILED"
)

// state is one quest's runtime progress.
type state struct {
	def     *gamedata.QuestDef
	status  Status
	stageID string
	// met holds satisfied objective indexes for the current stage.
	met map[int]bool
}

// Log owns every quest's state and listens on the bus for progress.
type Log struct {
	registry *gamedata.Registry
	party    *party.Party
	inv      *inventory.Inventory
	flags    *flags.Store
	bus      *event.Bus

	quests map[string]*state
}

// NewLog builds the quest log and subscribes it to the bus events that
// drive objectives.
func NewLog(registry *gamedata.Registry, p *party.Party, inv *inventory.Inventory, fl *flags.Store, bus *event.Bus) *Log {
	l := &Log{
		registry: registry,
		party:    p,
		inv:      inv,
		flags:    fl,
		bus:      bus,
		quests:   make(map[string]*state),
	}
	for _, def := range registry.AllQuests() {
		l.quests[def.ID] = &state{def: def, status: NotStarted, met: make(map[int]bool)}
	}

	bus.Subscribe(event.ZoneEntered, l.onEvent)
	bus.Subscribe(event.NPCTalkedTo, l.onEvent)
	bus.Subscribe(event.BattleWon, l.onEvent)
	bus.Subscribe(event.FlagSet, l.onEvent)
	return l
}

// Status returns a quest's lifecycle state.
func (l *Log) Status(questID string) string {
	if q, ok := l.quests[questID]; ok {
		return string(q.status)
	}
	return string(NotStarted)
}

// StageID returns the active stage id, or "".
func (l *Log) StageID(questID string) string {
	if q, ok := l.quests[questID]; ok {
		return q.stageID
	}
	return ""
}

// Start activates a quest at its first stage. Starting a quest that has
// already moved on is a no-op.
func (l *Log) Start(questID string) error {
	q, ok := l.quests[questID]
	if !ok {
		return &gamedata.NotFoundError{Kind: "quest", ID: questID}
	}
	if q.status != NotStarted {
		return nil
	}
	if len(q.def.Stages) == 0 {
		return fmt.Errorf("quest %s has no stages", questID)
	}
	q.status = Active
	l.enterStage(q, q.def.Stages[0].ID)
	l.announce(questID, "Quest started: "+q.def.Title)
	return nil
}

// Advance moves an active quest to a named stage.
func (l *Log) Advance(questID, stageID string) error {
	q, ok := l.quests[questID]
	if !ok {
		return &gamedata.NotFoundError{Kind: "quest", ID: questID}
	}
	if q.status != Active {
		return fmt.Errorf("quest %s is %s, not active", questID, q.status)
	}
	if q.def.Stage(stageID) == nil {
		return fmt.Errorf("quest %s has no stage %s", questID, stageID)
	}
	l.enterStage(q, stageID)
	return nil
}

// Complete finishes an active quest and applies its rewards. Completing
// an already completed quest is a no-op; the rewards never apply twice.
func (l *Log) Complete(questID string) error {
	q, ok := l.quests[questID]
	if !ok {
		return &gamedata.NotFoundError{Kind: "quest", ID: questID}
	}
	switch q.status {
	case Completed:
		return nil
	case Active:
	default:
		return fmt.Errorf("quest %s is %s and cannot complete", questID, q.status)
	}
	q.status = Completed
	q.stageID = ""
	l.applyRewards(q.def)
	l.announce(questID, "Quest completed: "+q.def.Title)
	return nil
}

// Fail marks an active quest failed.
func (l *Log) Fail(questID string) error {
	q, ok := l.quests[questID]
	if !ok {
		return &gamedata.NotFoundError{Kind: "quest", ID: questID}
	}
	switch q.status {
	case Failed:
		return nil
	case Active:
	default:
		return fmt.Errorf("quest %s is %s and cannot fail", questID, q.status)
	}
	q.status = Failed
	q.stageID = ""
	l.announce(questID, "Quest failed: "+q.def.Title)
	return nil
}

// enterStage resets objective progress and immediately credits any
// flag-set objectives that are already true.
func (l *Log) enterStage(q *state, stageID string) {
	q.stageID = stageID
	q.met = make(map[int]bool)
	stage := q.def.Stage(stageID)
	for i, obj := range stage.Objectives {
		if obj.Type == gamedata.ObjectiveFlagSet && l.flags.Has(obj.FlagID) {
			q.met[i] = true
		}
	}
	l.checkStage(q)
}

// onEvent credits matching objectives on every active quest.
func (l *Log) onEvent(e event.Event) {
	for _, q := range l.quests {
		if q.status != Active {
			continue
		}
		stage := q.def.Stage(q.stageID)
		if stage == nil {
			continue
		}
		changed := false
		for i, obj := range stage.Objectives {
			if q.met[i] || !objectiveMatches(obj, e) {
				continue
			}
			q.met[i] = true
			changed = true
		}
		if changed {
			l.checkStage(q)
		}
	}
}

func objectiveMatches(obj gamedata.QuestObjective, e event.Event) bool {
	switch obj.Type {
	case gamedata.ObjectiveReachZone:
		return e.Type == event.ZoneEntered && e.ZoneID == obj.ZoneID
	case gamedata.ObjectiveTalkTo:
		return e.Type == event.NPCTalkedTo && e.ActorID == obj.ActorID
	case gamedata.ObjectiveDefeatGroup:
		return e.Type == event.BattleWon && e.GroupID == obj.GroupID
	case gamedata.ObjectiveFlagSet:
		return e.Type == event.FlagSet && e.FlagID == obj.FlagID
	}
	return false
}

// checkStage advances or completes the quest once every objective on the
// current stage is met.
func (l *Log) checkStage(q *state) {
	stage := q.def.Stage(q.stageID)
	if stage == nil {
		return
	}
	for i := range stage.Objectives {
		if !q.met[i] {
			return
		}
	}
	if stage.IsFinal || stage.NextStageID == "" {
		// Ignoring the error: the quest is Active here by construction.
		_ = l.Complete(q.def.ID)
		return
	}
	l.enterStage(q, stage.NextStageID)
}

// applyRewards grants a completed quest's reward set. XP goes to every
// living active member, full amount each.
func (l *Log) applyRewards(def *gamedata.QuestDef) {
	r := def.Rewards
	if r.XP > 0 {
		for _, m := range l.party.Active() {
			if m.Alive() {
				party.ApplyXP(m, r.XP)
			}
		}
	}
	if r.Money != 0 {
		l.inv.AddMoney(r.Money)
	}
	for _, item := range r.Items {
		l.inv.Add(item.ItemID, item.Quantity)
	}
	for _, flagID := range r.SetFlags {
		l.flags.Set(flagID)
		l.bus.Publish(event.Event{Type: event.FlagSet, FlagID: flagID})
	}
}

func (l *Log) announce(questID, message string) {
	l.bus.Publish(event.Event{Type: event.QuestLog, QuestID: questID, Message: message})
}

// Entry is one row of the quest log viewmodel.
type Entry struct {
	ID          string
	Title       string
	Status      Status
	StageText   string
	Description string
}

// Entries returns the started quests in data file order.
func (l *Log) Entries() []Entry {
	var out []Entry
	for _, def := range l.registry.AllQuests() {
		q := l.quests[def.ID]
		if q.status == NotStarted {
			continue
		}
		e := Entry{
			ID:          def.ID,
			Title:       def.Title,
			Status:      q.status,
			Description: def.Description,
		}
		if stage := def.Stage(q.stageID); stage != nil {
			e.StageText = stage.Description
		}
		out = append(out, e)
	}
	return out
}

// SavedQuest is one quest's snapshot form.
type SavedQuest struct {
	Status        Status `json:"status"`
	StageID       string `json:"stageId,omitempty"`
	MetObjectives []int  `json:"metObjectives,omitempty"`
}

// States exports quest progress for snapshots.
func (l *Log) States() map[string]SavedQuest {
	out := make(map[string]SavedQuest)
	for id, q := range l.quests {
		if q.status == NotStarted {
			continue
		}
		saved := SavedQuest{Status: q.status, StageID: q.stageID}
		for i := range q.met {
			saved.MetObjectives = append(saved.MetObjectives, i)
		}
		out[id] = saved
	}
	return out
}

// RestoreStates replaces quest progress from snapshot data. Unknown
// quest ids are a configuration error.
func (l *Log) RestoreStates(states map[string]SavedQuest) error {
	for _, q := range l.quests {
		q.status = NotStarted
		q.stageID = ""
		q.met = make(map[int]bool)
	}
	for id, saved := range states {
		q, ok := l.quests[id]
		if !ok {
			return &gamedata.NotFoundError{Kind: "quest", ID: id}
		}
		q.status = saved.Status
		q.stageID = saved.StageID
		q.met = make(map[int]bool, len(saved.MetObjectives))
		for _, i := range saved.MetObjectives {
			q.met[i] = true
		}
	}
	return nil
}
