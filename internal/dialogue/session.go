// Package dialogue runs conversations over dialogue graphs.
package dialogue

import (
	"fmt"
	"log/slog"

	"github.com/samdwyer/trisarira/internal/event"
	"github.com/samdwyer/trisarira/internal/flags"
	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/inventory"
)

// PartyView is what conditions need to know about the roster.
type PartyView interface {
	IsActive(actorID string) bool
}

// QuestControl is the quest surface dialogue effects drive.
type QuestControl interface {
	Status(questID string) string
	StageID(questID string) string
	Start(questID string) error
	Advance(questID, stageID string) error
	Complete(questID string) error
}

// CompanionControl recruits and dismisses companions.
type CompanionControl interface {
	AddCompanion(actorID string) error
	RemoveCompanion(actorID string) error
}

// Env bundles the collaborators a session reads and writes.
type Env struct {
	Flags      *flags.Store
	Inventory  *inventory.Inventory
	Party      PartyView
	Quests     QuestControl
	Companions CompanionControl
	Bus        *event.Bus
}

// Session is one running conversation.
type Session struct {
	def   *gamedata.DialogueDef
	env   Env
	node  *gamedata.DialogueNode
	ended bool
}

// NewSession opens a conversation. The opening node is the first node in
// file order whose conditions pass; authors put the most specific nodes
// first. Publishes NPCTalkedTo for the dialogue owner.
func NewSession(def *gamedata.DialogueDef, env Env) (*Session, error) {
	s := &Session{def: def, env: env}

	for i := range def.Nodes {
		if s.conditionsPass(def.Nodes[i].Conditions) {
			s.node = &def.Nodes[i]
			break
		}
	}
	if s.node == nil {
		s.node = def.Node(def.StartNode)
	}
	if s.node == nil {
		return nil, fmt.Errorf("dialogue %s has no openable node", def.ID)
	}

	if env.Bus != nil {
		env.Bus.Publish(event.Event{Type: event.NPCTalkedTo, ActorID: def.OwnerID})
	}
	return s, nil
}

// Ended reports whether the conversation is over.
func (s *Session) Ended() bool {
	return s.ended
}

// ChoiceView is one selectable option, conditions already applied.
type ChoiceView struct {
	ID   string
	Text string
}

// View is the immutable presentation of the current node.
type View struct {
	SpeakerID string
	Lines     []string
	Choices   []ChoiceView
	Ended     bool
}

// View returns the current node's presentation.
func (s *Session) View() View {
	if s.ended {
		return View{Ended: true}
	}
	v := View{
		SpeakerID: s.node.SpeakerID,
		Lines:     append([]string(nil), s.node.Lines...),
	}
	for _, c := range s.node.Choices {
		if s.conditionsPass(c.Conditions) {
			v.Choices = append(v.Choices, ChoiceView{ID: c.ID, Text: c.Text})
		}
	}
	return v
}

// Continue advances past a node with no visible choices: follow the
// auto-advance edge if there is one, otherwise end. A conversation can
// always make progress.
func (s *Session) Continue() error {
	if s.ended {
		return nil
	}
	if len(s.View().Choices) > 0 {
		return fmt.Errorf("dialogue %s node %s has choices pending", s.def.ID, s.node.ID)
	}
	if s.node.EndConversation || s.node.AutoAdvanceTo == "" {
		s.ended = true
		return nil
	}
	return s.moveTo(s.node.AutoAdvanceTo)
}

// Choose applies a visible choice's effects and follows its edge.
func (s *Session) Choose(choiceID string) error {
	if s.ended {
		return fmt.Errorf("the conversation is over")
	}
	for i := range s.node.Choices {
		c := &s.node.Choices[i]
		if c.ID != choiceID {
			continue
		}
		if !s.conditionsPass(c.Conditions) {
			return fmt.Errorf("choice %s is not available", choiceID)
		}
		s.env.Flags.RecordChoice(c.ID)
		for _, eff := range c.Effects {
			s.applyEffect(eff)
		}
		if c.EndConversation || c.NextNodeID == "" {
			s.ended = true
			return nil
		}
		return s.moveTo(c.NextNodeID)
	}
	return fmt.Errorf("no such choice %s", choiceID)
}

// moveTo enters a node. A node whose conditions no longer pass is
// skipped through its auto-advance edge, or the conversation ends. A
// repeated node within one advance means the skip chain cycles; the
// conversation ends instead of spinning.
func (s *Session) moveTo(nodeID string) error {
	visited := make(map[string]bool)
	for {
		node := s.def.Node(nodeID)
		if node == nil {
			return fmt.Errorf("dialogue %s references unknown node %s", s.def.ID, nodeID)
		}
		if visited[node.ID] {
			slog.Warn("dialogue auto-advance cycles, ending conversation", "dialogue", s.def.ID, "node", node.ID)
			s.ended = true
			return nil
		}
		visited[node.ID] = true

		if s.conditionsPass(node.Conditions) {
			s.node = node
			return nil
		}
		if node.AutoAdvanceTo == "" {
			s.ended = true
			return nil
		}
		nodeID = node.AutoAdvanceTo
	}
}

func (s *Session) conditionsPass(conds []gamedata.DialogueCondition) bool {
	for _, c := range conds {
		if !s.conditionPasses(c) {
			return false
		}
	}
	return true
}

func (s *Session) conditionPasses(c gamedata.DialogueCondition) bool {
	switch c.Type {
	case gamedata.CondFlagSet:
		return s.env.Flags.Has(c.FlagID)
	case gamedata.CondFlagNotSet:
		return !s.env.Flags.Has(c.FlagID)
	case gamedata.CondCompanionInParty:
		return s.env.Party != nil && s.env.Party.IsActive(c.ActorID)
	case gamedata.CondQuestState:
		if s.env.Quests == nil {
			return false
		}
		if s.env.Quests.Status(c.QuestID) != c.QuestStatus {
			return false
		}
		return c.QuestStage == "" || s.env.Quests.StageID(c.QuestID) == c.QuestStage
	}
	slog.Warn("dialogue condition has unknown type", "dialogue", s.def.ID, "type", c.Type)
	return false
}

func (s *Session) applyEffect(eff gamedata.DialogueEffect) {
	switch eff.Type {
	case gamedata.EffSetFlag:
		s.env.Flags.Set(eff.FlagID)
		if s.env.Bus != nil {
			s.env.Bus.Publish(event.Event{Type: event.FlagSet, FlagID: eff.FlagID})
		}
	case gamedata.EffClearFlag:
		s.env.Flags.Clear(eff.FlagID)
	case gamedata.EffGiveItem:
		qty := eff.Quantity
		if qty <= 0 {
			qty = 1
		}
		s.env.Inventory.Add(eff.ItemID, qty)
	case gamedata.EffModifyMoney:
		s.env.Inventory.AddMoney(eff.Amount)
	case gamedata.EffQuestStart:
		s.questOp(eff, s.env.Quests.Start(eff.QuestID))
	case gamedata.EffQuestAdvance:
		s.questOp(eff, s.env.Quests.Advance(eff.QuestID, eff.StageID))
	case gamedata.EffQuestComplete:
		s.questOp(eff, s.env.Quests.Complete(eff.QuestID))
	case gamedata.EffAddCompanion:
		if err := s.env.Companions.AddCompanion(eff.ActorID); err != nil {
			slog.Warn("dialogue could not add companion", "dialogue", s.def.ID, "actor", eff.ActorID, "error", err)
		}
	case gamedata.EffRemoveCompanion:
		if err := s.env.Companions.RemoveCompanion(eff.ActorID); err != nil {
			slog.Warn("dialogue could not remove companion", "dialogue", s.def.ID, "actor", eff.ActorID, "error", err)
		}
	default:
		slog.Warn("dialogue effect has unknown type", "dialogue", s.def.ID, "type", eff.Type)
	}
}

func (s *Session) questOp(eff gamedata.DialogueEffect, err error) {
	if err != nil {
		slog.Warn("dialogue quest effect failed", "dialogue", s.def.ID, "quest", eff.QuestID, "effect", eff.Type, "error", err)
	}
}
