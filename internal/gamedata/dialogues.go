package gamedata

// ConditionType gates the visibility of dialogue nodes and choices.
type ConditionType string

const (
	CondFlagSet          ConditionType = "FLAG_SET"
	CondFlagNotSet       ConditionType = "FLAG_NOT_SET"
	CondCompanionInParty ConditionType = "COMPANION_IN_PARTY"
	CondQuestState       ConditionType = "QUEST_STATE"
)

// DialogueCondition is a single predicate over flags, party or quest state.
type DialogueCondition struct {
	Type        ConditionType `json:"type"`
	FlagID      string        `json:"flagId,omitempty"`
	ActorID     string        `json:"actorId,omitempty"`
	QuestID     string        `json:"questId,omitempty"`
	QuestStatus string        `json:"questStatus,omitempty"`
	QuestStage  string        `json:"questStage,omitempty"`
}

// DialogueEffectType names a side effect a dialogue choice can apply.
type DialogueEffectType string

const (
	EffSetFlag         DialogueEffectType = "SET_FLAG"
	EffClearFlag       DialogueEffectType = "CLEAR_FLAG"
	EffGiveItem        DialogueEffectType = "GIVE_ITEM"
	EffModifyMoney     DialogueEffectType = "MODIFY_MONEY"
	EffQuestStart      DialogueEffectType = "QUEST_START"
	EffQuestAdvance    DialogueEffectType = "QUEST_ADVANCE"
	EffQuestComplete   DialogueEffectType = "QUEST_COMPLETE"
	EffAddCompanion    DialogueEffectType = "ADD_COMPANION"
	EffRemoveCompanion DialogueEffectType = "REMOVE_COMPANION"
)

// DialogueEffect is one declarative effect on a choice's effect list.
type DialogueEffect struct {
	Type     DialogueEffectType `json:"type"`
	FlagID   string             `json:"flagId,omitempty"`
	ItemID   string             `json:"itemId,omitempty"`
	Quantity int                `json:"quantity,omitempty"`
	Amount   int                `json:"amount,omitempty"`
	QuestID  string             `json:"questId,omitempty"`
	StageID  string             `json:"stageId,omitempty"`
	ActorID  string             `json:"actorId,omitempty"`
}

// DialogueChoice is a selectable option on a dialogue node.
type DialogueChoice struct {
	ID              string              `json:"id"`
	Text            string              `json:"text"`
	Conditions      []DialogueCondition `json:"conditions,omitempty"`
	Effects         []DialogueEffect    `json:"effects,omitempty"`
	NextNodeID      string              `json:"nextNodeId,omitempty"`
	EndConversation bool                `json:"endConversation,omitempty"`
}

// DialogueNode is one node in a dialogue graph.
type DialogueNode struct {
	ID              string              `json:"id"`
	SpeakerID       string              `json:"speakerId"`
	Lines           []string            `json:"lines"`
	Choices         []DialogueChoice    `json:"choices,omitempty"`
	Conditions      []DialogueCondition `json:"conditions,omitempty"`
	AutoAdvanceTo   string              `json:"autoAdvanceTo,omitempty"`
	EndConversation bool                `json:"endConversation,omitempty"`
}

// DialogueDef is a complete dialogue graph, usually owned by one NPC.
type DialogueDef struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	StartNode string         `json:"startNode"`
	Nodes     []DialogueNode `json:"nodes"`
}

// Node returns the node with the given id, or nil.
func (d *DialogueDef) Node(id string) *DialogueNode {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// DialoguesFile represents the structure of dialogues.json.
type DialoguesFile struct {
	Dialogues []DialogueDef `json:"dialogues"`
}

// LoadDialogues loads dialogue graphs from the embedded dialogues.json file.
func LoadDialogues() ([]DialogueDef, error) {
	file, err := Load[DialoguesFile]("dialogues.json")
	if err != nil {
		return nil, err
	}
	return file.Dialogues, nil
}
