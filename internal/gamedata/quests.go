package gamedata

// ObjectiveType names the kind of event that satisfies a quest objective.
type ObjectiveType string

const (
	ObjectiveTalkTo      ObjectiveType = "talk_to_npc"
	ObjectiveReachZone   ObjectiveType = "reach_zone"
	ObjectiveDefeatGroup ObjectiveType = "defeat_group"
	ObjectiveFlagSet     ObjectiveType = "flag_set"
)

// QuestObjective is a declarative predicate satisfied by game events.
type QuestObjective struct {
	Type    ObjectiveType `json:"type"`
	ActorID string        `json:"actorId,omitempty"`
	ZoneID  string        `json:"zoneId,omitempty"`
	GroupID string        `json:"groupId,omitempty"`
	FlagID  string        `json:"flagId,omitempty"`
}

// QuestStage is one step of a quest with its completion objectives.
type QuestStage struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Objectives  []QuestObjective `json:"objectives"`
	NextStageID string           `json:"nextStageId,omitempty"`
	IsFinal     bool             `json:"isFinal,omitempty"`
}

// QuestRewardItem is one item line in a quest's reward set.
type QuestRewardItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// QuestRewards are applied exactly once when a quest completes.
type QuestRewards struct {
	XP       int               `json:"xp,omitempty"`
	Money    int               `json:"money,omitempty"`
	Items    []QuestRewardItem `json:"items,omitempty"`
	SetFlags []string          `json:"setFlags,omitempty"`
}

// QuestDef defines a quest loaded from JSON.
type QuestDef struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Stages      []QuestStage `json:"stages"`
	Rewards     QuestRewards `json:"rewards,omitempty"`
}

// Stage returns the stage with the given id, or nil.
func (q *QuestDef) Stage(id string) *QuestStage {
	for i := range q.Stages {
		if q.Stages[i].ID == id {
			return &q.Stages[i]
		}
	}
	return nil
}

// QuestsFile represents the structure of quests.json.
type QuestsFile struct {
	Quests []QuestDef `json:"quests"`
}

// LoadQuests loads quest definitions from the embedded quests.json file.
func LoadQuests() ([]QuestDef, error) {
	file, err := Load[QuestsFile]("quests.json")
	if err != nil {
		return nil, err
	}
	return file.Quests, nil
}
