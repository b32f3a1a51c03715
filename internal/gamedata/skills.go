package gamedata

// SkillType represents what a skill does when used.
type SkillType string

const (
	SkillAttack SkillType = "attack"
	SkillBuff   SkillType = "buff"
	SkillDebuff SkillType = "debuff"
)

// Domain selects which attacker/defender stat pair a skill uses.
type Domain string

const (
	DomainPhysical  Domain = "Physical"
	DomainSpiritual Domain = "Spiritual"
	DomainMental    Domain = "Mental"
)

// ResourceType names one of the four spendable combat resources.
type ResourceType string

const (
	ResourceNone    ResourceType = "none"
	ResourceStamina ResourceType = "stamina"
	ResourceFocus   ResourceType = "focus"
	ResourcePrana   ResourceType = "prana"
)

// ResourceCost is what a skill costs to use.
type ResourceCost struct {
	Type   ResourceType `json:"type"`
	Amount int          `json:"amount"`
}

// SkillEffect is a stat modifier applied by buff/debuff skills.
type SkillEffect struct {
	Type   string `json:"type"` // "stat_up" or "stat_down"
	Stat   string `json:"stat"`
	Amount int    `json:"amount"`
}

// SkillDef defines a combat skill loaded from JSON.
type SkillDef struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          SkillType     `json:"type"`
	Domain        Domain        `json:"domain,omitempty"`
	Power         int           `json:"power"`
	AccuracyBonus int           `json:"accuracyBonus,omitempty"`
	Cost          ResourceCost  `json:"cost"`
	Effects       []SkillEffect `json:"effects,omitempty"`
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads skill definitions from the embedded skills.json file.
func LoadSkills() ([]SkillDef, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	return file.Skills, nil
}

// ItemEffectType represents what an item does when consumed.
type ItemEffectType string

const (
	ItemHealHP         ItemEffectType = "heal_hp"
	ItemRestoreStamina ItemEffectType = "restore_stamina"
	ItemRestoreFocus   ItemEffectType = "restore_focus"
	ItemRestorePrana   ItemEffectType = "restore_prana"
)

// ItemEffect is the declarative effect of a consumable item.
type ItemEffect struct {
	Type   ItemEffectType `json:"type"`
	Amount int            `json:"amount"`
}

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Consumable bool       `json:"consumable"`
	Effect     ItemEffect `json:"effect,omitempty"`
	Value      int        `json:"value"` // base shop price
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
