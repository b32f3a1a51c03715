package gamedata

// ActorDef defines a playable or recruitable character loaded from JSON.
type ActorDef struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Level           int        `json:"level"`
	IsMainCharacter bool       `json:"isMainCharacter,omitempty"`
	BaseStats       StatBlock  `json:"baseStats"`
	TriProfile      TriProfile `json:"triProfile"`
	StartingSkills  []string   `json:"startingSkills"`
}

// ActorsFile represents the structure of actors.json.
type ActorsFile struct {
	Actors []ActorDef `json:"actors"`
}

// LoadActors loads actor definitions from the embedded actors.json file.
func LoadActors() ([]ActorDef, error) {
	file, err := Load[ActorsFile]("actors.json")
	if err != nil {
		return nil, err
	}
	return file.Actors, nil
}

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	BaseStats StatBlock `json:"baseStats"`
	Skills    []string  `json:"skills"`
	XPReward  int       `json:"xpReward"`
	MoneyMin  int       `json:"moneyMin"`
	MoneyMax  int       `json:"moneyMax"`
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// EncounterGroup names a fixed set of enemies that fight together.
type EncounterGroup struct {
	ID      string   `json:"id"`
	Enemies []string `json:"enemies"`
}

// GroupsFile represents the structure of groups.json.
type GroupsFile struct {
	Groups []EncounterGroup `json:"groups"`
}

// LoadGroups loads encounter group definitions from the embedded groups.json file.
func LoadGroups() ([]EncounterGroup, error) {
	file, err := Load[GroupsFile]("groups.json")
	if err != nil {
		return nil, err
	}
	return file.Groups, nil
}
