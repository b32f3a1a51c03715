package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/trisarira/internal/gamedata"
	"github.com/samdwyer/trisarira/internal/zonemap"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the game data and zone maps for broken references",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		return fmt.Errorf("game data failed validation: %w", err)
	}

	zones, err := gamedata.LoadZones()
	if err != nil {
		return err
	}

	maps := make(map[string]*zonemap.ZoneMap, len(zones))
	for _, zone := range zones {
		zm, err := zonemap.Load(zone.ID)
		if err != nil {
			return fmt.Errorf("zone %s: %w", zone.ID, err)
		}
		maps[zone.ID] = zm
	}

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for zoneID, zm := range maps {
		for _, p := range zm.Portals {
			target, ok := maps[p.TargetZone]
			if !ok {
				report("zone %s: portal at %d,%d targets unknown zone %s", zoneID, p.X, p.Y, p.TargetZone)
				continue
			}
			if p.TargetSpawn != "" && target.SpawnByID(p.TargetSpawn) == nil {
				report("zone %s: portal at %d,%d targets unknown spawn %s/%s", zoneID, p.X, p.Y, p.TargetZone, p.TargetSpawn)
			}
		}
		for _, t := range zm.Triggers {
			checkTrigger(registry, zoneID, &t, report)
		}
		if zm.DefaultSpawn() == nil {
			report("zone %s: no default spawn", zoneID)
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	fmt.Printf("ok: %d zones, %d quests, all references resolve\n", len(maps), len(registry.AllQuests()))
	return nil
}

func checkTrigger(registry *gamedata.Registry, zoneID string, t *zonemap.Trigger, report func(string, ...any)) {
	fail := func(kind, id string, err error) {
		if err != nil {
			report("zone %s: trigger %s references unknown %s %s", zoneID, t.ID, kind, id)
		}
	}
	switch t.Event.Type {
	case zonemap.EventChest:
		_, err := registry.Item(t.Event.ItemID)
		fail("item", t.Event.ItemID, err)
	case zonemap.EventEncounter:
		_, err := registry.Group(t.Event.GroupID)
		fail("group", t.Event.GroupID, err)
	case zonemap.EventDialogue:
		_, err := registry.Dialogue(t.Event.DialogueID)
		fail("dialogue", t.Event.DialogueID, err)
	case zonemap.EventShop:
		_, err := registry.Shop(t.Event.ShopID)
		fail("shop", t.Event.ShopID, err)
	case zonemap.EventSetFlag:
		if t.Event.FlagID == "" {
			report("zone %s: trigger %s sets an empty flag", zoneID, t.ID)
		}
	}
}
