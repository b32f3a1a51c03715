// Package gamedata holds the authored definitions the game runs on:
// actors, enemies, skills, items, zones, shops, quests and dialogues,
// embedded at build time and exposed through a validating registry.
package gamedata

import "embed"

// dataFS carries every definition file sitting next to this package.
//
//go:embed *.json
var dataFS embed.FS
