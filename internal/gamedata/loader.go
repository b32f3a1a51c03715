package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load decodes one embedded definition file into its file struct.
func Load[T any](filename string) (T, error) {
	var out T

	raw, err := dataFS.ReadFile(filename)
	if err != nil {
		return out, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	return out, nil
}

// MustLoad is Load for data the game cannot start without.
func MustLoad[T any](filename string) T {
	out, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return out
}
