// Package event carries notifications between game systems. Dispatch is
// synchronous: the game loop is single threaded and handlers run inline
// before Publish returns.
package event

// Type discriminates the events published on the bus.
type Type string

const (
	ZoneEntered Type = "zone_entered"
	StepTaken   Type = "step_taken"
	NPCTalkedTo Type = "npc_talked_to"
	BattleWon   Type = "battle_won"
	FlagSet     Type = "flag_set"
	QuestLog    Type = "quest_log"
)

// Event is one notification. Only the fields relevant to its Type are set.
type Event struct {
	Type    Type
	ZoneID  string
	ActorID string
	GroupID string
	FlagID  string
	QuestID string
	Message string
}

// Handler receives published events.
type Handler func(Event)

// Bus is a synchronous publish/subscribe hub.
type Bus struct {
	handlers map[Type][]Handler
	any      []Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(h Handler) {
	b.any = append(b.any, h)
}

// Publish delivers e to all matching handlers, in subscription order.
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers[e.Type] {
		h(e)
	}
	for _, h := range b.any {
		h(e)
	}
}
