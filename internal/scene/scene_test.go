package scene

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/ui"
)

// fakeScene records which lifecycle calls it received.
type fakeScene struct {
	name     string
	overlay  bool
	events   int
	updates  int
	rendered *[]string
}

func (f *fakeScene) HandleEvent(ctx context.Context, ev tcell.Event) { f.events++ }
func (f *fakeScene) Update(ctx context.Context, dt float64)          { f.updates++ }
func (f *fakeScene) Overlay() bool                                   { return f.overlay }

func (f *fakeScene) Render(screen *ui.Screen) {
	if f.rendered != nil {
		*f.rendered = append(*f.rendered, f.name)
	}
}

func TestStackTopReceivesInput(t *testing.T) {
	ctx := context.Background()
	stack := NewStack()
	below := &fakeScene{name: "overworld"}
	top := &fakeScene{name: "battle"}

	stack.Push(below)
	stack.Push(top)

	ev := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	stack.HandleEvent(ctx, ev)
	stack.Update(ctx, 0.016)

	if top.events != 1 || top.updates != 1 {
		t.Errorf("Top scene got %d events and %d updates, want 1 and 1", top.events, top.updates)
	}
	if below.events != 0 || below.updates != 0 {
		t.Error("A covered scene must not receive input or updates")
	}
}

func TestStackPopResumesSceneBeneath(t *testing.T) {
	ctx := context.Background()
	stack := NewStack()
	below := &fakeScene{name: "overworld"}
	top := &fakeScene{name: "pause"}

	stack.Push(below)
	stack.Push(top)

	if popped := stack.Pop(); popped != Scene(top) {
		t.Fatal("Pop should return the top scene")
	}
	stack.HandleEvent(ctx, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if below.events != 1 {
		t.Error("The scene beneath should resume after Pop")
	}
}

func TestStackRenderCascadesThroughOverlays(t *testing.T) {
	var order []string
	stack := NewStack()
	stack.Push(&fakeScene{name: "overworld", rendered: &order})
	stack.Push(&fakeScene{name: "dialogue", overlay: true, rendered: &order})
	stack.Push(&fakeScene{name: "pause", overlay: true, rendered: &order})

	stack.Render(nil)

	if len(order) != 3 || order[0] != "overworld" || order[1] != "dialogue" || order[2] != "pause" {
		t.Errorf("Render order %v, want bottom-up through the overlays", order)
	}
}

func TestStackRenderStopsAtOpaqueScene(t *testing.T) {
	var order []string
	stack := NewStack()
	stack.Push(&fakeScene{name: "overworld", rendered: &order})
	stack.Push(&fakeScene{name: "battle", rendered: &order})
	stack.Push(&fakeScene{name: "pause", overlay: true, rendered: &order})

	stack.Render(nil)

	if len(order) != 2 || order[0] != "battle" || order[1] != "pause" {
		t.Errorf("Render order %v, want only the opaque scene and the overlay above it", order)
	}
}

func TestStackSwitchAndClear(t *testing.T) {
	stack := NewStack()
	a := &fakeScene{name: "menu"}
	b := &fakeScene{name: "overworld"}
	c := &fakeScene{name: "battle"}

	stack.Switch(a)
	if stack.Len() != 1 || stack.Top() != Scene(a) {
		t.Fatal("Switch on an empty stack should push")
	}

	stack.Push(b)
	stack.Switch(c)
	if stack.Len() != 2 || stack.Top() != Scene(c) {
		t.Error("Switch should replace only the top scene")
	}

	stack.ClearAndSet(a)
	if stack.Len() != 1 || stack.Top() != Scene(a) {
		t.Error("ClearAndSet should leave exactly one scene")
	}

	if stack.Pop() == nil {
		t.Fatal("Pop should return the last scene")
	}
	if stack.Pop() != nil {
		t.Error("Pop on an empty stack should return nil")
	}
}
