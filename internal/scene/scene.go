// Package scene manages the stack of game scenes. The top scene owns
// input and updates; overlays let the scenes beneath them keep
// rendering.
package scene

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/ui"
)

// Scene is a screen of the game: the overworld, a battle, a menu.
type Scene interface {
	// HandleEvent processes one input event. Only the top scene
	// receives events.
	HandleEvent(ctx context.Context, ev tcell.Event)

	// Update advances time-based state. Only the top scene updates.
	Update(ctx context.Context, dt float64)

	// Render draws the scene.
	Render(screen *ui.Screen)

	// Overlay reports whether the scene beneath should still render.
	Overlay() bool
}

// Stack holds the active scenes, last element on top.
type Stack struct {
	scenes []Scene
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the number of scenes on the stack.
func (s *Stack) Len() int {
	return len(s.scenes)
}

// Top returns the active scene, or nil when the stack is empty.
func (s *Stack) Top() Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

// Push makes sc the active scene, pausing the one beneath.
func (s *Stack) Push(sc Scene) {
	s.scenes = append(s.scenes, sc)
}

// Pop removes the active scene and returns it. The scene beneath
// resumes. Pop on an empty stack returns nil.
func (s *Stack) Pop() Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	top := s.scenes[len(s.scenes)-1]
	s.scenes[len(s.scenes)-1] = nil
	s.scenes = s.scenes[:len(s.scenes)-1]
	return top
}

// Switch replaces the active scene without touching the rest of the
// stack. On an empty stack it behaves like Push.
func (s *Stack) Switch(sc Scene) {
	if len(s.scenes) == 0 {
		s.Push(sc)
		return
	}
	s.scenes[len(s.scenes)-1] = sc
}

// ClearAndSet drops every scene and installs sc as the only one.
func (s *Stack) ClearAndSet(sc Scene) {
	for i := range s.scenes {
		s.scenes[i] = nil
	}
	s.scenes = s.scenes[:0]
	s.scenes = append(s.scenes, sc)
}

// HandleEvent routes an input event to the top scene.
func (s *Stack) HandleEvent(ctx context.Context, ev tcell.Event) {
	if top := s.Top(); top != nil {
		top.HandleEvent(ctx, ev)
	}
}

// Update advances the top scene.
func (s *Stack) Update(ctx context.Context, dt float64) {
	if top := s.Top(); top != nil {
		top.Update(ctx, dt)
	}
}

// Render draws the visible scenes bottom-up. Rendering starts at the
// deepest scene still visible through the overlays above it.
func (s *Stack) Render(screen *ui.Screen) {
	start := len(s.scenes) - 1
	for start > 0 && s.scenes[start].Overlay() {
		start--
	}
	for i := start; i < len(s.scenes); i++ {
		s.scenes[i].Render(screen)
	}
}
