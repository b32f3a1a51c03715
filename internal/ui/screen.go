// Package ui owns the terminal: a thin wrapper over tcell plus the
// drawing helpers the scenes render with.
package ui

import "github.com/gdamore/tcell/v2"

// Screen hides tcell's setup and teardown behind the handful of calls
// the game loop needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens and prepares the terminal for drawing.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close hands the terminal back to the shell.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent blocks until the next input or terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear wipes the draw buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the draw buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent places one rune at (x, y).
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the terminal dimensions in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync redraws everything, after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
