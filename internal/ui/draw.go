package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// DrawText writes a string starting at (x, y).
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, style)
		col++
	}
}

// DrawTextf writes a formatted string starting at (x, y).
func (s *Screen) DrawTextf(x, y int, style tcell.Style, format string, args ...any) {
	s.DrawText(x, y, fmt.Sprintf(format, args...), style)
}

// DrawBox draws a bordered rectangle and blanks its interior.
func (s *Screen) DrawBox(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, tcell.RuneHLine, style)
		s.SetContent(col, y+h-1, tcell.RuneHLine, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, tcell.RuneVLine, style)
		s.SetContent(x+w-1, row, tcell.RuneVLine, style)
	}
	s.SetContent(x, y, tcell.RuneULCorner, style)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, style)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, style)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, style)
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			s.SetContent(col, row, ' ', style)
		}
	}
}

// DrawBar draws a labeled value bar like "HP 12/40".
func (s *Screen) DrawBar(x, y int, label string, value, max int, style tcell.Style) {
	s.DrawTextf(x, y, style, "%s %d/%d", label, value, max)
}

// DrawMenu draws selectable rows, highlighting the selected index.
func (s *Screen) DrawMenu(x, y int, items []string, selected int, style, selectedStyle tcell.Style) {
	for i, item := range items {
		st := style
		prefix := "  "
		if i == selected {
			st = selectedStyle
			prefix = "> "
		}
		s.DrawText(x, y+i, prefix+item, st)
	}
}
