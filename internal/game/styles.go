package game

import "github.com/gdamore/tcell/v2"

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow).Bold(true)
	styleTitle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua).Bold(true)
	stylePlayer   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow).Bold(true)
	styleWall     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleFloor    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkGreen)
	stylePortal   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorFuchsia)
	styleTrigger  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua)
	styleEnemy    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorRed)
	styleGood     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen)
)
