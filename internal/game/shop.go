package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/trisarira/internal/inventory"
	"github.com/samdwyer/trisarira/internal/ui"
)

// shopScene buys and sells against one shop. Tab switches between the
// shop's stock and the player's bag.
type shopScene struct {
	game     *Game
	shop     *inventory.Shop
	selling  bool
	selected int
	status   string
}

func newShopScene(g *Game, shop *inventory.Shop) *shopScene {
	return &shopScene{game: g, shop: shop}
}

func (s *shopScene) Overlay() bool { return false }

func (s *shopScene) HandleEvent(ctx context.Context, ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyUp:
		if s.selected > 0 {
			s.selected--
		}
	case tcell.KeyDown:
		s.selected++
	case tcell.KeyTab:
		s.selling = !s.selling
		s.selected = 0
		s.status = ""
	case tcell.KeyEnter:
		s.trade()
	case tcell.KeyEscape:
		s.game.stack.Pop()
	}
}

func (s *shopScene) trade() {
	if s.selling {
		ids := s.bagItems()
		if len(ids) == 0 {
			return
		}
		s.selected = clampIndex(s.selected, len(ids))
		id := ids[s.selected]
		if err := s.shop.Sell(s.game.inv, id); err != nil {
			s.status = err.Error()
			return
		}
		s.status = "Sold."
		return
	}

	lines, err := s.shop.Stock()
	if err != nil || len(lines) == 0 {
		return
	}
	s.selected = clampIndex(s.selected, len(lines))
	line := lines[s.selected]
	if err := s.shop.Buy(s.game.inv, line.Item.ID); err != nil {
		s.status = err.Error()
		return
	}
	s.status = fmt.Sprintf("Bought %s.", line.Item.Name)
}

func (s *shopScene) bagItems() []string {
	var out []string
	for id := range s.game.inv.Items() {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *shopScene) Update(ctx context.Context, dt float64) {}

func (s *shopScene) Render(screen *ui.Screen) {
	screen.DrawTextf(1, 0, styleTitle, "%s", s.shop.Name())
	screen.DrawTextf(1, 1, styleDim, "coins %d   tab switches buy/sell, esc leaves", s.game.inv.Money())

	var rows []string
	if s.selling {
		screen.DrawText(1, 3, "Your bag (sells at half value)", styleDefault)
		for _, id := range s.bagItems() {
			item, err := s.game.registry.Item(id)
			if err != nil {
				continue
			}
			rows = append(rows, fmt.Sprintf("%-20s x%-3d %4d", item.Name, s.game.inv.Quantity(id), item.Value/2))
		}
	} else {
		screen.DrawText(1, 3, "For sale", styleDefault)
		lines, err := s.shop.Stock()
		if err != nil {
			screen.DrawText(1, 4, err.Error(), styleEnemy)
			return
		}
		for _, line := range lines {
			rows = append(rows, fmt.Sprintf("%-20s %4d", line.Item.Name, line.Price))
		}
	}

	s.selected = clampIndex(s.selected, len(rows))
	screen.DrawMenu(1, 4, rows, s.selected, styleDefault, styleSelected)
	if s.status != "" {
		screen.DrawText(1, 5+len(rows), s.status, styleDim)
	}
}
