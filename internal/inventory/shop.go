package inventory

import (
	"fmt"

	"github.com/samdwyer/trisarira/internal/gamedata"
)

// Shop wraps a shop definition with buy and sell operations against an
// inventory. Stock is unlimited; shops sell by definition, not by count.
type Shop struct {
	def      *gamedata.ShopDef
	registry *gamedata.Registry
}

// NewShop builds a shop from its definition.
func NewShop(def *gamedata.ShopDef, registry *gamedata.Registry) *Shop {
	return &Shop{def: def, registry: registry}
}

// Name returns the shop's display name.
func (s *Shop) Name() string {
	return s.def.Name
}

// StockLine is one purchasable entry with its resolved price.
type StockLine struct {
	Item  *gamedata.ItemDef
	Price int
}

// Stock resolves the shop's stock list against the registry.
func (s *Shop) Stock() ([]StockLine, error) {
	lines := make([]StockLine, 0, len(s.def.Stock))
	for _, entry := range s.def.Stock {
		item, err := s.registry.Item(entry.ItemID)
		if err != nil {
			return nil, err
		}
		price := entry.Price
		if price == 0 {
			price = item.Value
		}
		lines = append(lines, StockLine{Item: item, Price: price})
	}
	return lines, nil
}

// Buy purchases one unit of an item, spending from inv.
func (s *Shop) Buy(inv *Inventory, itemID string) error {
	lines, err := s.Stock()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.Item.ID != itemID {
			continue
		}
		if err := inv.Spend(line.Price); err != nil {
			return err
		}
		inv.Add(itemID, 1)
		return nil
	}
	return fmt.Errorf("%s does not stock %s", s.def.ID, itemID)
}

// Sell sells one unit of a held item at half its base value.
func (s *Shop) Sell(inv *Inventory, itemID string) error {
	item, err := s.registry.Item(itemID)
	if err != nil {
		return err
	}
	if err := inv.Remove(itemID, 1); err != nil {
		return err
	}
	inv.AddMoney(item.Value / 2)
	return nil
}
