// Package inventory tracks the party's items and money.
package inventory

import "fmt"

// Inventory is an item-count map plus a currency balance, shared by the
// whole party.
type Inventory struct {
	items map[string]int
	money int
}

// New returns an empty inventory with the given starting money.
func New(startingMoney int) *Inventory {
	return &Inventory{items: make(map[string]int), money: startingMoney}
}

// Add increases the count for an item id. Non-positive quantities are ignored.
func (inv *Inventory) Add(itemID string, qty int) {
	if qty <= 0 {
		return
	}
	inv.items[itemID] += qty
}

// Remove decreases the count for an item id, deleting the entry at zero.
// Returns an error if fewer than qty are held.
func (inv *Inventory) Remove(itemID string, qty int) error {
	if qty <= 0 {
		return nil
	}
	held := inv.items[itemID]
	if held < qty {
		return fmt.Errorf("not enough %s: have %d, need %d", itemID, held, qty)
	}
	if held == qty {
		delete(inv.items, itemID)
	} else {
		inv.items[itemID] = held - qty
	}
	return nil
}

// Has reports whether at least one of the item is held.
func (inv *Inventory) Has(itemID string) bool {
	return inv.items[itemID] > 0
}

// Quantity returns the held count for an item id.
func (inv *Inventory) Quantity(itemID string) int {
	return inv.items[itemID]
}

// Money returns the current balance.
func (inv *Inventory) Money() int {
	return inv.money
}

// AddMoney increases the balance. Negative amounts reduce it, floored at 0.
func (inv *Inventory) AddMoney(amount int) {
	inv.money += amount
	if inv.money < 0 {
		inv.money = 0
	}
}

// Spend reduces the balance, failing without change if it would go negative.
func (inv *Inventory) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot spend a negative amount: %d", amount)
	}
	if inv.money < amount {
		return fmt.Errorf("not enough money: have %d, need %d", inv.money, amount)
	}
	inv.money -= amount
	return nil
}

// Items returns a copy of the item-count map, for snapshots and views.
func (inv *Inventory) Items() map[string]int {
	out := make(map[string]int, len(inv.items))
	for id, qty := range inv.items {
		out[id] = qty
	}
	return out
}

// Restore replaces the inventory contents from snapshot data.
func (inv *Inventory) Restore(items map[string]int, money int) {
	inv.items = make(map[string]int, len(items))
	for id, qty := range items {
		if qty > 0 {
			inv.items[id] = qty
		}
	}
	inv.money = money
	if inv.money < 0 {
		inv.money = 0
	}
}
