package gamedata

// ZoneDef holds declarative zone metadata. The tile grid, spawns, portals
// and triggers live in the zone map files (internal/zonemap).
type ZoneDef struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ZoneType         string `json:"zoneType"` // "town", "route", "dungeon"
	RecommendedLevel int    `json:"recommendedLevel"`
	EncounterGroup   string `json:"encounterGroup,omitempty"`
}

// ZonesFile represents the structure of zones.json.
type ZonesFile struct {
	Zones []ZoneDef `json:"zones"`
}

// LoadZones loads zone metadata from the embedded zones.json file.
func LoadZones() ([]ZoneDef, error) {
	file, err := Load[ZonesFile]("zones.json")
	if err != nil {
		return nil, err
	}
	return file.Zones, nil
}

// ShopStockEntry is one purchasable line in a shop.
type ShopStockEntry struct {
	ItemID string `json:"itemId"`
	Price  int    `json:"price,omitempty"` // 0 means use the item's base value
}

// ShopDef defines a shop loaded from JSON.
type ShopDef struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Stock []ShopStockEntry `json:"stock"`
}

// ShopsFile represents the structure of shops.json.
type ShopsFile struct {
	Shops []ShopDef `json:"shops"`
}

// LoadShops loads shop definitions from the embedded shops.json file.
func LoadShops() ([]ShopDef, error) {
	file, err := Load[ShopsFile]("shops.json")
	if err != nil {
		return nil, err
	}
	return file.Shops, nil
}
