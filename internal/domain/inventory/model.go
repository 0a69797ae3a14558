package inventory

// ItemType define los tipos de ítem soportados.
// @Enum weapon, armor, potion, material, misc
type ItemType string

const (
	TypeWeapon   ItemType = "weapon"
	TypeArmor    ItemType = "armor"
	TypePotion   ItemType = "potion"
	TypeMaterial ItemType = "material"
	TypeMisc     ItemType = "misc"
)

// Item es la definición de un ítem del juego.
type Item struct {
	ID          string
	Name        string
	Description string
	Type        ItemType
	Rarity      string // mismo vocabulario que catalog.Rarity
	Value       int
}

// PlayerItem es un ítem en el inventario de un jugador, con cantidad.
type PlayerItem struct {
	Item     Item
	Quantity int
}
