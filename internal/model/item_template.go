package model

// ItemTemplate — шаблон предмета: базовые характеристики и ограничения экипировки.
// Read-only after loading; shared by every item instance of the template.
type ItemTemplate struct {
	ItemID int32  // Template ID (unique)
	Name   string // e.g. "Azure Dragon Sabre"
	Type   ItemType

	// WeaponKind is the underlying material/type a class may forbid ("sword", "bow", "staff").
	WeaponKind string
	// Element is the elemental tag of element-type items and elemental weapons.
	Element Element

	Stats    Stats    // flat and percent contributions
	SetID    string   // empty when the item belongs to no set
	Passives []string // passive skill ids granted while active

	Rarity        int32 // rarity weight; at/above the qualification threshold requires an unlock
	RequiredClass Class // ClassNone = any class
	MinLevel      int32

	// FabaoSlot is the slot a relic is configured for (Type == ItemTypeFabao only).
	FabaoSlot int
}

// ItemType определяет категорию предмета.
type ItemType int8

const (
	ItemTypeWeapon ItemType = iota
	ItemTypeArmor
	ItemTypeShield
	ItemTypeAccessory
	ItemTypeFabao
	ItemTypeElement
	ItemTypeMaterial
)

var itemTypeNames = []string{"weapon", "armor", "shield", "accessory", "fabao", "element", "material"}

// String returns human-readable item type name.
func (it ItemType) String() string { return nameOf(itemTypeNames, it) }

// ParseItemType resolves a configuration name to an ItemType.
func ParseItemType(name string) (ItemType, error) {
	return parseName[ItemType](itemTypeNames, name, ErrUnknownItemType)
}

// Inventory slot layout: hotbar 0-8, main storage 9-35, worn armor 36-39, off-hand 40.
const (
	SlotMainHand   = 0
	HotbarSize     = 9
	SlotArmorFeet  = 36
	SlotArmorLegs  = 37
	SlotArmorChest = 38
	SlotArmorHead  = 39
	SlotOffHand    = 40

	InventorySize = 41
)

// IsArmorSlot reports whether slot is one of the four worn-armor slots.
func IsArmorSlot(slot int) bool {
	return slot >= SlotArmorFeet && slot <= SlotArmorHead
}

// ValidSlot reports whether slot is inside the inventory layout.
func ValidSlot(slot int) bool {
	return slot >= 0 && slot < InventorySize
}
