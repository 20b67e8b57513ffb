package model

// ActivationStatus is the outcome of classifying one carried item.
// Only ActivationActive and ActivationActiveFabao contribute stats.
type ActivationStatus int8

const (
	ActivationInactive ActivationStatus = iota
	ActivationActive
	ActivationActiveFabao
	ActivationWrongClass
	ActivationMageOffhandRequired
	ActivationForbiddenWeaponType
	ActivationNeedsWorn
	ActivationNeedsAccessorySlot
	ActivationFabaoWrongSlot
	ActivationNoQualification
	ActivationMaterialOnly
	ActivationLevelTooLow
	ActivationNotOwner
)

var activationNames = []string{
	"INACTIVE",
	"ACTIVE",
	"ACTIVE_FABAO",
	"WRONG_CLASS",
	"MAGE_OFFHAND_REQUIRED",
	"FORBIDDEN_WEAPON_TYPE",
	"NEEDS_WORN",
	"NEEDS_ACCESSORY_SLOT",
	"FABAO_WRONG_SLOT",
	"NO_QUALIFICATION",
	"MATERIAL_ONLY",
	"LEVEL_TOO_LOW",
	"NOT_OWNER",
}

// String returns human-readable status name.
func (s ActivationStatus) String() string { return nameOf(activationNames, s) }

// IsActive reports whether the item contributes stats.
func (s ActivationStatus) IsActive() bool {
	return s == ActivationActive || s == ActivationActiveFabao
}
