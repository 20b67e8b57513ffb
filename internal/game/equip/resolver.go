// Package equip decides which carried items are active for an actor.
package equip

import (
	"github.com/udisondev/rpgcore/internal/model"
)

// AccessorySlot is the pseudo slot index reported for accessory-container items.
const AccessorySlot = -1

// Holder is the actor-side context the activation table reads.
type Holder interface {
	ID() uint32
	Class() model.Class
	Level() int32
	ActiveSlot() int
	BypassBinding() bool
	ForEachSlot(fn func(slot int, h model.ItemHandle))
}

// ItemProvider resolves item handles to metadata.
type ItemProvider interface {
	Item(h model.ItemHandle) (model.ItemMeta, bool)
}

// QualificationProvider reports unlocked rare items.
type QualificationProvider interface {
	Has(actorID uint32, itemID int32) bool
}

// ClassRules reports per-class weapon restrictions.
type ClassRules interface {
	Forbids(class model.Class, weaponKind string) bool
	QualificationThreshold() int32
}

// AccessoryProvider lists the accessory container of an actor.
type AccessoryProvider interface {
	Accessories(actorID uint32) []model.ItemHandle
}

// Contribution is the classification of one carried item for one aggregation pass.
type Contribution struct {
	Handle model.ItemHandle
	Slot   int // AccessorySlot for accessory-container items
	Status model.ActivationStatus
	Item   *model.ItemTemplate
}

// Resolver evaluates the activation decision table.
type Resolver struct {
	items       ItemProvider
	quals       QualificationProvider
	rules       ClassRules
	accessories AccessoryProvider
}

// NewResolver creates a resolver. quals, rules and accessories may be nil
// (no qualification gate, no class restrictions, no accessory container).
func NewResolver(items ItemProvider, quals QualificationProvider, rules ClassRules, accessories AccessoryProvider) *Resolver {
	return &Resolver{items: items, quals: quals, rules: rules, accessories: accessories}
}

// Classify returns the activation status of item in slot for holder.
// Checks run in a fixed order; the first failing check decides.
func (r *Resolver) Classify(holder Holder, item model.ItemMeta, slot int) model.ActivationStatus {
	tmpl := item.Template
	if tmpl == nil {
		return model.ActivationInactive
	}

	if status, ok := r.gate(holder, item); !ok {
		return status
	}

	switch tmpl.Type {
	case model.ItemTypeMaterial:
		return model.ActivationMaterialOnly
	case model.ItemTypeAccessory:
		return model.ActivationNeedsAccessorySlot
	case model.ItemTypeFabao:
		if slot == FabaoTarget(holder, tmpl) {
			return model.ActivationActiveFabao
		}
		return model.ActivationFabaoWrongSlot
	}

	class := holder.Class()
	if r.rules != nil && r.rules.Forbids(class, tmpl.WeaponKind) {
		return model.ActivationForbiddenWeaponType
	}

	if tmpl.Type == model.ItemTypeElement && class != model.ClassElementalist {
		return model.ActivationWrongClass
	}

	if tmpl.Type == model.ItemTypeArmor {
		if model.IsArmorSlot(slot) {
			return model.ActivationActive
		}
		return model.ActivationNeedsWorn
	}

	// Заклинатель держит элемент в активном слоте, оружие только во второй руке.
	if class == model.ClassElementalist {
		switch tmpl.Type {
		case model.ItemTypeElement:
			if slot == holder.ActiveSlot() {
				return model.ActivationActive
			}
			return model.ActivationInactive
		case model.ItemTypeWeapon:
			if slot == model.SlotOffHand {
				return model.ActivationActive
			}
			return model.ActivationMageOffhandRequired
		}
	}

	if slot == holder.ActiveSlot() {
		return model.ActivationActive
	}
	if tmpl.Type == model.ItemTypeShield && slot == model.SlotOffHand {
		return model.ActivationActive
	}
	return model.ActivationInactive
}

// ClassifyAccessory evaluates an item found in the accessory container.
// Ownership, qualification, level and class gates still apply.
func (r *Resolver) ClassifyAccessory(holder Holder, item model.ItemMeta) model.ActivationStatus {
	if item.Template == nil {
		return model.ActivationInactive
	}
	if status, ok := r.gate(holder, item); !ok {
		return status
	}
	if item.Template.Type != model.ItemTypeAccessory {
		return model.ActivationInactive
	}
	return model.ActivationActive
}

// gate runs the holder-level checks shared by every container:
// ownership, qualification, level, class.
func (r *Resolver) gate(holder Holder, item model.ItemMeta) (model.ActivationStatus, bool) {
	tmpl := item.Template

	if item.IsBoundToOther(holder.ID()) && !holder.BypassBinding() {
		return model.ActivationNotOwner, false
	}

	if r.quals != nil && r.rules != nil {
		threshold := r.rules.QualificationThreshold()
		if threshold > 0 && tmpl.Rarity >= threshold && !r.quals.Has(holder.ID(), tmpl.ItemID) {
			return model.ActivationNoQualification, false
		}
	}

	if tmpl.MinLevel > holder.Level() {
		return model.ActivationLevelTooLow, false
	}

	if tmpl.RequiredClass != model.ClassNone && tmpl.RequiredClass != holder.Class() {
		return model.ActivationWrongClass, false
	}

	return 0, true
}

// FabaoTarget returns the slot a relic must occupy to be active for holder.
// Elementalists always carry relics in the off-hand. Everyone else uses the
// active slot, unless the relic is configured for that very slot, in which
// case the other hand is used so the relic never shadows the primary weapon.
func FabaoTarget(holder Holder, tmpl *model.ItemTemplate) int {
	if holder.Class() == model.ClassElementalist {
		return model.SlotOffHand
	}
	active := holder.ActiveSlot()
	if tmpl.FabaoSlot != active {
		return active
	}
	if active == model.SlotOffHand {
		return model.SlotMainHand
	}
	return model.SlotOffHand
}

// CanUse reports whether the item in slot may trigger skills or take part in combat.
func (r *Resolver) CanUse(holder Holder, h model.ItemHandle, slot int) bool {
	item, ok := r.items.Item(h)
	if !ok {
		return false
	}
	if slot == AccessorySlot {
		return r.ClassifyAccessory(holder, item).IsActive()
	}
	return r.Classify(holder, item, slot).IsActive()
}

// Evaluate classifies every carried item of holder: inventory slots in index
// order, then the accessory container. Handles without metadata are skipped.
func (r *Resolver) Evaluate(holder Holder) []Contribution {
	out := make([]Contribution, 0, 16)

	holder.ForEachSlot(func(slot int, h model.ItemHandle) {
		item, ok := r.items.Item(h)
		if !ok {
			return
		}
		out = append(out, Contribution{
			Handle: h,
			Slot:   slot,
			Status: r.Classify(holder, item, slot),
			Item:   item.Template,
		})
	})

	if r.accessories == nil {
		return out
	}
	for _, h := range r.accessories.Accessories(holder.ID()) {
		item, ok := r.items.Item(h)
		if !ok {
			continue
		}
		out = append(out, Contribution{
			Handle: h,
			Slot:   AccessorySlot,
			Status: r.ClassifyAccessory(holder, item),
			Item:   item.Template,
		})
	}
	return out
}
