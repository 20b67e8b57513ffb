package equip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/model"
)

type testHolder struct {
	id     uint32
	class  model.Class
	level  int32
	active int
	bypass bool
	slots  map[int]model.ItemHandle
}

func (h *testHolder) ID() uint32          { return h.id }
func (h *testHolder) Class() model.Class  { return h.class }
func (h *testHolder) Level() int32        { return h.level }
func (h *testHolder) ActiveSlot() int     { return h.active }
func (h *testHolder) BypassBinding() bool { return h.bypass }

func (h *testHolder) ForEachSlot(fn func(slot int, h model.ItemHandle)) {
	for slot := range model.InventorySize {
		if item, ok := h.slots[slot]; ok {
			fn(slot, item)
		}
	}
}

type fixture struct {
	tables *data.Tables
	quals  *data.Qualifications
	acc    *data.AccessoryContainer
	r      *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables := data.NewTestTables()
	tables.Classes.Forbid(model.ClassSwordsman, "bow")
	quals := data.NewQualifications(nil)
	acc := data.NewAccessoryContainer(4, nil)
	return &fixture{
		tables: tables,
		quals:  quals,
		acc:    acc,
		r:      NewResolver(tables.Items, quals, tables.Classes, acc),
	}
}

func meta(tmpl *model.ItemTemplate, boundTo uint32) model.ItemMeta {
	return model.ItemMeta{Handle: 1, Template: tmpl, BoundTo: boundTo}
}

func swordsman() *testHolder {
	return &testHolder{id: 1, class: model.ClassSwordsman, level: 10, active: model.SlotMainHand}
}

func TestClassify_DecisionTable(t *testing.T) {
	weapon := &model.ItemTemplate{ItemID: 1, Type: model.ItemTypeWeapon, WeaponKind: "sword"}
	bow := &model.ItemTemplate{ItemID: 2, Type: model.ItemTypeWeapon, WeaponKind: "bow"}
	armor := &model.ItemTemplate{ItemID: 3, Type: model.ItemTypeArmor}
	shield := &model.ItemTemplate{ItemID: 4, Type: model.ItemTypeShield}
	accessory := &model.ItemTemplate{ItemID: 5, Type: model.ItemTypeAccessory}
	element := &model.ItemTemplate{ItemID: 6, Type: model.ItemTypeElement, Element: model.ElementFire}
	material := &model.ItemTemplate{ItemID: 7, Type: model.ItemTypeMaterial}
	rare := &model.ItemTemplate{ItemID: 8, Type: model.ItemTypeWeapon, Rarity: 5}
	highLevel := &model.ItemTemplate{ItemID: 9, Type: model.ItemTypeWeapon, MinLevel: 50}
	guardOnly := &model.ItemTemplate{ItemID: 10, Type: model.ItemTypeShield, RequiredClass: model.ClassGuardian}

	tests := []struct {
		name   string
		holder *testHolder
		item   model.ItemMeta
		slot   int
		want   model.ActivationStatus
	}{
		{"weapon in active slot", swordsman(), meta(weapon, 0), 0, model.ActivationActive},
		{"weapon in other slot", swordsman(), meta(weapon, 0), 3, model.ActivationInactive},
		{"bound to holder", swordsman(), meta(weapon, 1), 0, model.ActivationActive},
		{"bound to other", swordsman(), meta(weapon, 2), 0, model.ActivationNotOwner},
		{"bound to other with bypass", &testHolder{id: 1, class: model.ClassSwordsman, level: 10, bypass: true}, meta(weapon, 2), 0, model.ActivationActive},
		{"rare without unlock", swordsman(), meta(rare, 0), 0, model.ActivationNoQualification},
		{"level too low", swordsman(), meta(highLevel, 0), 0, model.ActivationLevelTooLow},
		{"wrong class", swordsman(), meta(guardOnly, 0), model.SlotOffHand, model.ActivationWrongClass},
		{"material", swordsman(), meta(material, 0), 0, model.ActivationMaterialOnly},
		{"accessory in inventory", swordsman(), meta(accessory, 0), 0, model.ActivationNeedsAccessorySlot},
		{"forbidden weapon kind", swordsman(), meta(bow, 0), 0, model.ActivationForbiddenWeaponType},
		{"element for non caster", swordsman(), meta(element, 0), 0, model.ActivationWrongClass},
		{"armor worn", swordsman(), meta(armor, 0), model.SlotArmorChest, model.ActivationActive},
		{"armor held", swordsman(), meta(armor, 0), 0, model.ActivationNeedsWorn},
		{"shield in off-hand", swordsman(), meta(shield, 0), model.SlotOffHand, model.ActivationActive},
		{"shield in storage", swordsman(), meta(shield, 0), 20, model.ActivationInactive},
		{"guardian shield for guardian", &testHolder{id: 1, class: model.ClassGuardian, level: 10}, meta(guardOnly, 0), model.SlotOffHand, model.ActivationActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			assert.Equal(t, tt.want, f.r.Classify(tt.holder, tt.item, tt.slot))
		})
	}
}

func TestClassify_Elementalist(t *testing.T) {
	f := newFixture(t)
	caster := &testHolder{id: 1, class: model.ClassElementalist, level: 10, active: 2}

	element := &model.ItemTemplate{ItemID: 6, Type: model.ItemTypeElement, Element: model.ElementFire}
	staff := &model.ItemTemplate{ItemID: 11, Type: model.ItemTypeWeapon, WeaponKind: "staff"}

	assert.Equal(t, model.ActivationActive, f.r.Classify(caster, meta(element, 0), 2))
	assert.Equal(t, model.ActivationInactive, f.r.Classify(caster, meta(element, 0), 0))

	assert.Equal(t, model.ActivationActive, f.r.Classify(caster, meta(staff, 0), model.SlotOffHand))
	assert.Equal(t, model.ActivationMageOffhandRequired, f.r.Classify(caster, meta(staff, 0), 2))
	assert.Equal(t, model.ActivationMageOffhandRequired, f.r.Classify(caster, meta(staff, 0), model.SlotMainHand))
}

func TestClassify_OwnershipDominates(t *testing.T) {
	f := newFixture(t)
	h := swordsman()

	// Every other check would pass or fail differently, ownership still wins.
	items := []*model.ItemTemplate{
		{ItemID: 1, Type: model.ItemTypeWeapon},
		{ItemID: 2, Type: model.ItemTypeArmor},
		{ItemID: 3, Type: model.ItemTypeFabao},
		{ItemID: 4, Type: model.ItemTypeMaterial},
		{ItemID: 5, Type: model.ItemTypeWeapon, Rarity: 10, MinLevel: 99, RequiredClass: model.ClassArcher},
	}
	for _, tmpl := range items {
		for slot := range model.InventorySize {
			assert.Equal(t, model.ActivationNotOwner, f.r.Classify(h, meta(tmpl, 99), slot))
		}
	}
}

func TestClassify_Qualification(t *testing.T) {
	f := newFixture(t)
	h := swordsman()
	rare := &model.ItemTemplate{ItemID: 1004, Type: model.ItemTypeWeapon, Rarity: data.DefaultQualificationThreshold}

	assert.Equal(t, model.ActivationNoQualification, f.r.Classify(h, meta(rare, 0), 0))

	f.quals.Unlock(h.id, 1004)
	assert.Equal(t, model.ActivationActive, f.r.Classify(h, meta(rare, 0), 0))

	belowThreshold := &model.ItemTemplate{ItemID: 1005, Type: model.ItemTypeWeapon, Rarity: data.DefaultQualificationThreshold - 1}
	assert.Equal(t, model.ActivationActive, f.r.Classify(h, meta(belowThreshold, 0), 0))
}

func TestFabaoTarget(t *testing.T) {
	tests := []struct {
		name      string
		class     model.Class
		active    int
		fabaoSlot int
		want      int
	}{
		{"caster always off-hand", model.ClassElementalist, 3, 3, model.SlotOffHand},
		{"active slot", model.ClassSwordsman, 3, 0, 3},
		{"same as active flips to off-hand", model.ClassSwordsman, 0, 0, model.SlotOffHand},
		{"off-hand active flips to main hand", model.ClassSwordsman, model.SlotOffHand, model.SlotOffHand, model.SlotMainHand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &testHolder{class: tt.class, active: tt.active}
			got := FabaoTarget(h, &model.ItemTemplate{Type: model.ItemTypeFabao, FabaoSlot: tt.fabaoSlot})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Fabao(t *testing.T) {
	f := newFixture(t)
	h := swordsman()
	relic := &model.ItemTemplate{ItemID: 1, Type: model.ItemTypeFabao, FabaoSlot: 0}

	assert.Equal(t, model.ActivationActiveFabao, f.r.Classify(h, meta(relic, 0), model.SlotOffHand))
	assert.Equal(t, model.ActivationFabaoWrongSlot, f.r.Classify(h, meta(relic, 0), model.SlotMainHand))
}

func TestClassify_MissingTemplate(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, model.ActivationInactive, f.r.Classify(swordsman(), model.ItemMeta{Handle: 1}, 0))
	assert.Equal(t, model.ActivationInactive, f.r.ClassifyAccessory(swordsman(), model.ItemMeta{Handle: 1}))
}

func TestEvaluate(t *testing.T) {
	f := newFixture(t)
	sword := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 1, Type: model.ItemTypeWeapon}, 0)
	helm := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 2, Type: model.ItemTypeArmor}, 0)
	ring := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 3, Type: model.ItemTypeAccessory}, 0)
	ore := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 4, Type: model.ItemTypeMaterial}, 0)

	h := swordsman()
	h.slots = map[int]model.ItemHandle{
		0:                   sword,
		model.SlotArmorHead: helm,
		5:                   ore,
		6:                   model.ItemHandle(0xdead), // no metadata
	}
	f.acc.Equip(h.id, ring, sword)

	got := f.r.Evaluate(h)
	require.Len(t, got, 5)

	assert.Equal(t, Contribution{Handle: sword, Slot: 0, Status: model.ActivationActive, Item: f.tables.Items.Template(1)}, got[0])
	assert.Equal(t, model.ActivationMaterialOnly, got[1].Status)
	assert.Equal(t, model.SlotArmorHead, got[2].Slot)
	assert.Equal(t, model.ActivationActive, got[2].Status)

	assert.Equal(t, AccessorySlot, got[3].Slot)
	assert.Equal(t, model.ActivationActive, got[3].Status)
	assert.Equal(t, AccessorySlot, got[4].Slot)
	assert.Equal(t, model.ActivationInactive, got[4].Status, "weapon in accessory container")
}

func TestCanUse(t *testing.T) {
	f := newFixture(t)
	sword := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 1, Type: model.ItemTypeWeapon}, 0)
	ring := f.tables.SpawnTestItem(&model.ItemTemplate{ItemID: 3, Type: model.ItemTypeAccessory}, 0)
	h := swordsman()

	assert.True(t, f.r.CanUse(h, sword, 0))
	assert.False(t, f.r.CanUse(h, sword, 4))
	assert.True(t, f.r.CanUse(h, ring, AccessorySlot))
	assert.False(t, f.r.CanUse(h, ring, 0))
	assert.False(t, f.r.CanUse(h, 12345, 0))
}
