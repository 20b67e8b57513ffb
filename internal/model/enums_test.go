package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationStatus_IsActive(t *testing.T) {
	active := map[ActivationStatus]bool{
		ActivationActive:      true,
		ActivationActiveFabao: true,
	}
	for s := ActivationInactive; s <= ActivationNotOwner; s++ {
		assert.Equal(t, active[s], s.IsActive(), s.String())
		assert.NotEqual(t, "unknown", s.String())
	}
	assert.Equal(t, "unknown", ActivationStatus(100).String())
}

func TestParseEnums(t *testing.T) {
	e, err := ParseElement("water")
	require.NoError(t, err)
	assert.Equal(t, ElementWater, e)
	_, err = ParseElement("lightning")
	assert.ErrorIs(t, err, ErrUnknownElement)

	c, err := ParseClass("elementalist")
	require.NoError(t, err)
	assert.Equal(t, ClassElementalist, c)
	_, err = ParseClass("necromancer")
	assert.ErrorIs(t, err, ErrUnknownClass)

	r, err := ParseRace("beastkin")
	require.NoError(t, err)
	assert.Equal(t, RaceBeastkin, r)

	sc, err := ParseSubclass("marksman")
	require.NoError(t, err)
	assert.Equal(t, SubclassMarksman, sc)

	it, err := ParseItemType("fabao")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeFabao, it)
	_, err = ParseItemType("potion")
	assert.ErrorIs(t, err, ErrUnknownItemType)

	rk, err := ParseReactionKind("shield_amplify")
	require.NoError(t, err)
	assert.Equal(t, ReactionShieldAmplify, rk)
}

func TestBuffKind(t *testing.T) {
	for k := BuffKind(0); k < BuffKindCount; k++ {
		got, err := ParseBuffKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Attributes(), k.String())
	}

	assert.True(t, BuffFortify.Affects(AttrPhysDefense))
	assert.True(t, BuffFortify.Affects(AttrMagicDefense))
	assert.False(t, BuffFortify.Affects(AttrPhysDamage))

	for _, k := range []BuffKind{BuffHaste, BuffSlow, BuffRoot} {
		assert.True(t, k.AffectsMovement(), k.String())
	}
	assert.False(t, BuffMight.AffectsMovement())
	assert.False(t, BuffKindCount.AffectsMovement())
	assert.Nil(t, BuffKindCount.Attributes())

	_, err := ParseBuffKind("invisibility")
	assert.ErrorIs(t, err, ErrUnknownBuffKind)
}

func TestItemMeta_IsBoundToOther(t *testing.T) {
	assert.False(t, ItemMeta{}.IsBoundToOther(7))
	assert.False(t, ItemMeta{BoundTo: 7}.IsBoundToOther(7))
	assert.True(t, ItemMeta{BoundTo: 8}.IsBoundToOther(7))
}

func TestSlots(t *testing.T) {
	assert.True(t, IsArmorSlot(SlotArmorFeet))
	assert.True(t, IsArmorSlot(SlotArmorHead))
	assert.False(t, IsArmorSlot(SlotOffHand))
	assert.False(t, IsArmorSlot(SlotMainHand))
	assert.True(t, ValidSlot(SlotOffHand))
	assert.False(t, ValidSlot(InventorySize))
	assert.False(t, ValidSlot(-1))
}
