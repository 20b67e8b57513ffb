package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgcore/internal/model"
)

func TestItemTable_SpawnAndBind(t *testing.T) {
	tables := NewTestTables()
	tables.Items.AddTemplate(&model.ItemTemplate{ItemID: 7, Name: "Test Blade", Type: model.ItemTypeWeapon})

	h, err := tables.Items.Spawn(7, 0)
	require.NoError(t, err)
	assert.NotZero(t, h)

	meta, ok := tables.Items.Item(h)
	require.True(t, ok)
	assert.Equal(t, h, meta.Handle)
	assert.EqualValues(t, 7, meta.Template.ItemID)
	assert.False(t, meta.IsBoundToOther(42))

	require.True(t, tables.Items.Bind(h, 42))
	meta, _ = tables.Items.Item(h)
	assert.False(t, meta.IsBoundToOther(42))
	assert.True(t, meta.IsBoundToOther(43))

	assert.False(t, tables.Items.Bind(h+1000, 42), "unknown handle")

	tables.Items.Destroy(h)
	_, ok = tables.Items.Item(h)
	assert.False(t, ok)
}

func TestItemTable_Errors(t *testing.T) {
	tables := NewTestTables()

	_, err := tables.Items.Spawn(1, 0)
	assert.Error(t, err)

	assert.Error(t, tables.Items.Register(0, 1, 0))
	assert.Error(t, tables.Items.Register(5, 1, 0))

	tables.Items.AddTemplate(&model.ItemTemplate{ItemID: 1})
	require.NoError(t, tables.Items.Register(5, 1, 9))
	meta, ok := tables.Items.Item(5)
	require.True(t, ok)
	assert.EqualValues(t, 9, meta.BoundTo)

	_, ok = tables.Items.Item(0)
	assert.False(t, ok)
}

func TestItemTable_OnChange(t *testing.T) {
	tables := NewTestTables()
	var changed []model.ItemHandle
	tables.Items.SetOnChange(func(h model.ItemHandle) { changed = append(changed, h) })

	tables.Items.AddTemplate(&model.ItemTemplate{ItemID: 7, Type: model.ItemTypeArmor})
	assert.Empty(t, changed, "new template has no instances")

	h1, err := tables.Items.Spawn(7, 0)
	require.NoError(t, err)
	h2, err := tables.Items.Spawn(7, 0)
	require.NoError(t, err)
	assert.Empty(t, changed, "spawning is not a change of a held item")

	require.True(t, tables.Items.Bind(h1, 42))
	assert.Equal(t, []model.ItemHandle{h1}, changed)

	require.True(t, tables.Items.Bind(h1, 42))
	assert.Len(t, changed, 1, "rebinding to the same owner is not a change")

	changed = nil
	tables.Items.AddTemplate(&model.ItemTemplate{ItemID: 7, Type: model.ItemTypeArmor, Stats: model.Stats{model.AttrPhysDefense: 5}})
	assert.ElementsMatch(t, []model.ItemHandle{h1, h2}, changed)

	changed = nil
	tables.Items.Destroy(h2)
	tables.Items.Destroy(h2)
	assert.Equal(t, []model.ItemHandle{h2}, changed)
}

func TestAccessoryContainer(t *testing.T) {
	var changed []uint32
	c := NewAccessoryContainer(2, func(id uint32) { changed = append(changed, id) })

	c.Equip(1, 10, 11, 12)
	assert.Equal(t, []model.ItemHandle{10, 11}, c.Accessories(1), "capped at capacity")
	assert.Equal(t, []uint32{1}, changed)

	c.Clear(1)
	assert.Nil(t, c.Accessories(1))
	assert.Equal(t, []uint32{1, 1}, changed)

	c.Clear(1)
	assert.Len(t, changed, 2, "clearing an empty container is not a change")
}

func TestAccessoryContainer_DefaultCapacity(t *testing.T) {
	c := NewAccessoryContainer(0, nil)
	c.Equip(1, 1, 2, 3, 4, 5, 6)
	assert.Len(t, c.Accessories(1), DefaultAccessorySlots)
}

func TestQualifications(t *testing.T) {
	var changed int
	q := NewQualifications(func(uint32) { changed++ })

	assert.False(t, q.Has(1, 1004))

	q.Unlock(1, 1004)
	assert.True(t, q.Has(1, 1004))
	assert.False(t, q.Has(2, 1004))
	assert.Equal(t, 1, changed)

	q.Load(2, []int32{1005, 1004})
	assert.True(t, q.Has(2, 1005))
	assert.Equal(t, 2, changed)
	assert.Equal(t, []int32{1004, 1005}, q.Items(2))
	assert.Nil(t, q.Items(3))

	q.Forget(1)
	assert.False(t, q.Has(1, 1004))
	assert.Equal(t, 3, changed)

	q.Forget(1)
	assert.Equal(t, 3, changed, "forgetting an unknown actor is not a change")
}

func TestMobTable(t *testing.T) {
	mt := NewMobTable()
	mt.AddTemplate(&MobTemplate{Name: "rat", Level: 1, Stats: model.Stats{model.AttrPhysDamage: 3}})

	require.NoError(t, mt.Assign(100, "rat"))
	s, ok := mt.Stats(100)
	require.True(t, ok)
	assert.Equal(t, 3.0, s[model.AttrPhysDamage])

	// Assigned blocks are copies.
	mt.Template("rat").Stats[model.AttrPhysDamage] = 50
	s, _ = mt.Stats(100)
	assert.Equal(t, 3.0, s[model.AttrPhysDamage])

	assert.Error(t, mt.Assign(101, "dragon"))

	mt.Set(100, model.Stats{model.AttrPhysDamage: 9})
	s, _ = mt.Stats(100)
	assert.Equal(t, 9.0, s[model.AttrPhysDamage])

	mt.Remove(100)
	_, ok = mt.Stats(100)
	assert.False(t, ok)
}
