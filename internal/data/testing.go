package data

import (
	"sync/atomic"

	"github.com/udisondev/rpgcore/internal/model"
)

// NewTestTables returns empty tables with a local item handle counter.
// Intended for tests from other packages that need provider setup.
func NewTestTables() *Tables {
	var next atomic.Uint32
	next.Store(0x30000000)
	return NewTables(func() uint32 { return next.Add(1) })
}

// SpawnTestItem registers tmpl and spawns one instance bound to boundTo (0 = unbound).
// Panics on error: test setup only.
func (t *Tables) SpawnTestItem(tmpl *model.ItemTemplate, boundTo uint32) model.ItemHandle {
	t.Items.AddTemplate(tmpl)
	h, err := t.Items.Spawn(tmpl.ItemID, boundTo)
	if err != nil {
		panic(err)
	}
	return h
}
