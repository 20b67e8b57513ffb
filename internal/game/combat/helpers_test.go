package combat

import (
	"testing"

	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/game/equip"
	"github.com/udisondev/rpgcore/internal/game/stat"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/telemetry"
	"github.com/udisondev/rpgcore/internal/world"
)

// arena wires the default data tables, the stat engine and an actor registry.
type arena struct {
	tables *data.Tables
	reg    *world.Registry
	stats  *stat.Engine
	nextID int32
}

func newArena(t testing.TB) *arena {
	t.Helper()
	ids := world.NewObjectIDGenerator()
	tables, err := data.LoadDefaults(ids.NextItemID)
	if err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	cfg := stat.DefaultConfig()
	reg := world.NewRegistry(ids, cfg.MoveSpeedBaseline)
	resolver := equip.NewResolver(tables.Items, data.NewQualifications(reg.Invalidate), tables.Classes, nil)
	return &arena{
		tables: tables,
		reg:    reg,
		stats:  stat.NewEngine(resolver, tables.Sets, tables.Races, tables.Mobs, cfg),
		nextID: 100000,
	}
}

// resolver returns a combat resolver whose crit roll always yields roll.
func (a *arena) resolver(roll float64, opts ...Option) *Resolver {
	opts = append([]Option{
		WithRand(func() float64 { return roll }),
		WithTracer(telemetry.NoopTracer()),
	}, opts...)
	return NewResolver(a.stats, a.tables.Reactions, opts...)
}

// equip puts a fresh item of typ with stats into slot.
func (a *arena) equip(actor *world.Actor, slot int, typ model.ItemType, stats model.Stats, passives ...string) {
	a.nextID++
	h := a.tables.SpawnTestItem(&model.ItemTemplate{
		ItemID:   a.nextID,
		Type:     typ,
		Stats:    stats,
		Passives: passives,
	}, 0)
	actor.SetSlot(slot, h)
}

// fighter creates a player holding a weapon with stats in the main hand.
func (a *arena) fighter(name string, stats model.Stats, passives ...string) *world.Actor {
	p := a.reg.NewPlayer(name, 10)
	a.equip(p, model.SlotMainHand, model.ItemTypeWeapon, stats, passives...)
	a.stats.ResetHealth(p)
	return p
}

// dummy creates a player wearing a chest piece with stats.
func (a *arena) dummy(name string, stats model.Stats, passives ...string) *world.Actor {
	p := a.reg.NewPlayer(name, 10)
	a.equip(p, model.SlotArmorChest, model.ItemTypeArmor, stats, passives...)
	a.stats.ResetHealth(p)
	return p
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
