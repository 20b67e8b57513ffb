package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/equip"
	"github.com/udisondev/rpgcore/internal/game/stat"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/world"
)

func newTestDuel(t *testing.T, attacks int) *duel {
	t.Helper()
	ids := world.NewObjectIDGenerator()
	tables, err := data.LoadDefaults(ids.NextItemID)
	require.NoError(t, err)

	cfg := stat.DefaultConfig()
	reg := world.NewRegistry(ids, cfg.MoveSpeedBaseline)
	acc := data.NewAccessoryContainer(data.DefaultAccessorySlots, reg.Invalidate)
	reg.SetAccessories(acc)
	tables.Items.SetOnChange(reg.InvalidateItem)
	quals := data.NewQualifications(reg.Invalidate)
	engine := stat.NewEngine(equip.NewResolver(tables.Items, quals, tables.Classes, acc),
		tables.Sets, tables.Races, tables.Mobs, cfg)

	return &duel{
		reg:         reg,
		tables:      tables,
		accessories: acc,
		quals:       quals,
		engine:      engine,
		combat:      combat.NewResolver(engine, tables.Reactions, combat.WithGate(alive), combat.WithRand(func() float64 { return 0.99 })),
		maxAttacks:  attacks,
		done:        make(chan struct{}),
	}
}

func TestDuel_SetupEquipsEveryone(t *testing.T) {
	d := newTestDuel(t, 1)
	require.NoError(t, d.setup(context.Background()))

	assert.Contains(t, d.engine.ActivePassives(d.knight), "dragon_roar", "qualified greatblade is active")
	assert.Contains(t, d.engine.ActivePassives(d.knight), "ironwall_bastion", "full ironwall set")
	assert.Equal(t, model.ElementFire, d.engine.ActiveElement(d.mage))
	assert.Positive(t, d.engine.GetTotal(d.mage, model.AttrMagicDamage))
	assert.Positive(t, d.mob.Health())
}

func TestDuel_StepsUntilDone(t *testing.T) {
	d := newTestDuel(t, 2)
	ctx := context.Background()
	require.NoError(t, d.setup(ctx))

	d.step(ctx)
	assert.Equal(t, 1, d.attacks)
	select {
	case <-d.done:
		t.Fatal("done closed early")
	default:
	}

	d.step(ctx)
	d.step(ctx) // no-op once finished
	assert.Equal(t, 2, d.attacks)
	_, open := <-d.done
	assert.False(t, open)
}

func TestDuel_LeaveRemovesActors(t *testing.T) {
	d := newTestDuel(t, 1)
	require.NoError(t, d.setup(context.Background()))
	knight := d.knight.ID()
	require.True(t, d.quals.Has(knight, 1004))

	require.NoError(t, d.leave(context.Background()))

	assert.Zero(t, d.reg.Count())
	assert.False(t, d.quals.Has(knight, 1004))
	assert.Nil(t, d.accessories.Accessories(knight))
	_, ok := d.tables.Mobs.Stats(d.mob.ID())
	assert.False(t, ok)
}

func TestApplyResult(t *testing.T) {
	d := newTestDuel(t, 1)
	require.NoError(t, d.setup(context.Background()))
	d.knight.SetHealth(10)
	d.mob.SetChanneling(true)
	mobHP := d.mob.Health()

	res := combat.Result{
		Outcome: combat.OutcomeApplied,
		Damage:  7,
		Effects: []combat.Effect{
			{Kind: combat.EffectHeal, ActorID: d.knight.ID(), Amount: 1e6},
			{Kind: combat.EffectInterrupt, ActorID: d.mob.ID()},
			{Kind: combat.EffectHeal, ActorID: 0xdead, Amount: 5},
		},
	}
	applyResult(d.reg, d.engine, combat.Attack{Attacker: d.knight, Victim: d.mob}, res)

	assert.Equal(t, mobHP-7, d.mob.Health())
	assert.Equal(t, d.engine.GetTotal(d.knight, model.AttrMaxHealth), d.knight.Health(), "heal capped at max health")
	assert.False(t, d.mob.Channeling())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warn").String())
	assert.Equal(t, "INFO", parseLogLevel("verbose").String())
}
