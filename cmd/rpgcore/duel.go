package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/db"
	"github.com/udisondev/rpgcore/internal/game/combat"
	"github.com/udisondev/rpgcore/internal/game/stat"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/world"
)

// duel — скриптованный бой: мечник и маг против скелета.
// All methods run on the tick loop goroutine.
type duel struct {
	reg         *world.Registry
	tables      *data.Tables
	accessories *data.AccessoryContainer
	quals       *data.Qualifications
	engine      *stat.Engine
	combat      *combat.Resolver
	store       *db.Store // nil without database

	knight, mage, mob *world.Actor

	maxAttacks int
	attacks    int
	done       chan struct{}
}

// setup spawns the actors and equips them from the loaded tables.
func (d *duel) setup(ctx context.Context) error {
	d.knight = d.reg.NewPlayer("Aldric", 40)
	d.knight.SetClass(model.ClassSwordsman)
	d.knight.SetRace(model.RaceHuman)
	d.knight.SetSubclass(model.SubclassBerserker)

	d.mage = d.reg.NewPlayer("Seren", 30)
	d.mage.SetClass(model.ClassElementalist)
	d.mage.SetRace(model.RaceSpirit)
	d.mage.SetSubclass(model.SubclassWindwalker)

	d.mob = d.reg.NewMob("skeleton_warrior", 35)
	if err := d.tables.Mobs.Assign(d.mob.ID(), "skeleton_warrior"); err != nil {
		return err
	}

	// The greatblade is above the qualification threshold.
	if err := d.unlock(ctx, d.knight, 1004); err != nil {
		return err
	}

	loadout := []struct {
		actor *world.Actor
		slot  int
		item  int32
	}{
		{d.knight, model.SlotMainHand, 1004},
		{d.knight, model.SlotArmorHead, 2001},
		{d.knight, model.SlotArmorChest, 2002},
		{d.knight, model.SlotArmorLegs, 2003},
		{d.knight, model.SlotArmorFeet, 2004},
		{d.mage, model.SlotMainHand, 6001},
		{d.mage, model.SlotOffHand, 1003},
	}
	for _, l := range loadout {
		h, err := d.spawn(ctx, l.actor, l.item)
		if err != nil {
			return err
		}
		l.actor.SetSlot(l.slot, h)
	}

	vampiric, err := d.spawn(ctx, d.knight, 4002)
	if err != nil {
		return err
	}
	d.accessories.Equip(d.knight.ID(), vampiric)

	haste, err := d.spawn(ctx, d.mage, 4001)
	if err != nil {
		return err
	}
	d.accessories.Equip(d.mage.ID(), haste)

	for _, a := range []*world.Actor{d.knight, d.mage, d.mob} {
		d.engine.ResetHealth(a)
		d.engine.SyncMoveSpeed(a)
		slog.Info("actor ready",
			"name", a.Name(),
			"health", a.Health(),
			"phys_damage", d.engine.GetTotal(a, model.AttrPhysDamage),
			"magic_damage", d.engine.GetTotal(a, model.AttrMagicDamage),
			"phys_defense", d.engine.GetTotal(a, model.AttrPhysDefense),
			"passives", d.engine.ActivePassives(a))
	}
	return nil
}

// spawn creates a bound item instance and persists it when a store is present.
func (d *duel) spawn(ctx context.Context, owner *world.Actor, templateID int32) (model.ItemHandle, error) {
	h, err := d.tables.Items.Spawn(templateID, owner.ID())
	if err != nil {
		return 0, fmt.Errorf("spawning item %d for %s: %w", templateID, owner.Name(), err)
	}
	if d.store != nil {
		row := db.ItemInstanceRow{Handle: h, TemplateID: templateID, BoundTo: owner.ID()}
		if err := d.store.Instances.Save(ctx, row); err != nil {
			return 0, err
		}
	}
	return h, nil
}

func (d *duel) unlock(ctx context.Context, a *world.Actor, itemID int32) error {
	if d.store != nil {
		if err := d.store.Qualifications.Unlock(ctx, a.ID(), itemID); err != nil {
			return err
		}
		return d.store.LoadQualifications(ctx, d.quals, a.ID())
	}
	d.quals.Unlock(a.ID(), itemID)
	return nil
}

// leave persists the players' unlocks and removes every duel actor from the world.
func (d *duel) leave(ctx context.Context) error {
	for _, a := range []*world.Actor{d.knight, d.mage} {
		if a == nil {
			continue
		}
		if d.store != nil {
			if err := d.store.SaveQualifications(ctx, a.ID(), d.quals.Items(a.ID())); err != nil {
				return err
			}
		}
		d.quals.Forget(a.ID())
		d.accessories.Clear(a.ID())
		d.reg.Remove(a.ID())
	}
	if d.mob != nil {
		d.tables.Mobs.Remove(d.mob.ID())
		d.reg.Remove(d.mob.ID())
	}
	slog.Info("duel actors left the world")
	return nil
}

// step runs one exchange: the knight strikes, the mage alternates fire and
// water bolts, and the skeleton answers whoever draws more threat.
func (d *duel) step(ctx context.Context) {
	if d.attacks >= d.maxAttacks {
		return
	}

	bolt := model.ElementFire
	if d.attacks%2 == 1 {
		bolt = model.ElementWater
	}

	d.attack(ctx, combat.Attack{Attacker: d.knight, Victim: d.mob})
	d.attack(ctx, combat.Attack{Attacker: d.mage, Victim: d.mob, Element: bolt, Projectile: true})

	target := d.knight
	if d.combat.MobTargetWeight(d.mage) > d.combat.MobTargetWeight(d.knight) {
		target = d.mage
	}
	d.attack(ctx, combat.Attack{Attacker: d.mob, Victim: target})

	d.attacks++

	if d.mob.Health() <= 0 {
		slog.Info("skeleton defeated, respawning", "attacks", d.attacks)
		d.mob.Buffs().Clear()
		d.mob.SetMark(model.ElementNone)
		d.engine.ResetHealth(d.mob)
	}
	for _, p := range []*world.Actor{d.knight, d.mage} {
		if p.Health() <= 0 {
			slog.Info("player fell, reviving", "name", p.Name())
			d.engine.ResetHealth(p)
		}
	}

	if d.attacks >= d.maxAttacks {
		close(d.done)
	}
}

func (d *duel) attack(ctx context.Context, atk combat.Attack) {
	res := d.combat.Resolve(ctx, atk)
	applyResult(d.reg, d.engine, atk, res)

	attrs := []any{
		"attacker", atk.Attacker.Name(),
		"victim", atk.Victim.Name(),
		"outcome", res.Outcome,
		"damage", res.Damage,
		"crit", res.Crit,
		"victim_health", atk.Victim.Health(),
	}
	if res.Reaction != nil {
		attrs = append(attrs, "reaction", res.Reaction.Name)
	}
	slog.Info("attack", attrs...)
}

// applyResult mirrors a resolved damage event onto host state: health,
// heals, interrupts. Buff-type effects are already on the buff stores.
func applyResult(reg *world.Registry, engine *stat.Engine, atk combat.Attack, res combat.Result) {
	if res.Outcome == combat.OutcomeApplied {
		atk.Victim.SetHealth(atk.Victim.Health() - res.Damage)
	}

	for _, e := range res.Effects {
		a, ok := reg.Get(e.ActorID)
		if !ok {
			continue
		}
		switch e.Kind {
		case combat.EffectHeal:
			maxHP := engine.GetTotal(a, model.AttrMaxHealth)
			a.SetHealth(min(maxHP, a.Health()+e.Amount))
		case combat.EffectInterrupt:
			a.SetChanneling(false)
		case combat.EffectShield:
			slog.Debug("shield granted", "actor", a.Name(), "amount", e.Amount)
		case combat.EffectPassive:
			slog.Debug("passive triggered", "actor", a.Name(), "passive", e.Trigger.PassiveID, "on", e.Trigger.Kind)
		}
	}
}

// report logs the final attribute snapshot of every duelist.
func (d *duel) report() {
	for _, a := range []*world.Actor{d.knight, d.mage, d.mob} {
		snap := d.engine.Snapshot(a)
		attrs := []any{"name", a.Name(), "health", a.Health(), "move_speed", a.MoveSpeed()}
		for _, attr := range model.Attributes() {
			if v := snap[attr]; v != 0 && !attr.IsPercent() {
				attrs = append(attrs, attr.String(), v)
			}
		}
		slog.Info("final attributes", attrs...)
	}
}
