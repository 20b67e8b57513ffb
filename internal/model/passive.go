package model

// TriggerKind tells the skill subsystem when a passive fired.
type TriggerKind int8

const (
	TriggerOnHit   TriggerKind = iota // attacker landed a hit
	TriggerOnHurt                     // victim received a hit
	TriggerOnShoot                    // attacker released a projectile
)

var triggerNames = []string{"on_hit", "on_hurt", "on_shoot"}

func (k TriggerKind) String() string { return nameOf(triggerNames, k) }

// PassiveTrigger is one (passive id, trigger kind) pair emitted by the combat pipeline.
type PassiveTrigger struct {
	ActorID   uint32
	PassiveID string
	Kind      TriggerKind
}
