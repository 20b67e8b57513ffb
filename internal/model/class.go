package model

// Class is the character's combat class.
type Class int8

const (
	ClassNone Class = iota
	ClassSwordsman
	ClassArcher
	ClassGuardian
	ClassElementalist // elemental caster: element items + off-hand weapon
)

var classNames = []string{"none", "swordsman", "archer", "guardian", "elementalist"}

func (c Class) String() string { return nameOf(classNames, c) }

// ParseClass resolves a configuration name to a Class.
func ParseClass(name string) (Class, error) {
	return parseName[Class](classNames, name, ErrUnknownClass)
}

// Race определяет расу персонажа (бонусы расы задаются в конфигурации).
type Race int8

const (
	RaceNone Race = iota
	RaceHuman
	RaceElf
	RaceBeastkin
	RaceSpirit
)

var raceNames = []string{"none", "human", "elf", "beastkin", "spirit"}

func (r Race) String() string { return nameOf(raceNames, r) }

// ParseRace resolves a configuration name to a Race.
func ParseRace(name string) (Race, error) {
	return parseName[Race](raceNames, name, ErrUnknownRace)
}

// Subclass selects the continuous modifier strategy of an actor.
type Subclass int8

const (
	SubclassNone Subclass = iota
	SubclassBerserker
	SubclassBulwark
	SubclassMarksman
	SubclassWindwalker

	SubclassCount
)

var subclassNames = []string{"none", "berserker", "bulwark", "marksman", "windwalker"}

func (s Subclass) String() string { return nameOf(subclassNames, s) }

// ParseSubclass resolves a configuration name to a Subclass.
func ParseSubclass(name string) (Subclass, error) {
	return parseName[Subclass](subclassNames, name, ErrUnknownSubclass)
}
