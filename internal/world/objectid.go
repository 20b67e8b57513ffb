package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for actors and items.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid / unbound)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: Mobs
//	0x30000000 - 0x3FFFFFFF: Item instances
//	0x40000000 - 0xFFFFFFFF: Reserved
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextMobID    atomic.Uint32
	nextItemID   atomic.Uint32
}

const (
	playerIDBase uint32 = 0x10000000
	mobIDBase    uint32 = 0x20000000
	itemIDBase   uint32 = 0x30000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(playerIDBase)
	gen.nextMobID.Store(mobIDBase)
	gen.nextItemID.Store(itemIDBase)
	return gen
}

// NextPlayerID generates next unique player object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextMobID generates next unique mob object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextMobID() uint32 {
	return g.nextMobID.Add(1)
}

// NextItemID generates next unique item object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	return g.nextItemID.Add(1)
}

// IsMobID reports whether id lies in the mob range.
func IsMobID(id uint32) bool {
	return id >= mobIDBase && id < itemIDBase
}

// Global ID generator.
var globalIDGenerator = NewObjectIDGenerator()

// IDGenerator returns global object ID generator.
func IDGenerator() *ObjectIDGenerator {
	return globalIDGenerator
}
