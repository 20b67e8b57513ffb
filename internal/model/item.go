package model

// ItemHandle is the opaque object id of one item instance. Zero means "no item".
type ItemHandle uint32

// ItemMeta is the read-only view of an item instance: its template plus instance binding.
type ItemMeta struct {
	Handle   ItemHandle
	Template *ItemTemplate
	// BoundTo is the actor id the item is soulbound to; 0 when unbound.
	BoundTo uint32
}

// IsBoundToOther reports whether the item is bound to an actor other than holderID.
func (m ItemMeta) IsBoundToOther(holderID uint32) bool {
	return m.BoundTo != 0 && m.BoundTo != holderID
}
