package core

// Side selects which endpoint of a relationship is treated as primary.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Relationship links two repository items. Each endpoint has its own
// ordinal place; which one is in effect depends on the side the caller
// treats as primary.
type Relationship struct {
	ID            string `json:"id"`
	Self          string `json:"self,omitempty"`
	LeftItemLink  string `json:"leftItemLink,omitempty"`
	RightItemLink string `json:"rightItemLink,omitempty"`
	LeftPlace     int    `json:"leftPlace"`
	RightPlace    int    `json:"rightPlace"`
	TypeID        string `json:"typeId,omitempty"`
}

func (r *Relationship) ObjectType() ObjectType { return TypeRelationship }

func (r *Relationship) Link() string { return r.Self }

// PlaceFor returns the ordinal place of the given side's endpoint.
func (r *Relationship) PlaceFor(side Side) int {
	if side == SideLeft {
		return r.LeftPlace
	}
	return r.RightPlace
}

// SetPlace updates the ordinal place of the given side's endpoint.
func (r *Relationship) SetPlace(side Side, place int) {
	if side == SideLeft {
		r.LeftPlace = place
		return
	}
	r.RightPlace = place
}

// ItemLink returns the self link of the given side's endpoint item.
func (r *Relationship) ItemLink(side Side) string {
	if side == SideLeft {
		return r.LeftItemLink
	}
	return r.RightItemLink
}

// SideOf reports which endpoint the given item link belongs to. The second
// return is false when the link matches neither endpoint.
func (r *Relationship) SideOf(itemLink string) (Side, bool) {
	switch itemLink {
	case "":
		return SideLeft, false
	case r.LeftItemLink:
		return SideLeft, true
	case r.RightItemLink:
		return SideRight, true
	}
	return SideLeft, false
}
