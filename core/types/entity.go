package types

// EntityKind discriminates the variants carried by Entity.
type EntityKind string

const (
	KindProduct     EntityKind = "product"
	KindParticipant EntityKind = "participant"
)

// Entity is a tagged union over the two ledger entity kinds. Exactly one of
// Product or Participant is set, matching Kind.
type Entity struct {
	Kind        EntityKind   `json:"kind"`
	Product     *Product     `json:"product,omitempty"`
	Participant *Participant `json:"participant,omitempty"`
}

// ProductEntity wraps a product in the tagged union.
func ProductEntity(p *Product) Entity {
	return Entity{Kind: KindProduct, Product: p}
}

// ParticipantEntity wraps a participant in the tagged union.
func ParticipantEntity(p *Participant) Entity {
	return Entity{Kind: KindParticipant, Participant: p}
}
