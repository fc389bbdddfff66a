package models

// Tier represents the responsibility tier of an agent role.
type Tier string

const (
	// TierLead coordinates the other agents and owns label-wide decisions.
	TierLead Tier = "lead"
	// TierSpecialist owns a single business area.
	TierSpecialist Tier = "specialist"
)

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierLead, TierSpecialist:
		return true
	default:
		return false
	}
}

// Portability describes how far a role's behavior carries across labels.
type Portability string

const (
	// PortabilityUniversal roles work unchanged for any label and distributor.
	PortabilityUniversal Portability = "universal"
	// PortabilityDistributor roles depend on the distributor's data and portal.
	PortabilityDistributor Portability = "distributor-specific"
	// PortabilityLabel roles depend on the label's own contracts and storage.
	PortabilityLabel Portability = "label-specific"
)

// Status is how far along a role's backing integration is.
type Status string

const (
	StatusActive   Status = "active"
	StatusBuilding Status = "building"
	StatusPlanned  Status = "planned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBuilding, StatusPlanned:
		return true
	default:
		return false
	}
}

// Valid returns true if the portability classification is a known value.
func (p Portability) Valid() bool {
	switch p {
	case PortabilityUniversal, PortabilityDistributor, PortabilityLabel:
		return true
	default:
		return false
	}
}
