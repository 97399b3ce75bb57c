// Package models defines the journal entities and their validation rules.
// Validation is pure: no entity performs I/O.
package models

// Score scale shared by all factor inputs and sentiments.
const (
	ScoreMin = -3
	ScoreMax = 3
)

// Kind identifies an entity kind for store and aggregation dispatch.
type Kind string

const (
	KindTrade  Kind = "trade"
	KindRisk   Kind = "risk"
	KindRating Kind = "rating"
)

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindTrade, KindRisk, KindRating:
		return true
	}
	return false
}

// Sector is an industry sector used in stock-rating breakdowns.
type Sector string

const (
	SectorBasicMaterials        Sector = "basicMaterials"
	SectorCommunicationServices Sector = "communicationServices"
	SectorConsumerCyclical      Sector = "consumerCyclical"
	SectorConsumerDefensive     Sector = "consumerDefensive"
	SectorEnergy                Sector = "energy"
	SectorFinancial             Sector = "financial"
	SectorHealthcare            Sector = "healthcare"
	SectorIndustrials           Sector = "industrials"
	SectorRealEstate            Sector = "realEstate"
	SectorTechnology            Sector = "technology"
	SectorUtilities             Sector = "utilities"

	// SectorUnspecified is a synthetic sector used only when migrating
	// legacy scalar ratings that carry no sector information.
	SectorUnspecified Sector = "unspecified"
)

// AllSectors lists the real sectors, in rating-form order.
var AllSectors = []Sector{
	SectorBasicMaterials,
	SectorCommunicationServices,
	SectorConsumerCyclical,
	SectorConsumerDefensive,
	SectorEnergy,
	SectorFinancial,
	SectorHealthcare,
	SectorIndustrials,
	SectorRealEstate,
	SectorTechnology,
	SectorUtilities,
}

// Valid reports whether s is a known sector, including the synthetic one.
func (s Sector) Valid() bool {
	if s == SectorUnspecified {
		return true
	}
	for _, known := range AllSectors {
		if s == known {
			return true
		}
	}
	return false
}

// InScale reports whether v lies on the shared score scale.
func InScale(v int) bool {
	return v >= ScoreMin && v <= ScoreMax
}
