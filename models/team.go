package models

type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

type Division string

const (
	DivisionNorth Division = "North"
	DivisionSouth Division = "South"
	DivisionEast  Division = "East"
	DivisionWest  Division = "West"
)

// Team is static reference data: the 32 franchises, seeded once and
// immutable afterwards except for the logo.
type Team struct {
	ID           int        `json:"id" db:"id"`
	City         string     `json:"city" db:"city"`
	Name         string     `json:"name" db:"name"`
	Abbreviation string     `json:"abbreviation" db:"abbreviation"`
	Conference   Conference `json:"conference" db:"conference"`
	Division     Division   `json:"division" db:"division"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
