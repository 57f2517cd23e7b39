package backend

// ConservationStatus is an IUCN Red List category as reported by the backend.
type ConservationStatus string

const (
	StatusCriticallyEndangered ConservationStatus = "CR"
	StatusEndangered           ConservationStatus = "EN"
	StatusVulnerable           ConservationStatus = "VU"
	StatusNearThreatened       ConservationStatus = "NT"
	StatusLeastConcern         ConservationStatus = "LC"
)

var statusLabels = map[ConservationStatus]string{
	StatusCriticallyEndangered: "Critically Endangered",
	StatusEndangered:           "Endangered",
	StatusVulnerable:           "Vulnerable",
	StatusNearThreatened:       "Near Threatened",
	StatusLeastConcern:         "Least Concern",
}

func (s ConservationStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ConservationStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Endangered reports whether the status counts towards endangered species scores.
func (s ConservationStatus) Endangered() bool {
	return s == StatusCriticallyEndangered || s == StatusEndangered || s == StatusVulnerable
}

// Profile is the body of GET /api/me. Name and Email are optional on the wire.
type Profile struct {
	ID    int     `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type Stats struct {
	EndangeredSpecies int     `json:"endangered_species"`
	TotalSightings    int     `json:"total_sightings"`
	AvgThreatScore    float64 `json:"avg_threat_score"`
}

type Sighting struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Sci         string             `json:"sci"`
	Status      ConservationStatus `json:"status"`
	Lat         float64            `json:"lat"`
	Lng         float64            `json:"lng"`
	Timestamp   int64              `json:"timestamp"`
	ThreatScore int                `json:"threat_score"`
	Reporter    string             `json:"reporter"`
}

type LeaderboardEntry struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	Score             int     `json:"score"`
	Species           int     `json:"species"`
	EndangeredSpecies int     `json:"endangered_species"`
	AvgThreatScore    float64 `json:"avg_threat_score"`
	Joined            string  `json:"joined"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SightingRequest is the body of POST /api/sightings after defaults are applied.
type SightingRequest struct {
	Name        string             `json:"name"`
	Sci         string             `json:"sci"`
	Status      ConservationStatus `json:"status"`
	Lat         float64            `json:"lat"`
	Lng         float64            `json:"lng"`
	ThreatScore float64            `json:"threat_score"`
}
