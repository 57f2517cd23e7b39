package actions

import (
	"encoding/json"

	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
)

const (
	msgInvalidBody      = "Invalid body"
	msgNameSciRequired  = "name and sci required"
	msgInvalidStatus    = "status must be a string"
	msgNotAuthenticated = "Not authenticated"
)

// parseSighting turns a raw submit-sighting body into the backend request,
// applying defaults: status LC, and 0 for any coordinate or threat score
// that is absent or not a JSON number. A status string outside the known
// codes is forwarded as is and left for the backend to judge.
func parseSighting(body []byte) (backend.SightingRequest, error) {
	if !json.Valid(body) {
		return backend.SightingRequest{}, invalidBody()
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Valid JSON that is not an object has no name or sci.
		return backend.SightingRequest{}, apperrors.Validation("name", msgNameSciRequired)
	}

	req := backend.SightingRequest{
		Name:        stringField(fields["name"]),
		Sci:         stringField(fields["sci"]),
		Status:      backend.ConservationStatus(stringField(fields["status"])),
		Lat:         numberField(fields["lat"]),
		Lng:         numberField(fields["lng"]),
		ThreatScore: numberField(fields["threat_score"]),
	}
	if req.Name == "" {
		return backend.SightingRequest{}, apperrors.Validation("name", msgNameSciRequired)
	}
	if req.Sci == "" {
		return backend.SightingRequest{}, apperrors.Validation("sci", msgNameSciRequired)
	}

	if _, present := fields["status"]; present && req.Status == "" && !isNullOrEmptyString(fields["status"]) {
		return backend.SightingRequest{}, apperrors.Validation("status", msgInvalidStatus)
	}
	if req.Status == "" {
		req.Status = backend.StatusLeastConcern
	}
	return req, nil
}

func invalidBody() *apperrors.ActionError {
	err := apperrors.Validation("", msgInvalidBody)
	err.Err = apperrors.Join(apperrors.ErrValidation, apperrors.ErrInvalidBody)
	return err
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func numberField(raw json.RawMessage) float64 {
	var n float64
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	return n
}

func isNullOrEmptyString(raw json.RawMessage) bool {
	s := string(raw)
	return s == "null" || s == `""`
}
