package rxnorm

// interactionPayload is one interaction entry as returned by the API.
type interactionPayload struct {
	WithMedication        string   `json:"with_medication"`
	Severity              string   `json:"severity"`
	Description           string   `json:"description"`
	Source                string   `json:"source"`
	Contraindicated       bool     `json:"contraindicated"`
	MinimumGapHours       float64  `json:"minimum_gap_hours"`
	Recommendations       []string `json:"recommendations"`
	EmergencyInstructions string   `json:"emergency_instructions"`
}

// lookupResponse is the wire shape of both the drug and herb lookup
// endpoints.
type lookupResponse struct {
	Name         string               `json:"name"`
	Interactions []interactionPayload `json:"interactions"`
}
