package handler

import "fayda/internal/identity/faydaid"

// ValidateResponse reports the outcome of a format check. Reason names the
// first failed gate and is omitted for valid IDs.
type ValidateResponse struct {
	FaydaID string `json:"fayda_id"`
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`
}

// RegionsResponse lists the region code table.
type RegionsResponse struct {
	Regions []faydaid.Region `json:"regions"`
}

var reasonCodes = map[error]string{
	faydaid.ErrLength:    "length",
	faydaid.ErrNonDigit:  "non_digit",
	faydaid.ErrBirthDate: "birth_date",
	faydaid.ErrRegion:    "region",
	faydaid.ErrChecksum:  "checksum",
}

func toValidateResponse(faydaID string, err error) ValidateResponse {
	return ValidateResponse{
		FaydaID: faydaID,
		IsValid: err == nil,
		Reason:  reasonCodes[err],
	}
}
