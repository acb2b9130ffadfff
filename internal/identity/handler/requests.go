package handler

// ValidateRequest is the body of POST /fayda/validate.
type ValidateRequest struct {
	FaydaID string `json:"fayda_id"`
}

// VerifyRequest is the body of POST /fayda/verify and POST /profiles/verify.
type VerifyRequest struct {
	FaydaID  string `json:"fayda_id"`
	FullName string `json:"full_name,omitempty"`
}
