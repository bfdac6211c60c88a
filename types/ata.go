package types

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Statuses reported by the backend for a successful call.
const (
	StatusAccountExists  = "Account Exists"
	StatusAccountCreated = "Account Created"
)

// SubmissionRequest is built on submit and consumed once by the backend client.
type SubmissionRequest struct {
	TokenSymbol    string `json:"tokenInput"`
	OwnerPublicKey string `json:"ownerPublicKey"`
}

// AccountKey is one account of an instruction, in order.
type AccountKey struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// Instruction is the on-chain instruction built by the backend. It is only displayed.
type Instruction struct {
	ProgramID string       `json:"programId"`
	Keys      []AccountKey `json:"keys"`
}

// AtaResult is the success body of /api/createAta.
type AtaResult struct {
	Token           string              `json:"token"`
	TokenMint       string              `json:"tokenMint"`
	OwnerPublicKey  string              `json:"ownerPublicKey"`
	AssociatedToken string              `json:"associatedToken"`
	Status          string              `json:"status"`
	Instruction     Option[Instruction] `json:"instruction"`
}

// Verified reports whether the account already existed.
func (r AtaResult) Verified() bool {
	return r.Status == StatusAccountExists
}

// UnmarshalJSON accepts a non-string status, keeping its JSON text, so an
// odd status never hides an otherwise usable result.
func (r *AtaResult) UnmarshalJSON(data []byte) error {
	type Alias AtaResult
	aux := struct {
		*Alias
		Status json.RawMessage `json:"status"`
	}{Alias: (*Alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Status = statusText(aux.Status)
	return nil
}

func statusText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// FailureResult is the body of a non-2xx response from /api/createAta.
type FailureResult struct {
	Status StatusFlag `json:"status"`
	Token  string     `json:"token"`
	Error  string     `json:"error"`
}

// StatusFlag is the failure "status" field, usually a bool or a string.
// Any other JSON value is kept verbatim in Raw so the error message still
// gets through.
type StatusFlag struct {
	Bool   bool
	Text   string
	IsText bool
	Raw    json.RawMessage
}

func (s StatusFlag) String() string {
	switch {
	case s.IsText:
		return s.Text
	case len(s.Raw) > 0:
		return string(s.Raw)
	}
	return strconv.FormatBool(s.Bool)
}

func (s StatusFlag) MarshalJSON() ([]byte, error) {
	switch {
	case s.IsText:
		return json.Marshal(s.Text)
	case len(s.Raw) > 0:
		return s.Raw, nil
	}
	return json.Marshal(s.Bool)
}

func (s *StatusFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = StatusFlag{Bool: b}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = StatusFlag{Text: text, IsText: true}
		return nil
	}
	*s = StatusFlag{Raw: append(json.RawMessage(nil), data...)}
	return nil
}
