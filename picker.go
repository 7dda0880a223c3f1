// Package picker defines the request/response types for the omnirec service IPC.
// Messages are JSON-encoded, prefixed with a 4-byte little-endian length, and
// sent over a Unix domain socket.
package picker

// Request type tags.
const (
	TypeQuerySelection = "query_selection"
	TypeStoreToken     = "store_token"
	TypeValidateToken  = "validate_token"
)

// Response type tags.
const (
	TypeSelection    = "selection"
	TypeNoSelection  = "no_selection"
	TypeError        = "error"
	TypeTokenValid   = "token_valid"
	TypeTokenInvalid = "token_invalid"
	TypeTokenStored  = "token_stored"
	// TypeOK is accepted from older services as an alias for token_stored.
	TypeOK = "ok"
)

// Source types carried in a selection response.
const (
	SourceMonitor = "monitor"
	SourceWindow  = "window"
	SourceRegion  = "region"
)

// Request is sent from the picker to the service.
type Request struct {
	// Type is the request tag: query_selection, store_token, or validate_token.
	Type string `json:"type"`
	// Token is the 64-character hex approval token (store_token and
	// validate_token only).
	Token string `json:"token,omitempty"`
}

// QuerySelection builds a query_selection request.
func QuerySelection() *Request {
	return &Request{Type: TypeQuerySelection}
}

// StoreToken builds a store_token request for the given token.
func StoreToken(token string) *Request {
	return &Request{Type: TypeStoreToken, Token: token}
}

// ValidateToken builds a validate_token request for the given token.
func ValidateToken(token string) *Request {
	return &Request{Type: TypeValidateToken, Token: token}
}

// Geometry describes a region capture area. X and Y may be negative on
// multi-monitor layouts.
type Geometry struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Response is sent from the service back to the picker. Exactly one type tag
// is set per message; the remaining fields are populated according to the tag.
type Response struct {
	// Type is the response tag.
	Type string `json:"type"`
	// SourceType is monitor, window, or region (selection only).
	SourceType string `json:"source_type,omitempty"`
	// SourceID identifies the source: monitor name or window address (selection only).
	SourceID string `json:"source_id,omitempty"`
	// HasApprovalToken reports whether a stored approval token already covers
	// this selection (selection only).
	HasApprovalToken bool `json:"has_approval_token,omitempty"`
	// Geometry is present iff SourceType is region.
	Geometry *Geometry `json:"geometry,omitempty"`
	// Message is the error description (error only).
	Message string `json:"message,omitempty"`
}
