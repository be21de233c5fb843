package models

import (
	"database/sql/driver"
	"fmt"
)

// Protocol is the wire-level kind of a saved request. It is stored as a short code.
type Protocol string

const (
	ProtocolHTTP      Protocol = "HTTP"
	ProtocolWebSocket Protocol = "WS"
	ProtocolGRPC      Protocol = "GRPC"
	ProtocolGraphQL   Protocol = "GQL"
)

// Protocols lists every declared protocol code in display order.
var Protocols = []Protocol{ProtocolHTTP, ProtocolWebSocket, ProtocolGRPC, ProtocolGraphQL}

// ParseProtocol maps a stored code to a Protocol. Unknown codes are an error, never a default.
func ParseProtocol(code string) (Protocol, error) {
	p := Protocol(code)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown protocol code %q", ErrValidation, code)
	}
	return p, nil
}

// Valid reports whether p is one of the declared codes.
func (p Protocol) Valid() bool {
	switch p {
	case ProtocolHTTP, ProtocolWebSocket, ProtocolGRPC, ProtocolGraphQL:
		return true
	}
	return false
}

func (p Protocol) String() string { return string(p) }

// Value implements driver.Valuer so only declared codes reach the database.
func (p Protocol) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: unknown protocol code %q", ErrValidation, string(p))
	}
	return string(p), nil
}

// Scan implements sql.Scanner. A stored code outside the table is reported as corruption.
func (p *Protocol) Scan(src any) error {
	code, err := scanCode(src)
	if err != nil {
		return fmt.Errorf("scanning protocol: %w", err)
	}
	parsed, err := ParseProtocol(code)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText renders the code. The zero value renders as an empty string.
func (p Protocol) MarshalText() ([]byte, error) {
	if p != "" && !p.Valid() {
		return nil, fmt.Errorf("%w: unknown protocol code %q", ErrValidation, string(p))
	}
	return []byte(p), nil
}

// UnmarshalText accepts any declared code. An empty string decodes to the zero value,
// which every write path rejects.
func (p *Protocol) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = ""
		return nil
	}
	parsed, err := ParseProtocol(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// HTTPMethod is the verb of an HTTP request. DELETE is stored as DEL.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DEL"
)

// HTTPMethods lists every declared method code in display order.
var HTTPMethods = []HTTPMethod{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseHTTPMethod maps a stored code to an HTTPMethod. "PATCH", "DELETE" and any other
// undeclared code fail.
func ParseHTTPMethod(code string) (HTTPMethod, error) {
	m := HTTPMethod(code)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown http method code %q", ErrValidation, code)
	}
	return m, nil
}

// Valid reports whether m is one of the declared codes.
func (m HTTPMethod) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

func (m HTTPMethod) String() string { return string(m) }

func (m HTTPMethod) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown http method code %q", ErrValidation, string(m))
	}
	return string(m), nil
}

func (m *HTTPMethod) Scan(src any) error {
	code, err := scanCode(src)
	if err != nil {
		return fmt.Errorf("scanning http method: %w", err)
	}
	parsed, err := ParseHTTPMethod(code)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m HTTPMethod) MarshalText() ([]byte, error) {
	if m != "" && !m.Valid() {
		return nil, fmt.Errorf("%w: unknown http method code %q", ErrValidation, string(m))
	}
	return []byte(m), nil
}

func (m *HTTPMethod) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = ""
		return nil
	}
	parsed, err := ParseHTTPMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func scanCode(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: NULL code", ErrValidation)
	default:
		return "", fmt.Errorf("%w: unsupported code type %T", ErrValidation, src)
	}
}
