package graphql2go

import (
	"encoding/json"
	"fmt"
	"io"
)

// Request is the standard GraphQL request payload. Build one from an
// OperationBuilder and hand it to whatever transport the application uses:
//
//	query, vars, err := op.Build()
//	req := graphql2go.NewRequest(query, vars)
//	body, err := json.Marshal(req)
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func NewRequest(query string, vars map[string]any) *Request {
	return &Request{Query: query, Variables: vars}
}

type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is an error returned by a GraphQL server.
type Error struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations,omitempty"`
	Path       []any           `json:"path,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

func (err *Error) Error() string {
	return "graphql2go: server failure: " + err.Message
}

// Response is the standard GraphQL response envelope.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// DecodeResponse reads a response envelope. Server errors are not an error
// here; they are surfaced by Err and Decode.
func DecodeResponse(r io.Reader) (*Response, error) {
	resp := new(Response)
	if err := json.NewDecoder(r).Decode(resp); err != nil {
		return nil, fmt.Errorf("graphql2go: failed to decode response payload: %v", err)
	}
	return resp, nil
}

// Err returns the first server error carried by the response, if any.
func (resp *Response) Err() error {
	if len(resp.Errors) > 0 {
		return &resp.Errors[0]
	}
	return nil
}

// Decode unmarshals the response data into a generated model. Server
// errors take precedence over decoding.
func (resp *Response) Decode(data any) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("graphql2go: response has no data")
	}
	return json.Unmarshal(resp.Data, data)
}
