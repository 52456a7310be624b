package graphql2go

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("query { serverTime }", nil)
	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query": "query { serverTime }"}`, string(body))

	req = NewRequest("query($id: ID!) { human(id: $id) { name } }", map[string]any{"id": "1000"})
	req.OperationName = "FetchHuman"
	body, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": "query($id: ID!) { human(id: $id) { name } }",
		"operationName": "FetchHuman",
		"variables": {"id": "1000"}
	}`, string(body))
}

func TestDecodeResponse(t *testing.T) {
	resp, err := DecodeResponse(strings.NewReader(`{
		"data": {"hero": {"name": "R2-D2"}},
		"errors": [
			{"message": "boom", "locations": [{"line": 2, "column": 3}], "path": ["hero", 0]}
		]
	}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"hero": {"name": "R2-D2"}}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "boom", resp.Errors[0].Message)
	assert.Equal(t, []ErrorLocation{{Line: 2, Column: 3}}, resp.Errors[0].Locations)
}

func TestDecodeResponse_Invalid(t *testing.T) {
	_, err := DecodeResponse(strings.NewReader("<html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response payload")
}

func TestResponse_Err(t *testing.T) {
	resp := &Response{}
	assert.NoError(t, resp.Err())

	resp.Errors = []Error{{Message: "first"}, {Message: "second"}}
	err := resp.Err()
	require.Error(t, err)
	assert.EqualError(t, err, "graphql2go: server failure: first")

	var srvErr *Error
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "first", srvErr.Message)
}

func TestResponse_Decode(t *testing.T) {
	resp, err := DecodeResponse(strings.NewReader(`{"data": {"hero": {"name": "R2-D2"}}}`))
	require.NoError(t, err)

	var out struct {
		Hero struct {
			Name string `json:"name"`
		} `json:"hero"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "R2-D2", out.Hero.Name)
}

func TestResponse_Decode_ServerErrorWins(t *testing.T) {
	resp, err := DecodeResponse(strings.NewReader(`{
		"data": {"hero": null},
		"errors": [{"message": "hero unavailable"}]
	}`))
	require.NoError(t, err)

	var out map[string]any
	err = resp.Decode(&out)
	require.Error(t, err)
	assert.EqualError(t, err, "graphql2go: server failure: hero unavailable")
}

func TestResponse_Decode_NoData(t *testing.T) {
	resp, err := DecodeResponse(strings.NewReader(`{}`))
	require.NoError(t, err)

	var out map[string]any
	err = resp.Decode(&out)
	require.EqualError(t, err, "graphql2go: response has no data")
}
