package graphql2go

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Shape describes the nullability of a value and, when the value is a list,
// the shape of its elements. It mirrors the wrapping structure of a GraphQL
// type reference: [[String!]]! and [[String]!]! have the same Go type but
// different shapes.
type Shape struct {
	NonNull bool
	Elem    *Shape // non-nil when this level is a list
}

// Check validates raw JSON against the shape. Absent and explicit-null
// values are treated alike: both are rejected at a non-null level. List
// elements are checked recursively, so a violation deep inside
// [[String!]!]! is reported with its full index path.
func (s *Shape) Check(typeName, field string, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	return s.check(typeName, field, raw)
}

func (s *Shape) check(typeName, path string, raw json.RawMessage) error {
	if isJSONNull(raw) {
		if s.NonNull {
			return &RequiredFieldMissingError{Type: typeName, Path: path, Null: raw != nil}
		}
		return nil
	}
	if s.Elem == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("graphql2go: %s.%s: %w", typeName, path, err)
	}
	for i, item := range items {
		if err := s.Elem.check(typeName, path+"["+strconv.Itoa(i)+"]", item); err != nil {
			return err
		}
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// CheckField validates one decoded field against its shape. Generated
// UnmarshalJSON methods call this for every field whose type has a
// non-null level.
func CheckField(typeName, field string, shape *Shape, raw json.RawMessage) error {
	return shape.Check(typeName, field, raw)
}
