package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
)

// Document is the key-value form of an entity as stored in the remote document store.
type Document = map[string]interface{}

// decodeDocument fills out from a document produced by one of the ToMap helpers,
// possibly after a round trip through JSON.
func decodeDocument(doc Document, out interface{}) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", errorz.ErrInvalidDocument)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return err
	}
	if err = decoder.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", errorz.ErrInvalidDocument, err)
	}
	return nil
}

// StringSlice is a list of strings stored as a JSON text column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func (StringSlice) GormDataType() string {
	return "text"
}

// Contains reports whether v is in the slice.
func (s StringSlice) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Without returns a copy of the slice with every occurrence of v removed.
func (s StringSlice) Without(v string) StringSlice {
	out := make(StringSlice, 0, len(s))
	for _, item := range s {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// JSONList is a list of value objects stored as a JSON text column.
type JSONList[T any] []T

func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *JSONList[T]) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (JSONList[T]) GormDataType() string {
	return "text"
}

func scanJSON(src interface{}, dst interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("json column: expected []byte or string, got %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func ageAt(dob, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
