package loadmap

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Answer is a tri-state sanitary checklist response. It is never a bool:
// the zero value means the question was not answered.
type Answer int8

const (
	AnswerUnset Answer = iota
	AnswerNo
	AnswerYes
)

// AnswerFromInt maps the persisted integer form: 1 is yes, 0 is no, anything
// else is unanswered.
func AnswerFromInt(v int64) Answer {
	switch v {
	case 1:
		return AnswerYes
	case 0:
		return AnswerNo
	}
	return AnswerUnset
}

// AnswerFromLabel maps the form label: "Yes", "No", anything else unset.
func AnswerFromLabel(s string) Answer {
	switch s {
	case "Yes":
		return AnswerYes
	case "No":
		return AnswerNo
	}
	return AnswerUnset
}

// Label is the form representation.
func (a Answer) Label() string {
	switch a {
	case AnswerYes:
		return "Yes"
	case AnswerNo:
		return "No"
	}
	return ""
}

func (a Answer) String() string {
	if a == AnswerUnset {
		return "unset"
	}
	return a.Label()
}

// Set reports whether the question was answered.
func (a Answer) Set() bool { return a != AnswerUnset }

// MarshalJSON encodes as 1, 0 or null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case AnswerYes:
		return []byte("1"), nil
	case AnswerNo:
		return []byte("0"), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts null, numbers, numeric strings and the form labels.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		*a = AnswerUnset
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "1":
			*a = AnswerYes
		case "0":
			*a = AnswerNo
		default:
			*a = AnswerFromLabel(s)
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("sanitary answer: %w", err)
	}
	if n != float64(int64(n)) {
		*a = AnswerUnset
		return nil
	}
	*a = AnswerFromInt(int64(n))
	return nil
}

// Value stores the answer as a nullable integer column.
func (a Answer) Value() (driver.Value, error) {
	switch a {
	case AnswerYes:
		return int64(1), nil
	case AnswerNo:
		return int64(0), nil
	}
	return nil, nil
}

// Scan reads a nullable integer column.
func (a *Answer) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = AnswerUnset
	case int64:
		*a = AnswerFromInt(v)
	case int32:
		*a = AnswerFromInt(int64(v))
	case bool:
		if v {
			*a = AnswerYes
		} else {
			*a = AnswerNo
		}
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("sanitary answer: unsupported type %T", src)
	}
	return nil
}
