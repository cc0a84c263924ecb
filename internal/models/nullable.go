package models

import "encoding/json"

// NullableString represents a string field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=""
// - Field present with null: Set=true, Valid=false, Value=""
// - Field present with value: Set=true, Valid=true, Value="the value"
//
// Go's standard JSON unmarshaling treats "field absent" and
// "field: null" identically for pointer types; the finalize request
// needs the distinction so "notes": null clears a note while an absent
// field leaves it alone.
type NullableString struct {
	Value string
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableString.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true // Field was present in JSON

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableString.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// ToPtr converts NullableString to *string. Returns nil if Valid is
// false, otherwise a pointer to Value.
func (ns NullableString) ToPtr() *string {
	if !ns.Valid {
		return nil
	}
	return &ns.Value
}
