package models

import (
	"encoding/json"
	"testing"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Notes NullableString `json:"notes"`
	}

	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
		},
		{
			name:      "field null",
			json:      `{"notes": null}`,
			wantSet:   true,
			wantValid: false,
		},
		{
			name:      "field with value",
			json:      `{"notes": "rough day at work"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "rough day at work",
		},
		{
			name:      "field with empty string",
			json:      `{"notes": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.json, err)
			}
			if p.Notes.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", p.Notes.Set, tt.wantSet)
			}
			if p.Notes.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", p.Notes.Valid, tt.wantValid)
			}
			if p.Notes.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", p.Notes.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableString_ToPtr(t *testing.T) {
	null := NullableString{Set: true, Valid: false}
	if ptr := null.ToPtr(); ptr != nil {
		t.Errorf("ToPtr() on null = %v, want nil", *ptr)
	}

	set := NullableString{Set: true, Valid: true, Value: "walked the dog"}
	ptr := set.ToPtr()
	if ptr == nil {
		t.Fatal("ToPtr() on valid value = nil, want pointer")
	}
	if *ptr != "walked the dog" {
		t.Errorf("*ToPtr() = %q, want %q", *ptr, "walked the dog")
	}
}

func TestFinalizeEntryRequest_NotesTriState(t *testing.T) {
	var withNote FinalizeEntryRequest
	if err := json.Unmarshal([]byte(`{"selected_emoji":"😊","notes":"good run"}`), &withNote); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !withNote.Notes.Set || !withNote.Notes.Valid {
		t.Errorf("notes with value: Set=%v Valid=%v, want true/true", withNote.Notes.Set, withNote.Notes.Valid)
	}

	var clearing FinalizeEntryRequest
	if err := json.Unmarshal([]byte(`{"selected_emoji":"😊","notes":null}`), &clearing); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !clearing.Notes.Set || clearing.Notes.Valid {
		t.Errorf("notes null: Set=%v Valid=%v, want true/false", clearing.Notes.Set, clearing.Notes.Valid)
	}

	var absent FinalizeEntryRequest
	if err := json.Unmarshal([]byte(`{"selected_emoji":"😊"}`), &absent); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if absent.Notes.Set {
		t.Error("notes absent: Set = true, want false")
	}
}
