// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"encoding/json"
	"testing"
)

func TestNewVariable(t *testing.T) {
	v := NewVariable(12.5)
	if !v.IsSet() {
		t.Fatal("expected variable to be set")
	}
	if v.Value() != 12.5 {
		t.Errorf("expected value to be 12.5, got %f", v.Value())
	}
	if v.String() != "12.5" {
		t.Errorf("expected string to be %q, got %q", "12.5", v.String())
	}
}

func TestVariable_Reset(t *testing.T) {
	v := NewVariable("Oslo")
	v.Reset()
	if v.IsSet() {
		t.Error("expected variable to be unset after reset")
	}
	if v.Value() != "" {
		t.Errorf("expected zero value after reset, got %q", v.Value())
	}
	if v.String() != "n/a" {
		t.Errorf("expected placeholder string, got %q", v.String())
	}
}

func TestVariable_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Temp  VarFloat64 `json:"temp"`
		Name  VarString  `json:"name"`
		Descs VarStrings `json:"descs"`
	}
	t.Run("present fields are set", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"temp":5,"name":"Oslo","descs":["Light snow"]}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %s", err)
		}
		if !p.Temp.IsSet() || p.Temp.Value() != 5 {
			t.Errorf("expected temp to be set to 5, got %s", p.Temp)
		}
		if !p.Name.IsSet() || p.Name.Value() != "Oslo" {
			t.Errorf("expected name to be set to Oslo, got %s", p.Name)
		}
		if !p.Descs.IsSet() || len(p.Descs.Value()) != 1 {
			t.Errorf("expected one description, got %s", p.Descs)
		}
	})
	t.Run("missing and null fields stay unset", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"temp":null}`), &p); err != nil {
			t.Fatalf("failed to unmarshal: %s", err)
		}
		if p.Temp.IsSet() {
			t.Error("expected null temp to be unset")
		}
		if p.Name.IsSet() {
			t.Error("expected missing name to be unset")
		}
	})
	t.Run("type mismatch fails", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"temp":"warm"}`), &p); err == nil {
			t.Error("expected unmarshal to fail")
		}
	})
}

func TestVariable_MarshalJSON(t *testing.T) {
	type payload struct {
		Set   VarFloat64 `json:"set"`
		Unset VarFloat64 `json:"unset"`
	}
	data, err := json.Marshal(payload{Set: NewVariable(1.5)})
	if err != nil {
		t.Fatalf("failed to marshal: %s", err)
	}
	want := `{"set":1.5,"unset":null}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}
