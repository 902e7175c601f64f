// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package validation

import (
	"strings"
	"testing"
)

type itemRequest struct {
	Status string  `json:"status" validate:"required,oneof=watched watchlist"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
	Note   string  `json:"note" validate:"max=10"`
}

type nestedConfig struct {
	Inner struct {
		Port int `koanf:"port" validate:"min=1,max=65535"`
	} `koanf:"server"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      itemRequest
		wantErr    bool
		wantFields []string
		wantMsg    string
	}{
		{
			name:  "valid watched item",
			input: itemRequest{Status: "watched", Rating: 4.5},
		},
		{
			name:       "missing status",
			input:      itemRequest{Rating: 3},
			wantErr:    true,
			wantFields: []string{"status"},
			wantMsg:    "status is required",
		},
		{
			name:       "unknown status",
			input:      itemRequest{Status: "dropped"},
			wantErr:    true,
			wantFields: []string{"status"},
			wantMsg:    "status must be one of: watched watchlist",
		},
		{
			name:       "rating above five",
			input:      itemRequest{Status: "watched", Rating: 6},
			wantErr:    true,
			wantFields: []string{"rating"},
			wantMsg:    "rating must be less than or equal to 5",
		},
		{
			name:       "string too long and negative rating",
			input:      itemRequest{Status: "watchlist", Rating: -1, Note: "far too long a note"},
			wantErr:    true,
			wantFields: []string{"rating", "note"},
			wantMsg:    "note must be at most 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if !tt.wantErr {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if len(verr.Errors()) != len(tt.wantFields) {
				t.Fatalf("got %d errors, want %d: %v", len(verr.Errors()), len(tt.wantFields), verr)
			}
			for i, field := range tt.wantFields {
				if got := verr.Errors()[i].Field(); got != field {
					t.Errorf("error %d field = %q, want %q", i, got, field)
				}
			}
			if !strings.Contains(verr.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_NestedKoanfNames(t *testing.T) {
	var cfg nestedConfig
	verr := ValidateStruct(&cfg)
	if verr == nil {
		t.Fatal("expected error for zero port")
	}
	if got := verr.Errors()[0].Field(); got != "server.port" {
		t.Errorf("field = %q, want server.port", got)
	}
	if got := verr.Errors()[0].Tag(); got != "min" {
		t.Errorf("tag = %q, want min", got)
	}
}
