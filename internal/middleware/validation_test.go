package middleware

import "testing"

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Extra bus to Hubli", "Extra bus to Hubli", false},
		{"trims whitespace", "  Evening bus  ", "Evening bus", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", string(make([]byte, 121)), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateTitle(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Hubli", "Hubli", false},
		{"with space", "Navanagar Campus", "Navanagar Campus", false},
		{"with hyphen", "Hubli-Dharwad", "Hubli-Dharwad", false},
		{"preserves case", "HUBLI", "HUBLI", false},
		{"empty", "", "", true},
		{"digits", "Zone9", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"too long", string(make([]byte, 65)), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateRegion(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "0d4e9a4c-1b9f-4b61-b5b7-3f8f24a7c8d1", false},
		{"trims whitespace", " 0d4e9a4c-1b9f-4b61-b5b7-3f8f24a7c8d1 ", false},
		{"empty", "", true},
		{"not a uuid", "bus-42", true},
		{"truncated", "0d4e9a4c-1b9f", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateUUID(tt.input, "requestId")
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		want    int
		wantErr bool
	}{
		{"zero means default", 0, 0, false},
		{"minimum", 15, 15, false},
		{"typical", 240, 240, false},
		{"maximum", 10080, 10080, false},
		{"below minimum", 5, 0, true},
		{"above maximum", 20000, 0, true},
		{"negative", -30, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateDuration(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateReason(t *testing.T) {
	if got, errMsg := ValidateReason("  duplicate request  "); errMsg != "" || got != "duplicate request" {
		t.Errorf("got %q (err %q), want trimmed reason", got, errMsg)
	}
	// Empty is allowed; the service substitutes the default text.
	if got, errMsg := ValidateReason(""); errMsg != "" || got != "" {
		t.Errorf("empty reason should pass through, got %q (err %q)", got, errMsg)
	}
	if _, errMsg := ValidateReason(string(make([]byte, 501))); errMsg == "" {
		t.Error("expected error for oversized reason")
	}
}
