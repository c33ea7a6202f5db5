package middleware

import "testing"

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid uuid", "7f9c24e5-1f9a-4c58-9d3b-0a1b2c3d4e5f", "7f9c24e5-1f9a-4c58-9d3b-0a1b2c3d4e5f", false},
		{"uppercase normalized", "7F9C24E5-1F9A-4C58-9D3B-0A1B2C3D4E5F", "7f9c24e5-1f9a-4c58-9d3b-0a1b2c3d4e5f", false},
		{"trims whitespace", "  7f9c24e5-1f9a-4c58-9d3b-0a1b2c3d4e5f  ", "7f9c24e5-1f9a-4c58-9d3b-0a1b2c3d4e5f", false},
		{"empty", "", "", true},
		{"not a uuid", "abc123", "", true},
		{"sql injection", "x'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID(tt.input)
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

func TestValidateFeedQuery(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		orderBy    string
		order      string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", "", "", 10, 0, false},
		{"explicit", "20", "40", "likes_count", "asc", 20, 40, false},
		{"limit capped", "500", "", "", "", 50, 0, false},
		{"zero limit", "0", "", "", "", 0, 0, true},
		{"negative offset", "", "-1", "", "", 0, 0, true},
		{"bad orderBy", "", "", "caption", "", 0, 0, true},
		{"bad order", "", "", "", "sideways", 0, 0, true},
		{"non-numeric limit", "ten", "", "", "", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, errMsg := ValidateFeedQuery(tt.limit, tt.offset, tt.orderBy, tt.order)
			if tt.wantErr {
				if errMsg == "" {
					t.Error("expected error, got none")
				}
				return
			}
			if errMsg != "" {
				t.Fatalf("unexpected error: %s", errMsg)
			}
			if q.Limit != tt.wantLimit || q.Offset != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want limit=%d offset=%d",
					q.Limit, q.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestValidateFeedQuery_OrderDefaults(t *testing.T) {
	q, errMsg := ValidateFeedQuery("", "", "", "")
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if q.OrderBy != "created_at" || q.Order != "desc" {
		t.Errorf("defaults = %s/%s, want created_at/desc", q.OrderBy, q.Order)
	}
}
