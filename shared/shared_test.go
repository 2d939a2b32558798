package shared_test

import (
	"testing"

	"safar/shared"
	"safar/shared/constant"
	"safar/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "invalid string returns nil",
			input:    "maybe",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{"exact division", 20, 10, 2},
		{"rounds up", 21, 10, 3},
		{"zero total yields one page", 0, 10, 1},
		{"zero limit yields one page", 20, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{"no parts", "booking:get", nil, "booking:get"},
		{"single part", "booking:get", []string{"booking-1"}, "booking:get:booking-1"},
		{"multiple parts", "package:get", []string{"pkg-1", "admin"}, "package:get:pkg-1:admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.BuildCacheKey(tt.prefix, tt.parts...); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("booking-1", "id", "bookings")

	if len(group.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected dto.Filter, got %T", group.Filters[0])
	}

	if filter.Field != "id" || filter.Table != "bookings" || filter.Value != "booking-1" {
		t.Errorf("unexpected filter: %+v", filter)
	}

	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected eq operator, got %v", filter.Operator)
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name  string `db:"name"`
		Price float64 `db:"price"`
		Notes string `db:"notes"`
	}

	fields := shared.TransformFields(update{Name: "Umrah Essentials", Price: 3200}, "admin-1")

	if fields["name"] != "Umrah Essentials" {
		t.Errorf("expected name to be set, got %v", fields["name"])
	}

	if fields["price"] != 3200.0 {
		t.Errorf("expected price to be set, got %v", fields["price"])
	}

	if _, ok := fields["notes"]; ok {
		t.Error("expected zero-valued notes to be skipped")
	}

	if fields[constant.FieldModifiedBy] != "admin-1" {
		t.Errorf("expected modified_by to be admin-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
