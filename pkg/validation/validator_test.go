package validation

import (
	"strings"
	"testing"
)

type sampleInner struct {
	Kind string `yaml:"kind" validate:"oneof=heap pool arena"`
	Size int    `yaml:"size" validate:"gte=16"`
	Max  int    `yaml:"max" validate:"lte=100"`
}

type sampleConfig struct {
	Name  string      `yaml:"name" validate:"required"`
	Inner sampleInner `yaml:"inner"`
	Plain int         `validate:"min=1"`
}

// TestStruct tests struct tag validation and error formatting
func TestStruct(t *testing.T) {
	valid := func() sampleConfig {
		return sampleConfig{
			Name:  "ok",
			Inner: sampleInner{Kind: "pool", Size: 64, Max: 10},
			Plain: 1,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*sampleConfig)
		expectError bool
		errorField  string
	}{
		{
			name:        "Valid config",
			mutate:      func(*sampleConfig) {},
			expectError: false,
		},
		{
			name:        "Missing name - invalid",
			mutate:      func(c *sampleConfig) { c.Name = "" },
			expectError: true,
			errorField:  "name: field is required",
		},
		{
			name:        "Unknown kind - invalid",
			mutate:      func(c *sampleConfig) { c.Inner.Kind = "slab" },
			expectError: true,
			errorField:  `inner.kind: "slab" must be one of [heap pool arena]`,
		},
		{
			name:        "Size below minimum - invalid",
			mutate:      func(c *sampleConfig) { c.Inner.Size = 8 },
			expectError: true,
			errorField:  "inner.size: must be at least 16",
		},
		{
			name:        "Max exceeded - invalid",
			mutate:      func(c *sampleConfig) { c.Inner.Max = 101 },
			expectError: true,
			errorField:  "inner.max: must not exceed 100",
		},
		{
			name:        "Field without yaml tag uses Go name",
			mutate:      func(c *sampleConfig) { c.Plain = 0 },
			expectError: true,
			errorField:  "Plain: must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := Struct(&cfg)
			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
			if tt.expectError && err != nil && !containsField(err.Error(), tt.errorField) {
				t.Errorf("Expected error containing %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func containsField(errMsg, field string) bool {
	return strings.Contains(errMsg, field)
}
