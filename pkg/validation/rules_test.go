package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_MinInt(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"below", 4095, true},
		{"equal", 4096, false},
		{"above", 65536, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigValidator("allocator").MinInt("arena_slab_size", tt.value, 4096).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "allocator.arena_slab_size") {
				t.Errorf("error %q does not name the field", err)
			}
		})
	}
}

func TestConfigValidator_Custom(t *testing.T) {
	sentinel := errors.New("not a power of two")

	err := NewConfigValidator("builder").
		Custom("default_capacity", func() error { return sentinel }).
		Validate()
	if !errors.Is(err, sentinel) {
		t.Errorf("Validate() = %v, want it to wrap the custom error", err)
	}

	err = NewConfigValidator("builder").
		Custom("default_capacity", func() error { return nil }).
		Validate()
	if err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidator_When(t *testing.T) {
	ran := false
	NewConfigValidator("allocator").When(false, func(*ConfigValidator) { ran = true })
	if ran {
		t.Error("rules ran for a false condition")
	}

	err := NewConfigValidator("allocator").
		When(true, func(v *ConfigValidator) { v.MinInt("max_bytes", 8, 16) }).
		Validate()
	if err == nil {
		t.Error("expected an error from the conditional rule")
	}
}

func TestConfigValidator_AllErrorsKept(t *testing.T) {
	first := errors.New("first")
	cv := NewConfigValidator("allocator").
		Custom("kind", func() error { return first }).
		MinInt("arena_slab_size", 1, 4096).
		MinInt("max_bytes", 1, 16)

	if got := len(cv.Errors()); got != 3 {
		t.Fatalf("Errors() has %d entries, want 3", got)
	}

	err := cv.Validate()
	if !errors.Is(err, first) {
		t.Errorf("joined error lost %v", first)
	}
	for _, field := range []string{"kind", "arena_slab_size", "max_bytes"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("joined error %q is missing %s", err, field)
		}
	}
}

type limitsConfig struct {
	MaxBytes int
}

func (c *limitsConfig) Validate() error {
	return NewConfigValidator("limits").MinInt("max_bytes", c.MaxBytes, 0).Validate()
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(&limitsConfig{MaxBytes: 10}); err != nil {
		t.Errorf("valid config: %v", err)
	}
	if err := ValidateConfig(&limitsConfig{MaxBytes: -1}); err == nil {
		t.Error("expected an error for a negative limit")
	}
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected an error for a nil config")
	}
}

func TestDefaultOrInt(t *testing.T) {
	tests := []struct {
		value, def, want int
	}{
		{0, 16, 16},
		{-5, 16, 16},
		{64, 16, 64},
	}

	for _, tt := range tests {
		if got := DefaultOrInt(tt.value, tt.def); got != tt.want {
			t.Errorf("DefaultOrInt(%d, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
		}
	}
}
