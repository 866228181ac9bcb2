package validation

import (
	"errors"
	"testing"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Required("Name", "value")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_RangeInt(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		min       int
		max       int
		expectErr bool
	}{
		{"below range", 0, 1, 10, true},
		{"above range", 15, 1, 10, true},
		{"at min", 1, 1, 10, false},
		{"at max", 10, 1, 10, false},
		{"in range", 5, 1, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			cv.RangeInt("Value", tt.value, tt.min, tt.max)

			if tt.expectErr && !cv.HasErrors() {
				t.Error("Expected error")
			}
			if !tt.expectErr && cv.HasErrors() {
				t.Errorf("Unexpected error: %v", cv.Error())
			}
		})
	}
}

func TestConfigValidator_Positive(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Positive("Count", 0)

	if !cv.HasErrors() {
		t.Error("Expected error for zero value")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Positive("Count", -5)

	if !cv2.HasErrors() {
		t.Error("Expected error for negative value")
	}

	cv3 := NewConfigValidator("TestConfig")
	cv3.Positive("Count", 5)

	if cv3.HasErrors() {
		t.Error("Expected no error for positive value")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"debug", "info", "warn", "error"}

	cv := NewConfigValidator("TestConfig")
	cv.OneOf("LogLevel", "trace", allowed)

	if !cv.HasErrors() {
		t.Error("Expected error for value not in allowed list")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.OneOf("LogLevel", "info", allowed)

	if cv2.HasErrors() {
		t.Error("Expected no error for allowed value")
	}
}

func TestConfigValidator_Custom(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Custom("CustomField", func() error {
		return errors.New("custom validation failed")
	})

	if !cv.HasErrors() {
		t.Error("Expected error from custom validation")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Custom("CustomField", func() error {
		return nil
	})

	if cv2.HasErrors() {
		t.Error("Expected no error from passing custom validation")
	}
}

func TestConfigValidator_When(t *testing.T) {
	// Condition true - validation should run
	cv := NewConfigValidator("TestConfig")
	cv.When(true, func(v *ConfigValidator) {
		v.Positive("Count", -1)
	})

	if !cv.HasErrors() {
		t.Error("Expected error when condition is true")
	}

	// Condition false - validation should not run
	cv2 := NewConfigValidator("TestConfig")
	cv2.When(false, func(v *ConfigValidator) {
		v.Positive("Count", -1)
	})

	if cv2.HasErrors() {
		t.Error("Expected no error when condition is false")
	}
}

func TestConfigValidator_Chaining(t *testing.T) {
	cv := NewConfigValidator("SimilarityConfig")
	cv.RangeFloat("Threshold", 0.05, 0, 1).
		PositiveFloat("Alpha", 2).
		MinFloat("Shift", 3, 1).
		RangeInt("Workers", 4, 1, 256)

	if cv.HasErrors() {
		t.Errorf("Expected no errors for valid config, got: %v", cv.Error())
	}
}

func TestConfigValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		expectErr bool
	}{
		{"lower bound included", 0, false},
		{"inside", 0.5, false},
		{"upper bound excluded", 1, true},
		{"negative", -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			cv.RangeFloat("Threshold", tt.value, 0, 1)
			if cv.HasErrors() != tt.expectErr {
				t.Errorf("RangeFloat(%v) HasErrors = %v, want %v", tt.value, cv.HasErrors(), tt.expectErr)
			}
		})
	}
}

func TestConfigValidator_MultipleErrors(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Root", "").
		Positive("Workers", -1).
		PositiveFloat("Alpha", 0)

	if len(cv.errors) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(cv.errors))
	}

	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected error from Validate()")
	}
	if cv.Error() != cv.errors[0] {
		t.Errorf("Error() = %v, want the first error %v", cv.Error(), cv.errors[0])
	}
	for _, e := range cv.errors {
		if !errors.Is(err, e) {
			t.Errorf("Validate() should wrap %v", e)
		}
	}
}

func TestConfigValidator_Validate(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "")

	err := cv.Validate()
	if err == nil {
		t.Error("Expected error from Validate()")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Required("Name", "valid")

	err2 := cv2.Validate()
	if err2 != nil {
		t.Errorf("Expected no error from Validate(), got: %v", err2)
	}
}

func TestDefaultOrInt(t *testing.T) {
	if DefaultOrInt(0, 10) != 10 {
		t.Error("Expected default for zero")
	}
	if DefaultOrInt(-5, 10) != 10 {
		t.Error("Expected default for negative")
	}
	if DefaultOrInt(5, 10) != 5 {
		t.Error("Expected value for positive")
	}
}

// Example of a validatable config struct
type ExampleConfig struct {
	Root    string
	Workers int
	Alpha   float64
}

func (c *ExampleConfig) Validate() error {
	return NewConfigValidator("ExampleConfig").
		Required("Root", c.Root).
		RangeInt("Workers", c.Workers, 1, 256).
		PositiveFloat("Alpha", c.Alpha).
		Validate()
}

func TestValidateConfig(t *testing.T) {
	validConfig := &ExampleConfig{
		Root:    "flowcharts",
		Workers: 4,
		Alpha:   2,
	}

	if err := ValidateConfig(validConfig); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}

	invalidConfig := &ExampleConfig{}

	if err := ValidateConfig(invalidConfig); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	err := ValidateConfig(nil)
	if err == nil {
		t.Error("Expected error for nil config")
	}
}
