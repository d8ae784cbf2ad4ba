package core

import "testing"

type testForm struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
}

func TestValidateStruct(t *testing.T) {
	if err := ValidateStruct(testForm{Name: "A", Phone: "+256700000001"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	err := ValidateStruct(testForm{Phone: "12ab"})
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T; want *ValidationError", err)
	}

	fields := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields[f.Field] = f.Error
	}
	// field names come from the json tags, not the Go names
	if _, ok := fields["name"]; !ok {
		t.Errorf("missing error for name; got %v", fields)
	}
	if msg, ok := fields["phone"]; !ok || msg != "enter a valid phone number" {
		t.Errorf("phone error = %q", msg)
	}
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"256700000001", true},
		{"+256700000001", true},
		{"0700-123-456", false},
		{"12345", false},
		{"letters", false},
	}
	for _, tt := range tests {
		err := Validate.Var(tt.phone, "phone")
		if (err == nil) != tt.valid {
			t.Errorf("phone %q: valid=%v, want %v", tt.phone, err == nil, tt.valid)
		}
	}
}
