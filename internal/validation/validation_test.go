package validation

import (
	"errors"
	"strings"
	"testing"

	"pokemedquest/internal/models"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid username", username: "alice", wantErr: false},
		{name: "valid with symbols", username: "dr.smith_01-a", wantErr: false},
		{name: "minimum length", username: "abc", wantErr: false},
		{name: "maximum length", username: strings.Repeat("a", 32), wantErr: false},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 33), wantErr: true},
		{name: "spaces", username: "al ice", wantErr: true},
		{name: "empty string", username: "", wantErr: true},
		{name: "blank", username: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "secret", wantErr: false},
		{name: "minimum length", password: "1234", wantErr: false},
		{name: "too short", password: "123", wantErr: true},
		{name: "empty", password: "", wantErr: true},
		{name: "72 bytes", password: strings.Repeat("a", 72), wantErr: false},
		{name: "73 bytes", password: strings.Repeat("a", 73), wantErr: true},
		{name: "multibyte over 72 bytes", password: strings.Repeat("é", 37), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	tests := []struct {
		role    string
		want    models.Role
		wantErr bool
	}{
		{role: "child", want: models.RoleChild},
		{role: "Admin", want: models.RoleAdmin},
		{role: "parent", wantErr: true},
		{role: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, err := ValidateRole(tt.role)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRole(%q) error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateRole(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestValidateAvatarName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Aria"},
		{name: "single character", input: "A"},
		{name: "thirty characters", input: strings.Repeat("x", 30)},
		{name: "thirty one characters", input: strings.Repeat("x", 31), wantErr: true},
		{name: "blank", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvatarName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAvatarName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	if err := ValidateColor("Purple"); err != nil {
		t.Errorf("ValidateColor(Purple) unexpected error: %v", err)
	}
	err := ValidateColor("orange")
	var vErr ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "color" {
		t.Errorf("ValidateColor(orange) = %v, want color ValidationError", err)
	}
}

func TestValidateAccessory(t *testing.T) {
	tests := []struct {
		name      string
		accessory string
		wantErr   bool
	}{
		{name: "blank means none", accessory: ""},
		{name: "none", accessory: "none"},
		{name: "simple", accessory: "hat"},
		{name: "mixed case normalized", accessory: " Top-Hat_2 "},
		{name: "parent directory", accessory: "../../../../secret", wantErr: true},
		{name: "slash", accessory: "hat/evil", wantErr: true},
		{name: "backslash", accessory: `hat\evil`, wantErr: true},
		{name: "dot", accessory: "hat.png", wantErr: true},
		{name: "space inside", accessory: "top hat", wantErr: true},
		{name: "too long", accessory: strings.Repeat("x", 33), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccessory(tt.accessory)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAccessory(%q) error = %v, wantErr %v", tt.accessory, err, tt.wantErr)
			}
			var vErr ValidationError
			if tt.wantErr && (!errors.As(err, &vErr) || vErr.Field != "accessory") {
				t.Errorf("ValidateAccessory(%q) = %v, want accessory ValidationError", tt.accessory, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "username", Message: "username is required"}
	if got := err.Error(); got != "username: username is required" {
		t.Errorf("Error() = %q", got)
	}
}
