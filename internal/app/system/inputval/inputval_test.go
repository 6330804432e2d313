package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"user@localhost", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"98765 43210", true},
		{"+91-98765-43210", true},
		{"987654321", false},
		{"1234567890123456", false},
		{"98765abcde", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhone(tt.phone); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestIsValidPAN(t *testing.T) {
	tests := []struct {
		pan  string
		want bool
	}{
		{"ABCDE1234F", true},
		{"abcde1234f", true},
		{"ABCD1234F", false},
		{"ABCDE12345", false},
		{"1BCDE1234F", false},
	}
	for _, tt := range tests {
		if got := IsValidPAN(tt.pan); got != tt.want {
			t.Errorf("IsValidPAN(%q) = %v, want %v", tt.pan, got, tt.want)
		}
	}
}

func TestIsValidIFSC(t *testing.T) {
	tests := []struct {
		ifsc string
		want bool
	}{
		{"HDFC0001234", true},
		{"sbin0ABC123", true},
		{"HDFC1001234", false},
		{"HDF00001234", false},
		{"HDFC000123", false},
	}
	for _, tt := range tests {
		if got := IsValidIFSC(tt.ifsc); got != tt.want {
			t.Errorf("IsValidIFSC(%q) = %v, want %v", tt.ifsc, got, tt.want)
		}
	}
}

func TestIsValidObjectID(t *testing.T) {
	if !IsValidObjectID("507f1f77bcf86cd799439011") {
		t.Error("expected valid ObjectID")
	}
	for _, s := range []string{"", "invalid-id", "507f1f77bcf86cd79943901"} {
		if IsValidObjectID(s) {
			t.Errorf("IsValidObjectID(%q) = true, want false", s)
		}
	}
}
