package utils

import "testing"

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Acme Signs  ", "Acme Signs"},
		{"escapes html", `<script>alert("x")</script>`, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;"},
		{"strips control characters", "line1\x00line2", "line1line2"},
		{"plain text untouched", "Main Street Pylon", "Main Street Pylon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeInput(tt.input); got != tt.want {
				t.Fatalf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercases", "Sales@Example.COM", "sales@example.com", false},
		{"trims", "  ops@example.com ", "ops@example.com", false},
		{"rejects missing domain", "ops@", "", true},
		{"rejects plain text", "not-an-email", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeEmail(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeEmail(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeEmail(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty is allowed", "", "", false},
		{"strips formatting", "(961) 1-234-567", "+9611234567", false},
		{"keeps leading plus", "+961 1 234 567", "+9611234567", false},
		{"rejects too short", "+12", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePhone(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizePhone(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizePhone(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateDesignFileType(t *testing.T) {
	allowed := []string{"proof.jpg", "proof.JPEG", "proof.png", "proof.gif", "proof.svg", "proof.pdf"}
	for _, name := range allowed {
		if err := ValidateDesignFileType(name); err != nil {
			t.Fatalf("ValidateDesignFileType(%q) unexpected error: %v", name, err)
		}
	}

	rejected := []string{"proof.exe", "proof.psd", "proof", "proof.dwg"}
	for _, name := range rejected {
		if err := ValidateDesignFileType(name); err == nil {
			t.Fatalf("ValidateDesignFileType(%q) expected error", name)
		}
	}
}
