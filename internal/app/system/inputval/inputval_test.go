package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"user123@example.co.uk", true},
		{"a@b.co", true},
		{"user@localhost", true}, // RFC 5322 allows single-label domains

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - malformed dots
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},

		// Invalid emails - display name format (should be rejected)
		{"User Name <user@example.com>", false},

		// Invalid emails - whitespace inside
		{"user @example.com", false},
		{"user@ example.com", false},
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

func TestCheckStruct(t *testing.T) {
	type form struct {
		Title string `validate:"required,min=3"`
		Max   int    `validate:"gte=1,lte=100"`
	}

	if err := CheckStruct(form{Title: "Essay", Max: 10}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := CheckStruct(form{Title: "", Max: 10}); err == nil {
		t.Error("expected missing title to be rejected")
	}
	if err := CheckStruct(form{Title: "Essay", Max: 0}); err == nil {
		t.Error("expected out-of-range max to be rejected")
	}
}

func TestCheckStruct_BareEmail(t *testing.T) {
	type form struct {
		Email string `validate:"required,bareemail"`
	}

	if err := CheckStruct(form{Email: "user@example.com"}); err != nil {
		t.Errorf("bare address rejected: %v", err)
	}
	if err := CheckStruct(form{Email: "User Name <user@example.com>"}); err == nil {
		t.Error("expected display-name form to be rejected")
	}
}

func TestFirstField(t *testing.T) {
	type inner struct {
		Points int `validate:"gte=1"`
	}
	type form struct {
		Title string  `validate:"required"`
		Rows  []inner `validate:"min=1,dive"`
	}

	if got := FirstField(nil); got != "" {
		t.Errorf("FirstField(nil) = %q, want empty", got)
	}
	if got := FirstField(CheckStruct(form{Rows: []inner{{Points: 1}}})); got != "Title" {
		t.Errorf("FirstField = %q, want Title", got)
	}
	if got := FirstField(CheckStruct(form{Title: "x"})); got != "Rows" {
		t.Errorf("FirstField = %q, want Rows", got)
	}
	if got := FirstField(CheckStruct(form{Title: "x", Rows: []inner{{Points: 0}}})); got != "Rows[0].Points" {
		t.Errorf("FirstField = %q, want Rows[0].Points", got)
	}
}
