package parser

import "testing"

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"simple", "John Doe", "John", "Doe"},
		{"single", "John", "John", ""},
		{"multiple parts", "Jean-Pierre De La Fontaine", "Jean-Pierre", "De La Fontaine"},
		{"parenthesized credential", "John Doe (PhD)", "John", "Doe"},
		{"comma suffix", "John Doe, MBA", "John", "Doe"},
		{"extra whitespace", "  John   Doe  ", "John", "Doe"},
		{"empty", "", "", ""},
		{"only parenthetical", "(PhD)", "", ""},
		{"credential and comma", "Jane Smith (MSc), CPA", "Jane", "Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
					tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		want     string
	}{
		{"english at", "Software Engineer at Google", "Google"},
		{"at sign", "Software Engineer @ Stripe", "Stripe"},
		{"french chez", "Ingenieur Logiciel chez Microsoft", "Microsoft"},
		{"italian presso", "Sviluppatore presso Ferrari", "Ferrari"},
		{"german bei", "Entwickler bei Siemens", "Siemens"},
		{"pipe separator", "Software Engineer | Amazon", "Amazon"},
		{"no company", "Software Engineer", ""},
		{"connector wins over separator", "Senior Software Engineer at Meta | Ex-Google", "Meta"},
		{"case insensitive", "software engineer AT Netflix", "Netflix"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCompany(tt.headline)
			if got != tt.want {
				t.Errorf("ExtractCompany(%q) = %q, want %q", tt.headline, got, tt.want)
			}
		})
	}
}
