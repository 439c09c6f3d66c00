package extract_test

import (
	"testing"

	"github.com/quorumlabs/rollcall/internal/extract"
)

func TestIntroductionSource_SelfIntroductions(t *testing.T) {
	t.Parallel()

	src := extract.NewIntroductionSource()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"my name is", "Good afternoon. My name is Jane Doe and I live in Las Cruces.", "Jane Doe"},
		{"i'm", "Thank you, Chair. I'm Carlos Rivera, a resident of the district.", "Carlos Rivera"},
		{"i am", "I am Sarah Johnson, speaking for myself today.", "Sarah Johnson"},
		{"this is", "For the record, this is Miguel Torres.", "Miguel Torres"},
		{"greeting", "Good morning, my name is Emily Carter.", "Emily Carter"},
		{"testifying", "Robert Hale testifying in opposition to the bill.", "Robert Hale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cands := src.Extract("d", tt.text)
			if len(cands) == 0 {
				t.Fatal("no candidates")
			}
			found := false
			for _, c := range cands {
				if c.Text == tt.want {
					found = true
					if c.Role != extract.RolePublic {
						t.Errorf("Role = %q, want %q", c.Role, extract.RolePublic)
					}
				}
			}
			if !found {
				t.Errorf("candidates = %v, want one with text %q", candidateTexts(cands), tt.want)
			}
		})
	}
}

func TestIntroductionSource_AffiliationCapture(t *testing.T) {
	t.Parallel()

	src := extract.NewIntroductionSource()

	tests := []struct {
		name     string
		text     string
		wantName string
		wantOrg  string
	}{
		{
			"representing",
			"Jane Doe representing the Cattle Growers Association, here in support.",
			"Jane Doe",
			"Cattle Growers Association",
		},
		{
			"on behalf of",
			"Tom Reed on behalf of the Municipal League.",
			"Tom Reed",
			"Municipal League",
		},
		{
			"from",
			"Ana Silva from the Department of Health, available for questions.",
			"Ana Silva",
			"Department of Health",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cands := src.Extract("d", tt.text)
			found := false
			for _, c := range cands {
				if c.Text != tt.wantName {
					continue
				}
				found = true
				if c.Affiliation != tt.wantOrg {
					t.Errorf("Affiliation = %q, want %q", c.Affiliation, tt.wantOrg)
				}
				if c.Role != extract.RoleLobbyist {
					t.Errorf("Role = %q, want %q", c.Role, extract.RoleLobbyist)
				}
			}
			if !found {
				t.Errorf("candidates = %v, want one with text %q", candidateTexts(cands), tt.wantName)
			}
		})
	}
}

func TestIntroductionSource_NoMatch(t *testing.T) {
	t.Parallel()

	src := extract.NewIntroductionSource()
	if cands := src.Extract("d", "The bill passed on a voice vote."); len(cands) != 0 {
		t.Errorf("candidates = %v, want none", candidateTexts(cands))
	}
}

func TestIntroductionSource_LowercaseNameNotCaptured(t *testing.T) {
	t.Parallel()

	// No anchor token here, so proper casing is required: a lowercase phrase
	// after "my name is" is ASR noise, not a capture.
	src := extract.NewIntroductionSource()
	if cands := src.Extract("d", "my name is unclear on the recording"); len(cands) != 0 {
		t.Errorf("candidates = %v, want none", candidateTexts(cands))
	}
}
