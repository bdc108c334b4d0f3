package models

import "testing"

func TestCompanyInfoName(t *testing.T) {
	cases := []struct {
		name string
		info CompanyInfo
		want string
	}{
		{"long name preferred", CompanyInfo{"longName": "Apple Inc.", "shortName": "Apple"}, "Apple Inc."},
		{"short name fallback", CompanyInfo{"shortName": "Apple"}, "Apple"},
		{"plain name fallback", CompanyInfo{"name": "Apple"}, "Apple"},
		{"non-string ignored", CompanyInfo{"longName": 42, "shortName": "Apple"}, "Apple"},
		{"empty metadata", CompanyInfo{}, ""},
		{"nil metadata", nil, ""},
	}
	for _, c := range cases {
		if got := c.info.Name(); got != c.want {
			t.Errorf("%s: Name() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestNeutralSentiment(t *testing.T) {
	n := NeutralSentiment()
	if n.Compound != 0 || n.Confidence != 0 || n.VaderScore != 0 || n.BayesScore != 0 {
		t.Errorf("neutral result must be all-zero scores, got %+v", n)
	}
	if n.Label != Neutral {
		t.Errorf("label = %s, want %s", n.Label, Neutral)
	}
	if len(n.Keywords) != 0 {
		t.Errorf("expected no keywords, got %v", n.Keywords)
	}
}
