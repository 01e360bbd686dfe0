package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"greenlens/internal/domain"
)

func TestGenerateStatusBands(t *testing.T) {
	cases := []struct {
		score  float64
		status string
	}{
		{95, "Strong"},
		{70, "Strong"},
		{69.9, "Moderate"},
		{40, "Moderate"},
		{39.9, "Weak"},
		{0, "Weak"},
	}

	for _, c := range cases {
		r := Generate("Acme Energy", 500, 60, c.score)
		if r.Details.Status != c.status {
			t.Errorf("score %v: expected status %q, got %q", c.score, c.status, r.Details.Status)
		}
		if !strings.Contains(r.Summary, c.status) {
			t.Errorf("score %v: summary does not mention status %q", c.score, c.status)
		}
	}
}

func TestGenerateCategory(t *testing.T) {
	r := Generate("Acme Energy", 900, 60, 80)
	if r.Details.Category != "Environmentally Sustainable" {
		t.Errorf("expected sustainable category, got %q", r.Details.Category)
	}

	r = Generate("Acme Energy", 1200, 60, 80)
	if r.Details.Category != "Needs Improvement" {
		t.Errorf("high emissions should need improvement, got %q", r.Details.Category)
	}

	r = Generate("Acme Energy", 900, 30, 80)
	if r.Details.Category != "Needs Improvement" {
		t.Errorf("low renewable share should need improvement, got %q", r.Details.Category)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	r := Generate("Acme Energy", 500, 60, 80)
	if len(r.Recommendations) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(r.Recommendations))
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(Generate("Acme Energy Corp", 500, 60, 80), dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "Acme_Energy_Corp_ESG_Report.json") {
		t.Errorf("unexpected report file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var loaded domain.Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.Company != "Acme Energy Corp" {
		t.Errorf("expected company in saved report, got %q", loaded.Company)
	}
	if loaded.Details.ESGScore != 80 {
		t.Errorf("expected score 80, got %v", loaded.Details.ESGScore)
	}
}
