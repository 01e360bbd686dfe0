package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"greenlens/internal/domain"
)

// Generate builds an ESG assessment report for one company.
func Generate(company string, co2EmissionKg, renewableShare, esgScore float64) domain.Report {
	status := "Weak"
	switch {
	case esgScore >= 70:
		status = "Strong"
	case esgScore >= 40:
		status = "Moderate"
	}

	category := "Needs Improvement"
	if renewableShare > 50 && co2EmissionKg < 1000 {
		category = "Environmentally Sustainable"
	}

	return domain.Report{
		Company:     company,
		GeneratedAt: time.Now(),
		Summary: fmt.Sprintf("ESG performance for %s indicates a %s sustainability profile.",
			company, status),
		Details: domain.ReportDetails{
			CO2EmissionKg:  co2EmissionKg,
			RenewableShare: renewableShare,
			ESGScore:       esgScore,
			Status:         status,
			Category:       category,
		},
		Recommendations: []string{
			"Increase renewable energy adoption to reduce CO2 impact.",
			"Implement automated energy efficiency monitoring systems.",
			"Focus on transparent carbon disclosure following CSRD/ESRS guidelines.",
		},
	}
}

// Save writes a report copy under dir, creating it if needed.
func Save(r domain.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	name := strings.ReplaceAll(r.Company, " ", "_") + "_ESG_Report.json"
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
