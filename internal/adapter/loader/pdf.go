package loader

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"greenlens/internal/domain"
)

// loadPDF extracts plain text from each page of a PDF file.
func loadPDF(path string) ([]domain.Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages := make([]domain.Page, 0, totalPages)

	for num := 1; num <= totalPages; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", num, err)
		}
		pages = append(pages, domain.Page{Number: num, Text: text})
	}

	return pages, nil
}
