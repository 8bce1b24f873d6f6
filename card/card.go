// Package card prints a recipe as a single-column A4 PDF card.
package card

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/pevans/recipenote/recipe"
)

const (
	bodyFont    = "Helvetica"
	bodySize    = 11.0
	headingSize = 13.0
	titleSize   = 18.0
	lineHeight  = 5.5
)

// Write renders the recipe card to w.
func Write(w io.Writer, r *recipe.Result) error {
	pdf := render(r)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// WriteFile renders the recipe card to path, replacing any existing file.
func WriteFile(path string, r *recipe.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	defer f.Close()

	if err := Write(f, r); err != nil {
		return err
	}
	return f.Close()
}

func render(r *recipe.Result) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("recipenote", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented ingredients survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(bodyFont, "B", titleSize)
	pdf.MultiCell(0, 9, tr(r.Title), "", "L", false)

	if r.SourceURL != "" {
		pdf.SetFont(bodyFont, "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.WriteLinkString(lineHeight, tr(r.SourceURL), r.SourceURL)
		pdf.Ln(lineHeight)
		pdf.SetTextColor(0, 0, 0)
	}

	heading(pdf, "Ingredients")
	if len(r.Ingredients) == 0 {
		italic(pdf, tr("No ingredients found"))
	}
	for _, item := range r.Ingredients {
		pdf.MultiCell(0, lineHeight, tr("- "+item), "", "L", false)
	}

	heading(pdf, "Instructions")
	if len(r.Instructions) == 0 {
		italic(pdf, tr("No instructions found"))
	}
	for i, step := range r.Instructions {
		pdf.MultiCell(0, lineHeight, tr(strconv.Itoa(i+1)+". "+step), "", "L", false)
		pdf.Ln(1)
	}

	return pdf
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont(bodyFont, "B", headingSize)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.SetFont(bodyFont, "", bodySize)
}

func italic(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(bodyFont, "I", bodySize)
	pdf.MultiCell(0, lineHeight, text, "", "L", false)
	pdf.SetFont(bodyFont, "", bodySize)
}
