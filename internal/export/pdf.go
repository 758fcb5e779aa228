// Package export renders a single todo list as a printable PDF.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Makepad-fr/tada-lists/internal/model"
	"github.com/Makepad-fr/tada-lists/internal/todo"
)

// WritePDF writes l to w, incomplete todos first.
func WritePDF(w io.Writer, l model.List) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(l.Name, true)
	pdf.SetCreator("tada", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(l.Name))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, fmt.Sprintf("%d of %d remaining", todo.UncheckedCount(l), todo.TodosCount(l)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	if len(l.Todos) == 0 {
		pdf.Cell(0, 8, "No todos.")
	}
	for _, e := range todo.SortTodos(l.Todos) {
		box := "[ ]"
		pdf.SetTextColor(0, 0, 0)
		if e.Item.Completed {
			box = "[x]"
			pdf.SetTextColor(140, 140, 140)
		}
		pdf.MultiCell(0, 8, tr(box+"  "+e.Item.Name), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
