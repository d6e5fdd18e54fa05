package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"growth-dashboard/internal/manager"

	"github.com/jung-kurt/gofpdf"
)

type Exporter struct{ bm *manager.BoardManager }

func NewExporter(bm *manager.BoardManager) *Exporter { return &Exporter{bm: bm} }

// Export renders the current board state in the given format. It is a
// point-in-time report, not a saved copy of the board.
func (e *Exporter) Export(format string) ([]byte, error) {
	weeks := e.bm.Weeks()
	progress := e.bm.Progress()

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(weeks, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"week", "id", "description", "completed"})
		for _, week := range weeks {
			for _, task := range week.Tasks {
				_ = w.Write([]string{
					week.Title,
					strconv.Itoa(task.ID),
					task.Description,
					strconv.FormatBool(task.Completed),
				})
			}
		}
		w.Flush()
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Growth Plan Progress Report")
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 8, fmt.Sprintf("%d of %d tasks completed", progress.Completed, progress.Total))
		pdf.Ln(10)
		for _, week := range weeks {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(40, 8, week.Title)
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 10)
			if len(week.Tasks) == 0 {
				pdf.MultiCell(0, 6, "(no tasks)", "0", "L", false)
				continue
			}
			for _, task := range week.Tasks {
				mark := "[ ]"
				if task.Completed {
					mark = "[x]"
				}
				line := fmt.Sprintf("%s #%d %s", mark, task.ID, task.Description)
				pdf.MultiCell(0, 6, line, "0", "L", false)
			}
			pdf.Ln(2)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

// ContentType returns the MIME type for a format accepted by Export.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json"
	}
}
