// Package report renders the document as a paginated PDF: a title page
// followed by one page group per theme with cascading clusters and
// entities.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"synthdeck/internal/model"
)

// DefaultTimeout bounds how long a rendering run may take before the
// operation is reported as failed.
const DefaultTimeout = 30 * time.Second

// Filename returns the dated report filename.
func Filename(t time.Time) string {
	return fmt.Sprintf("research-synthesis-report-%s.pdf", t.Format("2006-01-02"))
}

// Generate renders the report and writes it to w, abandoning the attempt
// when ctx expires. The in-flight rendering goroutine is not preempted; its
// result is simply discarded.
func Generate(ctx context.Context, themes []model.Theme, w io.Writer, log zerolog.Logger) error {
	if len(themes) == 0 {
		return errors.New("no themes to report")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report generation timed out: %w", err)
	}

	type rendered struct {
		data []byte
		err  error
	}
	done := make(chan rendered, 1)
	started := time.Now()

	go func() {
		data, err := Build(themes, time.Now())
		done <- rendered{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Dur("after", time.Since(started)).Msg("report generation abandoned")
		return fmt.Errorf("report generation timed out: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		if _, err := w.Write(r.data); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Debug().Int("bytes", len(r.data)).Dur("took", time.Since(started)).Msg("report rendered")
		return nil
	}
}

// Build renders the full report synchronously and returns the PDF bytes.
func Build(themes []model.Theme, exportDate time.Time) ([]byte, error) {
	themes = sanitizeThemes(themes)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Research Synthesis Report", false)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	writeTitlePage(pdf, themes, exportDate)
	for i := range themes {
		writeTheme(pdf, &themes[i])
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTitlePage(pdf *fpdf.Fpdf, themes []model.Theme, exportDate time.Time) {
	doc := model.Document{Themes: themes}
	nThemes, nClusters, nEntities := doc.Totals()

	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 14, "Research Synthesis Report", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, exportDate.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	summary := fmt.Sprintf("%d themes  |  %d clusters  |  %d findings", nThemes, nClusters, nEntities)
	pdf.CellFormat(0, 8, summary, "", 1, "C", false, 0, "")
}

func writeTheme(pdf *fpdf.Fpdf, theme *model.Theme) {
	r, g, b := colorRGB(theme.Color)

	pdf.AddPage()
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, theme.Title, "", "L", true)

	pdf.Ln(2)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 10)
	if theme.Description != "" {
		pdf.MultiCell(0, 5, theme.Description, "", "L", false)
		pdf.Ln(1)
	}
	if len(theme.Sources) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.MultiCell(0, 5, "Sources: "+joinComma(theme.Sources), "", "L", false)
	}
	pdf.Ln(3)

	for i := range theme.Clusters {
		writeCluster(pdf, r, g, b, &theme.Clusters[i])
	}
}

func writeCluster(pdf *fpdf.Fpdf, r, g, b int, cluster *model.Cluster) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(r, g, b)
	header := fmt.Sprintf("%s (%d findings)", cluster.Name, cluster.LiveEntityCount())
	pdf.MultiCell(0, 7, header, "", "L", false)

	if cluster.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.MultiCell(0, 5, cluster.Summary, "", "L", false)
	}
	pdf.Ln(2)

	for i := range cluster.Entities {
		writeEntity(pdf, &cluster.Entities[i])
	}
	pdf.Ln(2)
}

func writeEntity(pdf *fpdf.Fpdf, entity *model.Entity) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(140, 140, 140)
	pdf.CellFormat(0, 5, "["+entity.Type.String()+"]", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(0, 5, "- "+truncate(entity.Statement, maxStatementLength), "", "L", false)

	if pains := capStrings(entity.Pains, maxPainGainItems, maxPainGainLength); len(pains) > 0 {
		writeList(pdf, "Pains", pains)
	}
	if gains := capStrings(entity.Gains, maxPainGainItems, maxPainGainLength); len(gains) > 0 {
		writeList(pdf, "Gains", gains)
	}

	if entity.VerbatimQuote != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 5, `"`+truncate(entity.VerbatimQuote, maxQuoteLength)+`"`, "", "L", false)
	}

	if provenance := provenanceLine(entity); provenance != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.MultiCell(0, 4, provenance, "", "L", false)
	}
	pdf.Ln(2)
}

func writeList(pdf *fpdf.Fpdf, label string, items []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 4, label+":", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.MultiCell(0, 4, "  - "+item, "", "L", false)
	}
}

func provenanceLine(e *model.Entity) string {
	parts := make([]string, 0, 4)
	if e.Source != "" {
		parts = append(parts, e.Source)
	}
	if e.ParticipantID != "" {
		parts = append(parts, e.ParticipantID)
	}
	if e.Date != "" {
		parts = append(parts, e.Date)
	}
	if e.Timestamp != "" {
		parts = append(parts, "@ "+e.Timestamp)
	}
	return joinComma(parts)
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}

// colorRGB maps a theme color key to its display RGB.
func colorRGB(c model.ThemeColor) (int, int, int) {
	switch c {
	case model.ColorGreen:
		return 34, 197, 94
	case model.ColorAmber:
		return 245, 158, 11
	case model.ColorPurple:
		return 168, 85, 247
	case model.ColorRose:
		return 244, 63, 94
	case model.ColorCyan:
		return 6, 182, 212
	default:
		return 59, 130, 246 // blue
	}
}
