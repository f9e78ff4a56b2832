// Package pdf lays out the printable request reports: a branded top bar, a
// title, a key/value card, titled sections and a footer.
package pdf

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Page geometry in points (A4 portrait).
const (
	PageWidth    = 595.0
	PageHeight   = 842.0
	MarginX      = 54.0
	MarginTop    = 72.0
	MarginBottom = 54.0

	barHeight   = 30.0
	lineHeight  = 14.0
	labelWidth  = 150.0
	sectionGap  = 16.0
	footerSpace = 24.0
)

type rgb struct{ r, g, b int }

var (
	colorPrimary = rgb{0x97, 0x09, 0x09}
	colorText    = rgb{0x1f, 0x1f, 0x1f}
	colorMuted   = rgb{0x8c, 0x8c, 0x8c}
	colorCard    = rgb{0xf6, 0xf6, 0xf6}
	colorRule    = rgb{0xde, 0xe2, 0xe6}
	colorWhite   = rgb{0xff, 0xff, 0xff}
)

// Field is one label/value row.
type Field struct {
	Label string
	Value string
}

// Section is a titled group of fields. A section with Text renders it as a
// paragraph after the fields.
type Section struct {
	Title  string
	Fields []Field
	Text   string
}

// Report is everything printed on one document.
type Report struct {
	Institution string
	Folio       int64
	Title       string
	Meta        []Field
	Sections    []Section
	Footer      string
	CreatedAt   time.Time
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	rpt Report
}

// Render draws r and returns the PDF bytes.
func Render(r Report) ([]byte, error) {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetMargins(MarginX, MarginTop, MarginX)
	p.SetAutoPageBreak(false, MarginBottom)
	p.SetTitle(r.Title+" #"+strconv.FormatInt(r.Folio, 10), true)
	p.SetAuthor(r.Institution, true)
	p.SetCreator("MIPP+", true)
	p.SetCatalogSort(true)
	if !r.CreatedAt.IsZero() {
		p.SetCreationDate(r.CreatedAt)
		p.SetModificationDate(r.CreatedAt)
	}

	rd := &renderer{
		pdf: p,
		tr:  p.UnicodeTranslatorFromDescriptor(""),
		rpt: r,
	}

	p.SetHeaderFunc(rd.header)
	p.SetFooterFunc(rd.footer)

	p.AddPage()
	rd.title()
	rd.metaCard()
	for _, s := range r.Sections {
		rd.section(s)
	}

	if err := p.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to lay out pdf")
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write pdf")
	}
	return buf.Bytes(), nil
}

func (rd *renderer) text(c rgb) { rd.pdf.SetTextColor(c.r, c.g, c.b) }
func (rd *renderer) fill(c rgb) { rd.pdf.SetFillColor(c.r, c.g, c.b) }
func (rd *renderer) draw(c rgb) { rd.pdf.SetDrawColor(c.r, c.g, c.b) }

func (rd *renderer) contentWidth() float64 {
	return PageWidth - 2*MarginX
}

func (rd *renderer) header() {
	p := rd.pdf

	rd.fill(colorPrimary)
	p.Rect(0, 0, PageWidth, barHeight, "F")

	p.SetFont("Helvetica", "B", 11)
	rd.text(colorWhite)
	p.SetXY(MarginX, 0)
	p.CellFormat(rd.contentWidth()/2, barHeight, rd.tr(rd.rpt.Institution), "", 0, "LM", false, 0, "")
	p.CellFormat(rd.contentWidth()/2, barHeight, rd.tr("Folio #"+strconv.FormatInt(rd.rpt.Folio, 10)), "", 0, "RM", false, 0, "")

	p.SetXY(MarginX, MarginTop)
}

func (rd *renderer) footer() {
	p := rd.pdf

	p.SetFont("Helvetica", "", 8)
	rd.text(colorMuted)
	p.SetXY(MarginX, PageHeight-MarginBottom+6)
	p.CellFormat(rd.contentWidth()*0.8, 10, rd.tr(rd.rpt.Footer), "", 0, "L", false, 0, "")
	p.CellFormat(rd.contentWidth()*0.2, 10, strconv.Itoa(p.PageNo()), "", 0, "R", false, 0, "")
}

// ensure starts a new page when less than h points remain above the footer.
func (rd *renderer) ensure(h float64) {
	if rd.pdf.GetY()+h > PageHeight-MarginBottom-footerSpace {
		rd.pdf.AddPage()
	}
}

func (rd *renderer) title() {
	p := rd.pdf

	p.SetFont("Helvetica", "B", 18)
	rd.text(colorText)
	p.SetX(MarginX)
	p.CellFormat(rd.contentWidth(), 24, rd.tr(rd.rpt.Title), "", 1, "L", false, 0, "")

	y := p.GetY() + 4
	rd.draw(colorPrimary)
	p.SetLineWidth(1.5)
	p.Line(MarginX, y, PageWidth-MarginX, y)
	p.SetY(y + sectionGap)
}

func (rd *renderer) metaCard() {
	if len(rd.rpt.Meta) == 0 {
		return
	}
	p := rd.pdf

	rows := (len(rd.rpt.Meta) + 1) / 2
	h := float64(rows)*lineHeight + 16
	rd.ensure(h)

	top := p.GetY()
	rd.fill(colorCard)
	p.Rect(MarginX, top, rd.contentWidth(), h, "F")

	col := rd.contentWidth() / 2
	for i, f := range rd.rpt.Meta {
		x := MarginX + 10 + float64(i%2)*col
		y := top + 8 + float64(i/2)*lineHeight

		p.SetXY(x, y)
		p.SetFont("Helvetica", "B", 9)
		rd.text(colorMuted)
		p.CellFormat(70, lineHeight, rd.tr(f.Label), "", 0, "L", false, 0, "")
		p.SetFont("Helvetica", "", 9)
		rd.text(colorText)
		p.CellFormat(col-80, lineHeight, rd.tr(truncate(f.Value, 40)), "", 0, "L", false, 0, "")
	}

	p.SetY(top + h + sectionGap)
}

func (rd *renderer) section(s Section) {
	p := rd.pdf

	rd.ensure(2*lineHeight + 8)

	p.SetX(MarginX)
	p.SetFont("Helvetica", "B", 12)
	rd.text(colorPrimary)
	p.CellFormat(rd.contentWidth(), 18, rd.tr(s.Title), "", 1, "L", false, 0, "")

	y := p.GetY() + 2
	rd.draw(colorRule)
	p.SetLineWidth(0.75)
	p.Line(MarginX, y, PageWidth-MarginX, y)
	p.SetY(y + 6)

	valueWidth := rd.contentWidth() - labelWidth
	for _, f := range s.Fields {
		p.SetFont("Helvetica", "", 10)
		lines := rd.wrap(orDash(f.Value), valueWidth)
		rd.ensure(float64(len(lines)) * lineHeight)

		top := p.GetY()
		p.SetXY(MarginX, top)
		p.SetFont("Helvetica", "B", 10)
		rd.text(colorMuted)
		p.CellFormat(labelWidth, lineHeight, rd.tr(f.Label), "", 0, "L", false, 0, "")

		p.SetFont("Helvetica", "", 10)
		rd.text(colorText)
		for i, line := range lines {
			p.SetXY(MarginX+labelWidth, top+float64(i)*lineHeight)
			p.CellFormat(valueWidth, lineHeight, rd.tr(line), "", 0, "L", false, 0, "")
		}
		p.SetY(top + float64(max(len(lines), 1))*lineHeight)
	}

	if strings.TrimSpace(s.Text) != "" {
		p.SetFont("Helvetica", "", 10)
		rd.text(colorText)
		for _, line := range rd.wrap(s.Text, rd.contentWidth()) {
			rd.ensure(lineHeight)
			p.SetX(MarginX)
			p.CellFormat(rd.contentWidth(), lineHeight, rd.tr(line), "", 1, "L", false, 0, "")
		}
	}

	p.SetY(p.GetY() + sectionGap)
}

// width measures s as it will be drawn, after translation to the core font
// encoding.
func (rd *renderer) width(s string) float64 {
	return rd.pdf.GetStringWidth(rd.tr(s))
}

// wrap breaks UTF-8 text into lines no wider than w in the current font.
// Paragraph breaks are kept and words longer than a line are split.
func (rd *renderer) wrap(text string, w float64) []string {
	limit := w - 2*rd.pdf.GetCellMargin()

	var lines []string
	for _, paragraph := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		var line string
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if rd.width(candidate) <= limit {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for rd.width(word) > limit {
				head := rd.fit(word, limit)
				lines = append(lines, head)
				word = strings.TrimPrefix(word, head)
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// fit returns the longest rune prefix of word that fits in limit, at least
// one rune.
func (rd *renderer) fit(word string, limit float64) string {
	runes := []rune(word)
	n := 1
	for n < len(runes) && rd.width(string(runes[:n+1])) <= limit {
		n++
	}
	return string(runes[:n])
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
