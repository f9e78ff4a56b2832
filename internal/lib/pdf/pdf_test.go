package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(sections int) Report {
	r := Report{
		Institution: "CTP Mercedes Norte",
		Folio:       12,
		Title:       "Solicitud de Permiso",
		Meta: []Field{
			{Label: "Estado", Value: "Pendiente"},
			{Label: "Creado", Value: "2026-03-02 08:15"},
			{Label: "Cédula", Value: "112340567"},
		},
		Footer:    "Generado por el sistema de permisos",
		CreatedAt: time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC),
	}
	for i := 0; i < sections; i++ {
		r.Sections = append(r.Sections, Section{
			Title: "Detalle",
			Fields: []Field{
				{Label: "Motivo", Value: "Atención de asuntos personales"},
				{Label: "Observaciones", Value: strings.Repeat("texto largo con tildes áéíóú ñ ", 20)},
				{Label: "Vacío", Value: ""},
			},
			Text: "Párrafo final",
		})
	}
	return r
}

func TestRender(t *testing.T) {
	out, err := Render(sampleReport(5))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestRenderBreaksPages(t *testing.T) {
	short, err := Render(sampleReport(1))
	require.NoError(t, err)

	long, err := Render(sampleReport(30))
	require.NoError(t, err)

	assert.Greater(t, len(long), len(short))
	assert.True(t, bytes.Contains(long, []byte("/Type /Page")))
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render(sampleReport(2))
	require.NoError(t, err)
	b, err := Render(sampleReport(2))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "-", orDash("  "))
}

func TestRenderAccentedValue(t *testing.T) {
	out, err := Render(Report{
		Institution: "CTP Mercedes Norte",
		Folio:       3,
		Title:       "Omisión de Marca",
		Sections: []Section{{
			Title:  "Resolución",
			Fields: []Field{{Label: "Estado", Value: "Pendiente de resolución"}},
			Text:   "Atención de asuntos personales",
		}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func newTestRenderer() *renderer {
	p := fpdf.New("P", "pt", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "", 10)
	return &renderer{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func TestWrapKeepsLinesWithinWidth(t *testing.T) {
	rd := newTestRenderer()
	text := strings.TrimSpace(strings.Repeat("Atención de asuntos personales ", 12))

	lines := rd.wrap(text, 200)
	require.Greater(t, len(lines), 1)

	limit := 200 - 2*rd.pdf.GetCellMargin()
	for _, line := range lines {
		assert.LessOrEqual(t, rd.width(line), limit, line)
	}
	assert.Equal(t, text, strings.Join(lines, " "))
	assert.Contains(t, lines[0], "Atención")
}

func TestWrapSplitsLongWords(t *testing.T) {
	rd := newTestRenderer()
	word := strings.Repeat("ñ", 80)

	lines := rd.wrap(word, 60)
	require.Greater(t, len(lines), 1)
	assert.Equal(t, word, strings.Join(lines, ""))
}

func TestWrapKeepsParagraphs(t *testing.T) {
	rd := newTestRenderer()
	assert.Equal(t, []string{"uno", "", "dos"}, rd.wrap("uno\n\ndos\n", 400))
}
