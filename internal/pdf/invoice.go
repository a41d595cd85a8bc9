package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
)

const fontName = "Helvetica"

// InvoiceData carries the fields printed on an invoice, in print order.
type InvoiceData struct {
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	ClientName    string
	ClientEmail   string
	Total         float64
	Status        string
}

// Field is one labelled line of the document.
type Field struct {
	Label string
	Value string
}

// Fields returns the labelled values in the order they are printed.
func (d InvoiceData) Fields() []Field {
	return []Field{
		{"Invoice Number", d.InvoiceNumber},
		{"Issue Date", d.IssueDate.Format("January 2, 2006")},
		{"Due Date", d.DueDate.Format("January 2, 2006")},
		{"Client", d.ClientName},
		{"Email", d.ClientEmail},
		{"Total", FormatMoney(d.Total)},
		{"Status", d.Status},
	}
}

// FileName is the download name of the rendered invoice.
func (d InvoiceData) FileName() string {
	return d.InvoiceNumber + ".pdf"
}

// FormatMoney renders an amount as dollars with thousands separators.
func FormatMoney(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// Renderer writes invoice documents.
type Renderer struct {
	compress bool
}

func NewRenderer() *Renderer {
	return &Renderer{compress: true}
}

// WithoutCompression disables stream compression so rendered text stays
// searchable in the raw bytes.
func (r *Renderer) WithoutCompression() *Renderer {
	r.compress = false
	return r
}

// RenderInvoice writes a single A4 page to w.
func (r *Renderer) RenderInvoice(w io.Writer, data InvoiceData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", data.InvoiceNumber), false)
	pdf.SetAuthor("Studio", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 20)
	pdf.AddPage()

	// core fonts are cp1252; values arrive as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "L", false, 0, "")
	hr(pdf)
	pdf.Ln(4)

	for _, f := range data.Fields() {
		kvLine(pdf, tr(f.Label), tr(f.Value))
	}

	pdf.Ln(4)
	hr(pdf)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return nil
}

func kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(45, 8, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, val, "", 1, "L", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
