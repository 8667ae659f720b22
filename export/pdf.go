// Package export renders a saved or in-progress order into printable
// documents: the customer-facing order form as PDF and a spreadsheet
// variant for the workshop.
package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"curtainpro-backend/draft"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	labelColW    = 55.0
	valueColW    = contentWidth - labelColW
	rowHeight    = 7.0
	thumbSize    = 63.5 // fixed thumbnail edge, 2.5 inches
	qrEdge       = 24.0
)

// RenderPDF produces the order form: customer block, one section per window
// (layer pairs grouped, shared lining printed once), an attribute table per
// layer listing only the applicable derived fields, image thumbnails, and a
// totals section computed with the same rule the draft uses on screen.
// orderRef is encoded as a QR code in the header; pass the empty string for
// an unsaved draft preview.
func RenderPDF(customer draft.CustomerRef, entries []draft.Entry, orderRef string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	renderHeader(pdf, customer, orderRef)

	for _, group := range groupEntries(entries) {
		renderGroup(pdf, group)
	}

	renderTotals(pdf, draft.SumEntries(entries))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render order form: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *fpdf.Fpdf, customer draft.CustomerRef, orderRef string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-qrEdge, 10, "Order Form", "", 1, "L", false, 0, "")

	if orderRef != "" {
		if png, err := qrcode.Encode(orderRef, qrcode.Medium, 256); err == nil {
			name := "order-qr"
			pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
			pdf.ImageOptions(name, pageWidth-marginRight-qrEdge, marginTop, qrEdge, qrEdge, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	lines := []string{
		"Name: " + customer.Name,
		"Phone: " + customer.Phone,
		"Address: " + customer.Address,
	}
	if customer.Showroom != "" {
		lines = append(lines, "Showroom: "+customer.Showroom)
	}
	lines = append(lines, "Date: "+time.Now().Format("02-01-2006 15:04"))
	for _, line := range lines {
		pdf.CellFormat(contentWidth-qrEdge, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// entryGroup is one printable section: a single window or a layer pair.
type entryGroup struct {
	title   string
	lining  draft.Lining
	members []draft.Entry
}

// groupEntries folds layer-pair siblings into one section, preserving entry
// order. Pairing comes from the shared pair id, never from name parsing; the
// group title is the first member's display name minus its layer suffix.
func groupEntries(entries []draft.Entry) []entryGroup {
	var groups []entryGroup
	seen := make(map[uuid.UUID]int)

	for _, e := range entries {
		if e.PairID != uuid.Nil {
			if gi, ok := seen[e.PairID]; ok {
				groups[gi].members = append(groups[gi].members, e)
				continue
			}
			seen[e.PairID] = len(groups)
			groups = append(groups, entryGroup{
				title:   fmt.Sprintf("%s (double layer)", trimLayerSuffix(e.WindowName, e.Layer)),
				lining:  e.Lining,
				members: []draft.Entry{e},
			})
			continue
		}
		groups = append(groups, entryGroup{
			title:   e.WindowName,
			lining:  e.Lining,
			members: []draft.Entry{e},
		})
	}
	return groups
}

func trimLayerSuffix(name string, layer int) string {
	suffix := fmt.Sprintf(" - Layer %d", layer)
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		return name[:len(name)-len(suffix)]
	}
	return name
}

func renderGroup(pdf *fpdf.Fpdf, group entryGroup) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 8, group.title, "", 1, "L", false, 0, "")

	if group.lining != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 5, "Lining: "+string(group.lining), "", 1, "L", false, 0, "")
	}

	for _, e := range group.members {
		if len(group.members) > 1 {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetX(marginLeft)
			pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Layer %d", e.Layer), "", 1, "L", false, 0, "")
		}
		renderAttributeTable(pdf, e)
		renderImages(pdf, e.Images)
	}
	pdf.Ln(4)
}

// renderAttributeTable prints the per-window table. Derived fields that do
// not apply to the stitch are omitted rather than printed as blanks.
func renderAttributeTable(pdf *fpdf.Fpdf, e draft.Entry) {
	rows := [][2]string{
		{"Stitch Type", string(e.Stitch)},
		{"Width (inches)", formatNumber(e.WidthIn)},
		{"Height (inches)", formatNumber(e.HeightIn)},
		{"Quantity", formatNumber(e.Quantity)},
	}
	if e.TrackFeet != nil {
		rows = append(rows, [2]string{"Track (ft)", formatNumber(*e.TrackFeet)})
	}
	if e.SQFT != nil {
		rows = append(rows, [2]string{"SQFT", formatNumber(*e.SQFT)})
	}
	if e.Panels != nil {
		rows = append(rows, [2]string{"Panels", fmt.Sprintf("%d", *e.Panels)})
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetFillColor(245, 245, 245)
	for _, row := range rows {
		pdf.SetX(marginLeft)
		pdf.CellFormat(labelColW, rowHeight, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueColW, rowHeight, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func renderImages(pdf *fpdf.Fpdf, images [][]byte) {
	for i, img := range images {
		imgType := detectImageType(img)
		if imgType == "" {
			continue
		}
		name := fmt.Sprintf("entry-img-%p-%d", &images[i], i)
		opts := fpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		if pdf.Err() {
			// A corrupt attachment must not sink the whole form.
			pdf.ClearError()
			continue
		}
		pdf.SetX(marginLeft)
		pdf.ImageOptions(name, marginLeft, pdf.GetY(), thumbSize, thumbSize, true, opts, 0, "")
		pdf.Ln(2)
	}
}

func renderTotals(pdf *fpdf.Fpdf, totals draft.Totals) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 8, "Totals", "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Total Quantity", formatNumber(totals.Quantity)},
		{"Total Track (ft)", formatNumber(totals.TrackFeet)},
		{"Total SQFT", formatNumber(totals.SQFT)},
		{"Total Panels", fmt.Sprintf("%d", totals.Panels)},
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetFillColor(245, 245, 245)
	for _, row := range rows {
		pdf.SetX(marginLeft)
		pdf.CellFormat(labelColW, rowHeight, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueColW, rowHeight, row[1], "1", 1, "L", false, 0, "")
	}
}

// formatNumber trims trailing zeros so whole values print without decimals.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// detectImageType maps sniffed content types onto fpdf image type tags.
func detectImageType(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}
