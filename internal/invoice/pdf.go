package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/jyelen1110/alfies-server/internal/models"
	qrcode "github.com/skip2/go-qrcode"
)

// RenderPDF produces an A4 invoice document for a raised invoice. The QR
// code in the header encodes the order number for quick lookup from a
// printed copy.
func RenderPDF(inv *models.Invoice) ([]byte, error) {
	if inv.Order == nil {
		return nil, fmt.Errorf("invoice %s has no order loaded", inv.InvoiceNumber)
	}
	order := inv.Order

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(120, 10, "INVOICE")

	qrPng, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("order_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("order_qr", 170, 12, 25, 25, false, opts, 0, "")

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice no: %s", inv.InvoiceNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Order no: %s", order.OrderNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format("02 Jan 2006")))
	if order.Customer != nil {
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Billed to: %s", order.Customer.BusinessName))
	}
	pdf.Ln(12)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Tax %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Net", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(80, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, trimFloat(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, trimFloat(item.TaxRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.Quantity*item.UnitPrice), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	writeTotal := func(label string, value float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 11)
		}
		pdf.CellFormat(135, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", inv.Subtotal, false)
	writeTotal("Tax", inv.Tax, false)
	writeTotal("Total", inv.Total, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// trimFloat formats a float without trailing zeros (3, not 3.00)
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s[len(s)-3:] == ".00" {
		return s[:len(s)-3]
	}
	return s
}
