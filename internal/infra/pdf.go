package infra

// Thermal-receipt-style ticket PDFs. 74×105mm, close to 80mm paper.
// Layout: business header, voucher number, item table, IGV breakdown,
// payment lines and the SUNAT QR payload as footer text.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

// GenerateTicketPDF renders the receipt for a settled Venta and returns the
// absolute path of the written file.
func GenerateTicketPDF(venta *model.Venta, negocio, ruc, qrData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s_%08d.pdf", venta.Serie, venta.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "RUC "+ruc, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, venta.NumeroComprobante(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.FechaEmision.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, det := range venta.Detalles {
		nombre := det.Descripcion
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "x"+det.Cantidad.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+det.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Op. Gravada:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "S/ "+venta.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, fmt.Sprintf("IGV (%d%%):", model.IGVPorcentaje), "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "S/ "+venta.IGV.StringFixed(2), "", 1, "R", false, 0, "")
	if !venta.Descuento.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "-S/ "+venta.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "S/ "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pago := range venta.Pagos {
		pdf.CellFormat(col1+col2, 4, "Pago ("+pago.Metodo+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "S/ "+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		if pago.Vuelto != nil && !pago.Vuelto.IsZero() {
			pdf.CellFormat(col1+col2, 4, "Vuelto:", "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 4, "S/ "+pago.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	if qrData != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "", 5)
		pdf.MultiCell(contentW, 3, qrData, "", "C", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su preferencia!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
