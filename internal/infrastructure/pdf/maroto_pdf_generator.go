// Package pdf implementa la generación del comprobante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + CUIT  │  N° Comprobante + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CUIT/DNI + contacto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal neto / Impuestos / TOTAL                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda "no válido como factura"                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/frankopalmi/gridmanager-api/internal/application/sales"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ sales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateSaleReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateSaleReceipt(
	_ context.Context,
	sale *entity.Sale,
	tenant *entity.Tenant,
	customer *entity.Customer,
	lines []sales.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Venta", true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, tenant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + CUIT (izq) y número + fecha (der).
func headerRow(sale *entity.Sale, tenant *entity.Tenant) core.Row {
	fecha := sale.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+tenant.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{Size: 10, Top: 6}),
			text.New(fmt.Sprintf("CUIT/DNI: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: encabezado de la tabla de líneas.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}

	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", header)),
		col.New(5).Add(text.New("Descripción", header)),
		col.New(2).Add(text.New("P. Unit", headerRight)),
		col.New(2).Add(text.New("IVA %", headerRight)),
		col.New(2).Add(text.New("Subtotal", headerRight)),
	)
}

// tableDetailRows: una fila por línea de venta.
func tableDetailRows(lines []sales.ReceiptLine) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}

	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), cell)),
			col.New(5).Add(text.New(l.Description, cell)),
			col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), cellRight)),
			col.New(2).Add(text.New(l.TaxRate.StringFixed(1), cellRight)),
			col.New(2).Add(text.New(l.Subtotal.StringFixed(2), cellRight)),
		))
	}
	return rows
}

// totalsRow: subtotal, impuestos y total.
func totalsRow(sale *entity.Sale) core.Row {
	label := props.Text{Size: 9, Align: align.Right, Top: 1}
	value := props.Text{Size: 9, Align: align.Right, Top: 1, Style: fontstyle.Bold}

	return row.New(22).Add(
		col.New(8),
		col.New(2).Add(
			text.New("Subtotal:", label),
			text.New("Impuestos:", props.Text{Size: 9, Align: align.Right, Top: 7}),
			text.New("TOTAL:", props.Text{Size: 11, Align: align.Right, Top: 14, Style: fontstyle.Bold, Color: colorPrimary}),
		),
		col.New(2).Add(
			text.New(sale.Subtotal.StringFixed(2)+" "+sale.Currency, value),
			text.New(sale.TaxTotal.StringFixed(2)+" "+sale.Currency, props.Text{Size: 9, Align: align.Right, Top: 7, Style: fontstyle.Bold}),
			text.New(sale.Total.StringFixed(2)+" "+sale.Currency, props.Text{Size: 11, Align: align.Right, Top: 14, Style: fontstyle.Bold, Color: colorPrimary}),
		),
	)
}

// footerRow: leyenda legal.
func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Documento no válido como factura.", props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 2,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
