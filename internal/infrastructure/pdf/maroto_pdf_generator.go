// Package pdf rend les documents imprimables de l'application avec Maroto v2 :
// fiches de stock et factures de vente.
//
// Layout A4 commun :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER : entreprise (nom, adresse, contact) │ titre + date  │
//	│  ───────────────────────────────────────────────────────────│
//	│  BLOC CONTEXTE : produit ou client                           │
//	│  TABLE : lignes du document                                  │
//	│  TOTAUX / SOLDE FINAL                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	salepkg "github.com/megamind/stockmanager-api/internal/application/sale"
	stockapp "github.com/megamind/stockmanager-api/internal/application/stock"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
	"github.com/megamind/stockmanager-api/pkg/config"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorGreen   = &props.Color{Red: 20, Green: 110, Blue: 40}
)

var _ stockapp.CardPDFGenerator = (*MarotoPDFGenerator)(nil)
var _ salepkg.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator rend fiches de stock et factures avec Maroto v2.
type MarotoPDFGenerator struct {
	company config.CompanyConfig
}

// NewMarotoPDFGenerator construit le générateur avec l'identité de
// l'entreprise pour les en-têtes.
func NewMarotoPDFGenerator(company config.CompanyConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateStockCardPDF rend la fiche de stock d'un produit : une ligne par
// mouvement avec soldes avant/après, solde final en pied.
func (g *MarotoPDFGenerator) GenerateStockCardPDF(_ context.Context, product *entity.Product, lines []stock.CardLine) ([]byte, error) {
	m := maroto.New(g.pageConfig("Fiche de stock"))

	m.AddRows(g.headerRow("FICHE DE STOCK"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productBlock(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(cardTableHeader())
	for _, l := range lines {
		m.AddRows(cardTableRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	final := 0
	if len(lines) > 0 {
		final = lines[len(lines)-1].StockAfter
	}
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("Solde final :", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(strconv.Itoa(final), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: colorPrimary,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate stock card: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateInvoicePDF rend la facture d'une vente.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, sale *entity.Sale, customer *entity.Customer, products map[string]*entity.Product) ([]byte, error) {
	m := maroto.New(g.pageConfig("Facture"))

	m.AddRows(g.headerRow("FACTURE"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(invoiceContextRow(sale, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(invoiceTableHeader())
	for _, it := range sale.Items {
		name := it.ProductID
		if p, ok := products[it.ProductID]; ok {
			name = p.Name
		}
		m.AddRows(invoiceTableRow(it, name))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("TOTAL :", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(sale.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Color: colorPrimary,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) pageConfig(title string) *marotoentity.Config {
	return marotocfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company.Name, true).
		Build()
}

// headerRow : entreprise à gauche, titre du document à droite.
func (g *MarotoPDFGenerator) headerRow(title string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tél : %s   |   %s",
				nonEmpty(g.company.Address, "—"),
				nonEmpty(g.company.Phone, "—"),
				nonEmpty(g.company.Email, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 4,
			}),
		),
	)
}

// productBlock : identité du produit de la fiche.
func productBlock(product *entity.Product) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PRODUIT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(product.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Code-barres : %s   |   Stock courant : %d",
				nonEmpty(product.Barcode, "—"), product.QuantityInStock,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func cardTableHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Type", 3, align.Left),
		h("Qté", 1, align.Right),
		h("Avant", 1, align.Right),
		h("Après", 1, align.Right),
		h("Document", 2, align.Left),
		h("Notes", 2, align.Left),
	)
}

func cardTableRow(l stock.CardLine) core.Row {
	qtyColor := colorGreen
	if l.Quantity < 0 {
		qtyColor = colorRed
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(l.Date.Format("02/01/2006 15:04"), props.Text{Size: 7.5, Top: 1})),
		col.New(3).Add(text.New(string(l.Type), props.Text{Size: 7.5, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%+d", l.Quantity), props.Text{
			Size: 7.5, Align: align.Right, Top: 1, Color: qtyColor,
		})),
		col.New(1).Add(text.New(strconv.Itoa(l.StockBefore), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
		col.New(1).Add(text.New(strconv.Itoa(l.StockAfter), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(nonEmpty(l.SourceDocument, "—"), props.Text{Size: 7.5, Top: 1})),
		col.New(2).Add(text.New(nonEmpty(l.Notes, ""), props.Text{Size: 7.5, Top: 1, Color: colorGray})),
	)
}

// invoiceContextRow : numéro, date et client.
func invoiceContextRow(sale *entity.Sale, customer *entity.Customer) core.Row {
	clientName := "Client de passage"
	if customer != nil {
		clientName = customer.Name
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(clientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(5).Add(
			text.New("N° "+sale.ID, props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New("Date : "+sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func invoiceTableHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Produit", 5, align.Left),
		h("P.U.", 2, align.Right),
		h("Remise", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func invoiceTableRow(it entity.SaleItem, productName string) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(productName, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(it.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(it.Discount.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(it.LineTotal.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
