package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	mutedColor   = &props.Color{Red: 80, Green: 80, Blue: 80}
	sectionColor = &props.Color{Red: 240, Green: 240, Blue: 240}
)

// GeneratePDF renders the printable quote with maroto/v2 and returns the
// raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addLeadBlock(m, data)
	addTableHeader(m)

	section := ""
	for _, r := range data.Rows {
		if r.Section != section {
			section = r.Section
			addSectionRow(m, section)
		}
		addTableRow(m, r)
	}

	addSummary(m, data)
	addNotes(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, business contact line, date and reference number.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	contact := fmt.Sprintf("%s · %s · %s", data.Business.City, data.Business.Phone, data.Business.Email)
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(contact, props.Text{Size: 9, Align: align.Left, Color: mutedColor}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{Size: 9, Align: align.Right, Color: mutedColor}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Reference: %s", data.ReferenceNumber), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			),
		),
	)

	if data.Business.Tagline != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(data.Business.Tagline, props.Text{Size: 8, Style: fontstyle.Italic, Color: mutedColor}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addLeadBlock prints the customer contact details as label/value pairs.
func addLeadBlock(m core.Maroto, data ExportData) {
	zip := data.Lead.PostalCode
	if data.LocalArea {
		zip += LocalZIPMarker
	}
	pairs := [][2]string{
		{"Name", data.Lead.Name},
		{"Email", data.Lead.Email},
		{"Phone", data.Lead.Phone},
		{"Preferred Date", data.Lead.PreferredDate},
		{"ZIP", zip},
	}

	label := props.Text{Size: 9, Style: fontstyle.Bold}
	value := props.Text{Size: 9}
	for _, p := range pairs {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(p[0], label)),
				col.New(9).Add(text.New(p[1], value)),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the line items.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Category", headerTextLeft)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Amount", headerTextRight)).WithStyle(&headerCell),
		),
	)
}

func addSectionRow(m core.Maroto, section string) {
	cell := &props.Cell{BackgroundColor: sectionColor}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(section, props.Text{Size: 8, Style: fontstyle.Bold}),
			).WithStyle(cell),
		),
	)
}

// addTableRow adds a single priced line.
func addTableRow(m core.Maroto, r ExportRow) {
	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(r.Index, base)),
			col.New(3).Add(text.New(r.Description, left)),
			col.New(5).Add(text.New(r.Item, left)),
			col.New(3).Add(text.New(FormatUSD(r.Amount), right)),
		),
	)
}

// addSummary adds the subtotals, tax and total, with the total in words.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: sectionColor}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	b := data.Breakdown
	lines := [][2]string{
		{"Parts", FormatUSD(b.Parts)},
		{"Extras", FormatUSD(b.Extras)},
		{"Labor", FormatUSD(b.Labor)},
		{"Subtotal", FormatUSD(b.Subtotal)},
		{fmt.Sprintf("Sales Tax (%s)", b.TaxRate.Percent()), FormatUSD(b.Tax)},
		{"Total", FormatUSD(b.Total)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(l[0], labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(l[1], valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Amount in words: "+AmountToWords(b.Total), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Top:   2,
				}),
			),
		),
	)
}

func addNotes(m core.Maroto, data ExportData) {
	if data.Lead.Notes == "" {
		return
	}
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("Notes", props.Text{Size: 9, Style: fontstyle.Bold}))),
	)
	// Roughly 110 characters fit on a line at this size.
	height := 5 * float64(1+len([]rune(data.Lead.Notes))/110)
	m.AddRows(
		row.New(height).Add(col.New(12).Add(text.New(data.Lead.Notes, props.Text{Size: 8}))),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Estimate generated on %s. Prices subject to parts availability.", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
