package cli

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/form"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func renderProducts(w io.Writer, products []domain.Product) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Price", "On hand"})
	for _, p := range products {
		t.AppendRow(table.Row{
			p.ID, p.Name, p.Category, formatPrice(p.Price), p.QuantityOnHand,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", "", "", "Total", len(products)})
	t.Render()
}

func renderProduct(w io.Writer, p domain.Product) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Category", p.Category},
		{"Price", formatPrice(p.Price)},
		{"Selling price", formatPrice(p.SellingPrice)},
		{"Discount", formatPrice(p.Discount)},
		{"Tags", strings.Join(p.Tags, ", ")},
		{"Use", p.Use},
		{"Minimum quantity", p.MinimumQuantity},
		{"Quantity on hand", p.QuantityOnHand},
		{"Reserved quantity", p.ReservedQuantity},
		{"Image URLs", strings.Join(p.ImageURLs, "\n")},
		{"Added by", p.AddedBy},
		{"Expires at", formatTime(p.ExpiresAt)},
		{"Created at", formatTime(p.CreatedAt)},
		{"Updated at", formatTime(p.UpdatedAt)},
	})
	t.Render()
}

func renderReviews(w io.Writer, reviews []domain.Review) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Rating", "Reviewer", "Comment"})
	for _, r := range reviews {
		t.AppendRow(table.Row{r.ID, r.Rating, r.ReviewerName, r.Comment})
	}
	t.Render()
}

func renderFields[T any](w io.Writer, d *form.Draft[T]) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Label", "Kind", "Default"})
	for _, f := range d.Fields() {
		t.AppendRow(table.Row{f.Name, f.Label, f.Kind, d.Get(f.Name)})
	}
	t.Render()
}
