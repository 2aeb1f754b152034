package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/polkiloo/salesorder/internal/domain/ledger"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/usecase"
)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	labelStyle   = lipgloss.NewStyle().Foreground(dim)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(headers...)
}

func renderCustomers(customers []model.Customer) string {
	t := newTable("Code", "Name", "Email").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range customers {
		t.Row(c.Code, c.Name, c.Email)
	}
	return t.Render()
}

func renderItems(items []model.CatalogItem) string {
	t := newTable("Code", "Name", "Type", "Price").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3:
				return numberStyle
			}
			return cellStyle
		})
	for _, it := range items {
		t.Row(it.Code, it.Name, it.Type, ledger.ResolvePrice(it).StringFixed(2))
	}
	return t.Render()
}

func renderDraft(s usecase.Snapshot) string {
	var b strings.Builder

	customer := "(none)"
	if s.Customer != nil {
		customer = fmt.Sprintf("%s  %s", s.Customer.Code, s.Customer.Name)
	}
	b.WriteString(titleStyle.Render("Sales Order " + s.DocNumber))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Customer: ") + customer + "\n")
	b.WriteString(labelStyle.Render("Date:     ") + s.DocDate + "\n")

	t := newTable("Item", "Name", "Qty", "Unit price", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			}
			return cellStyle
		})
	for _, l := range s.Lines {
		t.Row(l.Code, l.Name, fmt.Sprint(l.Quantity), l.UnitPrice.StringFixed(2), l.LineTotal().StringFixed(2))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Subtotal: ") + s.Subtotal.StringFixed(2) + "\n")
	b.WriteString(titleStyle.Render("Total:    " + s.Total.StringFixed(2)))
	return b.String()
}

func renderSuccess(msg string) string {
	return successStyle.Render(msg)
}

func renderFailure(msg string) string {
	return failureStyle.Render(msg)
}
