package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"productdesk/internal/catalog"
	"productdesk/internal/models"
	"productdesk/internal/validation"

	"github.com/charmbracelet/lipgloss"
)

var (
	white       = lipgloss.Color("#FFFFFF")
	muted       = lipgloss.Color("#6B7280")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#F59E0B")
	success     = lipgloss.Color("#8BC34A")
)

// styles renders for one output stream, so colors are only emitted when the
// stream is a terminal.
type styles struct {
	r       *lipgloss.Renderer
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		r:       r,
		Title:   r.NewStyle().Bold(true),
		Header:  r.NewStyle().Bold(true).Foreground(muted),
		Muted:   r.NewStyle().Foreground(muted),
		Error:   r.NewStyle().Foreground(destructive),
		Success: r.NewStyle().Foreground(success),
	}
}

// badge renders the category label on its category color.
func (s styles) badge(c models.Category) string {
	return s.r.NewStyle().
		Foreground(white).
		Background(lipgloss.Color(c.Color())).
		Padding(0, 1).
		Render(c.Label())
}

func (s styles) stock(level catalog.StockLevel, label string) string {
	color := success
	switch level {
	case catalog.StockOut:
		color = destructive
	case catalog.StockLow:
		color = warning
	}
	return s.r.NewStyle().Foreground(color).Render(label)
}

// table lays rows out in left aligned columns sized to their widest cell.
func table(headers []string, rows [][]string, header lipgloss.Style) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var sb strings.Builder
	sb.WriteString(line(headers, &header))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(line(row, nil))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderList(s styles, view *catalog.ListView) string {
	if view.EmptyMessage != "" {
		return s.Muted.Render(view.EmptyMessage) + "\n"
	}

	rows := make([][]string, 0, len(view.Items))
	for _, item := range view.Items {
		rows = append(rows, []string{
			fmt.Sprint(item.ID),
			item.Name,
			item.PriceLabel,
			s.stock(item.StockLevel, item.StockLabel),
			s.badge(item.Category),
		})
	}

	var sb strings.Builder
	sb.WriteString(table([]string{"ID", "NAME", "PRICE", "STOCK", "CATEGORY"}, rows, s.Header))
	sb.WriteString(s.Muted.Render(fmt.Sprintf("Showing %d of %d products", view.Matched, view.Total)))
	sb.WriteString("\n")
	return sb.String()
}

func renderDetail(s styles, view *catalog.DetailView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", s.Title.Render(view.Name), s.badge(view.Category))
	fmt.Fprintf(&sb, "%s\n\n", view.Description)

	fields := [][2]string{
		{"Price", view.PriceLabel},
		{"Stock", s.stock(view.StockLevel, view.StockLabel)},
		{"Created", view.CreatedLabel},
		{"Updated", view.UpdatedLabel},
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s %s\n", s.Muted.Render(fmt.Sprintf("%-8s", f[0]+":")), f[1])
	}
	return sb.String()
}

func renderCategories(s styles, options []models.CategoryOption) string {
	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{string(o.Value), s.badge(o.Value), o.Color})
	}
	return table([]string{"VALUE", "LABEL", "COLOR"}, rows, s.Header)
}

func renderEvent(s styles, event models.ProductEvent) string {
	subject := fmt.Sprintf("#%d", event.ProductID)
	if event.Product != nil {
		subject += " " + event.Product.Name
	}
	return fmt.Sprintf("%s  %-16s %s",
		s.Muted.Render(event.OccurredAt.Local().Format("2006-01-02 15:04:05")),
		string(event.Type),
		subject,
	)
}

func renderValidation(s styles, errs validation.Errors) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	var sb strings.Builder
	sb.WriteString(s.Error.Render("Validation failed:"))
	sb.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "  %s: %s\n", f, errs[f])
	}
	return sb.String()
}
