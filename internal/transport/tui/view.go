package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/service/dashboard"
	"github.com/sandevgo/salesdash/internal/service/ui"
	"github.com/sandevgo/salesdash/pkg/conv"
)

const (
	transcriptLines = 12
	barWidth        = 24
)

func (m Model) View() string {
	header := ui.TitleStyle.Render(core.AppName + " 📊 store dashboard")

	pickers := lipgloss.JoinVertical(lipgloss.Left,
		m.panel(focusYears, "Years", m.yearList()),
		m.panel(focusCategories, "Categories", m.categoryList()),
	)
	panels := lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelStyle.Render(kpiPanel(m.view.KPIs)),
		ui.PanelStyle.Render(monthlyTable(m.view)),
		ui.PanelStyle.Render(distributionPanel(m.view.Distribution)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, pickers, panels),
		m.panel(focusChat, "Assistant", m.chat()),
		ui.DescStyle.Render("tab: switch panel · space: toggle · a/n: all/none · r: reset · ctrl+c: quit"),
	)
}

func (m Model) panel(f focus, title, body string) string {
	style := ui.PanelStyle
	if m.focus == f {
		style = ui.FocusStyle
	}
	return style.Render(ui.UsageStyle.Render(title) + "\n" + body)
}

func (m Model) yearList() string {
	labels := make([]string, len(m.view.YearOptions))
	for i, y := range m.view.YearOptions {
		labels[i] = strconv.Itoa(y)
	}
	return checklist(labels, m.focus == focusYears, m.yearCursor, func(i int) bool {
		return slices.Contains(m.view.Filters.Years, m.view.YearOptions[i])
	}, nil)
}

func (m Model) categoryList() string {
	return checklist(m.view.CategoryOptions, m.focus == focusCategories, m.catCursor, func(i int) bool {
		return slices.Contains(m.view.Filters.Categories, m.view.CategoryOptions[i])
	}, ui.CategoryStyle)
}

func checklist(labels []string, focused bool, cursor int, selected func(int) bool, style func(string) lipgloss.Style) string {
	var b strings.Builder
	for i, label := range labels {
		pointer := " "
		if focused && i == cursor {
			pointer = "❯"
		}
		box := "[ ]"
		if selected(i) {
			box = "[x]"
		}
		if style != nil {
			label = style(label).Render(label)
		}
		fmt.Fprintf(&b, "%s %s %s\n", pointer, box, label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func kpiPanel(k sales.KPIs) string {
	return strings.Join([]string{
		fmt.Sprintf("No. of Sales        %s", dashboard.Count(k.SaleCount)),
		fmt.Sprintf("No. of Returns      %s", dashboard.Count(k.ReturnCount)),
		fmt.Sprintf("Total Sales Revenue %s", dashboard.Currency(k.SaleRevenue)),
		fmt.Sprintf("Total Returns Loss  %s", dashboard.Currency(k.ReturnLoss)),
	}, "\n")
}

// monthlyTable shows the revenue line and its per-category breakdown side by side.
func monthlyTable(v dashboard.View) string {
	categories := stackedCategories(v.Stacked)

	headers := append([]string{"Month", "Revenue"}, categories...)
	rows := make([][]string, len(v.Monthly))
	for i, mt := range v.Monthly {
		row := []string{mt.Month.String(), dashboard.Amount(mt.Total)}
		totals := map[string]string{}
		if i < len(v.Stacked) {
			for _, ct := range v.Stacked[i].Totals {
				totals[ct.Category] = dashboard.Amount(ct.Total)
			}
		}
		for _, c := range categories {
			row = append(row, totals[c])
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow && col >= 2 {
				return s.Inherit(ui.CategoryStyle(categories[col-2]))
			}
			if col > 0 {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	return ui.UsageStyle.Render("Monthly Revenue") + "\n" + t.String()
}

func stackedCategories(stacked []sales.MonthCategoryTotal) []string {
	var out []string
	for _, m := range stacked {
		for _, ct := range m.Totals {
			out = append(out, ct.Category)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func distributionPanel(dist []sales.CategoryCount) string {
	var b strings.Builder
	b.WriteString(ui.UsageStyle.Render("Sales By Category") + "\n")
	if len(dist) == 0 {
		b.WriteString(ui.DescStyle.Render("no records for the selected years"))
		return b.String()
	}

	peak := dist[0].Count
	for _, d := range dist {
		peak = max(peak, d.Count)
	}
	for _, d := range dist {
		n := 1
		if peak > 0 {
			n = max(1, d.Count*barWidth/peak)
		}
		style := ui.CategoryStyle(d.Category)
		fmt.Fprintf(&b, "%-22s %s %s\n", d.Category, style.Render(strings.Repeat("█", n)), dashboard.Count(d.Count))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) chat() string {
	var lines []string
	for _, turn := range m.transcript {
		who := ui.UserStyle.Render("You")
		text := turn.Text
		if turn.Role == core.RoleAssistant {
			who = ui.AssistantStyle.Render("Assistant")
			text = conv.MarkdownToText(text)
		}
		lines = append(lines, strings.Split(who+": "+text, "\n")...)
	}
	if len(lines) > transcriptLines {
		lines = lines[len(lines)-transcriptLines:]
	}

	body := strings.Join(lines, "\n")
	if body != "" {
		body += "\n\n"
	}
	if m.pending {
		return body + m.spinner.View() + " thinking..."
	}
	return body + m.input.View()
}
