package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
)

const defaultHistoryDays = 14

type historyLoadedMsg struct {
	days []core.DaySummary
	err  error
}

func (historyLoadedMsg) target() Screen { return ScreenHistory }

type historyModel struct {
	env     *env
	days    int
	loading bool
	// stale is set when a reload was asked for during a load
	stale bool
	rows    []core.DaySummary
	err     error
	offset  int
	height  int
}

func newHistory(e *env, days int) *historyModel {
	if days <= 0 {
		days = defaultHistoryDays
	}

	return &historyModel{env: e, days: days, height: 20}
}

func (h *historyModel) enter() tea.Cmd {
	if h.loading {
		h.stale = true
		return nil
	}

	h.loading = true
	h.stale = false
	h.err = nil
	e, days := h.env, h.days

	return func() tea.Msg {
		rows, err := e.svc.History(e.ctx, e.now(), days)
		return historyLoadedMsg{days: rows, err: err}
	}
}

func (h *historyModel) capturing() bool { return false }

func (h *historyModel) setSize(_, height int) {
	h.height = max(5, height-6)
}

func (h *historyModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		h.loading = false
		h.rows, h.err = msg.days, msg.err
		h.offset = 0

		if h.stale {
			return h.enter()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return h.enter()
		case "up", "k":
			h.offset = max(0, h.offset-1)
		case "down", "j":
			h.offset = max(0, min(h.offset+1, len(h.rows)-h.height))
		}
	}

	return nil
}

func (h *historyModel) view() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render(fmt.Sprintf("Last %d days", h.days)) + "\n\n")

	switch {
	case h.loading:
		b.WriteString(dimStyle.Render("  Loading…") + "\n")
	case h.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %v", h.err)) + "\n")
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s  %8s  %9s  %-20s  %s", "Date", "kcal", "balance", "macros", "P/C/F g")) + "\n")

		end := min(len(h.rows), h.offset+h.height)
		for _, day := range h.rows[h.offset:end] {
			b.WriteString(historyRow(day) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("\n↑/↓: scroll • r: reload"))

	return b.String()
}

func historyRow(day core.DaySummary) string {
	balance := fmt.Sprintf("%9s", signed(day.Evaluation.Balance))
	if day.Evaluation.IsDeficit {
		balance = successStyle.Render(balance)
	} else {
		balance = warningStyle.Render(balance)
	}

	t := day.Totals

	return fmt.Sprintf("  %-10s  %8s  %s  %s  %s",
		day.Date,
		kcal(t.TotalCalories),
		balance,
		macroMiniBar(day.Evaluation.Macros, macroBarWidth),
		dimStyle.Render(macroGrams(t)))
}

func macroGrams(t model.DailyTotals) string {
	return fmt.Sprintf("%s/%s/%s", grams(t.TotalProtein), grams(t.TotalCarbs), grams(t.TotalFat))
}
