// Package tui renders the interactive dashboard: a watchlist of analyzed
// symbols, a detail pane for the selected one, and a live cache-status
// footer. Data access always goes through the cache service, so navigating
// between recently viewed symbols costs no network calls.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketlens/marketlens/internal/format"
	"github.com/marketlens/marketlens/internal/models"
	"github.com/marketlens/marketlens/internal/service"
)

// Default dimensions used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// analysisLoadedMsg delivers one symbol's analysis (or its fetch error).
type analysisLoadedMsg struct {
	symbol   string
	analysis *models.StockAnalysis
	err      error
}

// row is one watchlist line.
type row struct {
	symbol   string
	analysis *models.StockAnalysis
	err      error
	loading  bool
}

// DashboardModel is the Bubble Tea model for the watchlist dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View.
type DashboardModel struct {
	ctx      context.Context
	svc      *service.Service
	rows     []row
	selected int
	spinner  spinner.Model
	width    int
	height   int
}

// NewDashboardModel creates a dashboard over the given watchlist symbols.
func NewDashboardModel(ctx context.Context, svc *service.Service, symbols []string) DashboardModel {
	rows := make([]row, len(symbols))
	for i, symbol := range symbols {
		rows[i] = row{symbol: strings.ToUpper(symbol), loading: true}
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(MutedStyle))
	return DashboardModel{
		ctx:     ctx,
		svc:     svc,
		rows:    rows,
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init kicks off one fetch per watchlist symbol. Cached symbols resolve
// without touching the network.
func (m DashboardModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.rows)+1)
	for i := range m.rows {
		cmds = append(cmds, m.fetchCmd(m.rows[i].symbol, false))
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

// Update handles key, resize, and data messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisLoadedMsg:
		for i := range m.rows {
			if m.rows[i].symbol == msg.symbol {
				m.rows[i].analysis = msg.analysis
				m.rows[i].err = msg.err
				m.rows[i].loading = false
			}
		}
		return m, nil
	}
	return m, nil
}

// handleKey processes navigation and refresh keys.
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case "r":
		// Force-refresh the selected symbol, bypassing its cache entry.
		if len(m.rows) > 0 {
			m.rows[m.selected].loading = true
			return m, m.fetchCmd(m.rows[m.selected].symbol, true)
		}
	}
	return m, nil
}

// fetchCmd loads one symbol through the cache service.
func (m DashboardModel) fetchCmd(symbol string, force bool) tea.Cmd {
	return func() tea.Msg {
		analysis, err := m.svc.GetStockData(m.ctx, symbol, force)
		return analysisLoadedMsg{symbol: symbol, analysis: analysis, err: err}
	}
}

// View renders the watchlist, detail pane, and cache-status footer.
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Market Lens"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(MutedStyle.Render("Watchlist is empty. Add symbols under `watchlist:` in your config."))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.selected))
		b.WriteString("\n")
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(m.rows[m.selected]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderRow renders one watchlist line.
func (m DashboardModel) renderRow(r row, selected bool) string {
	marker := "  "
	symbolStyle := ValueStyle
	if selected {
		marker = SelectStyle.Render("> ")
		symbolStyle = SelectStyle
	}

	switch {
	case r.loading:
		return fmt.Sprintf("%s%s  %s%s", marker, symbolStyle.Render(pad(r.symbol, 10)), m.spinner.View(), MutedStyle.Render("loading"))
	case r.err != nil:
		return fmt.Sprintf("%s%s  %s", marker, symbolStyle.Render(pad(r.symbol, 10)), ErrorStyle.Render("fetch failed (r to retry)"))
	default:
		q := r.analysis.Quote
		change := ChangeStyle(q.Change).Render(
			fmt.Sprintf("%s (%s)", format.Float(q.Change, 2), format.Percent(q.ChangePercent)))
		return fmt.Sprintf("%s%s  %s  %s",
			marker,
			symbolStyle.Render(pad(r.symbol, 10)),
			ValueStyle.Render(pad(format.Price(q.Price, q.Currency), 14)),
			change)
	}
}

// renderDetail renders the metrics panel for the selected row.
func (m DashboardModel) renderDetail(r row) string {
	if r.loading || r.err != nil || r.analysis == nil {
		return ""
	}
	q := r.analysis.Quote
	metrics := r.analysis.Metrics
	tech := r.analysis.Technical

	lines := []string{
		HeaderStyle.Render(fmt.Sprintf("%s — %s", q.Symbol, q.Name)),
		LabelStyle.Render("Sector     ") + ValueStyle.Render(q.Sector),
		LabelStyle.Render("Market cap ") + ValueStyle.Render(format.MarketCap(q.MarketCap, q.Currency)),
		LabelStyle.Render("52w range  ") + ValueStyle.Render(
			format.Price(q.Low52Week, q.Currency)+" – "+format.Price(q.High52Week, q.Currency)),
		LabelStyle.Render("P/E        ") + ValueStyle.Render(format.Ratio(metrics.PERatio)),
		LabelStyle.Render("Div yield  ") + ValueStyle.Render(format.Ratio(metrics.DividendYield)),
		LabelStyle.Render("RSI        ") + ValueStyle.Render(format.Ratio(tech.RSI)),
		LabelStyle.Render("Volatility ") + ValueStyle.Render(format.Ratio(tech.Volatility)),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

// renderFooter renders live cache statistics and key hints. The census is
// recomputed on every frame so it always matches the caches' actual state.
func (m DashboardModel) renderFooter() string {
	stats := m.svc.CacheStats()
	cacheLine := fmt.Sprintf("cache: %d entries (stock %d · ai %d · screener %d, %d expired)",
		stats.Total,
		stats.Stock.Entries,
		stats.AI.Entries,
		stats.Screener.Entries,
		stats.Stock.Expired+stats.AI.Expired+stats.Screener.Expired)
	keys := "↑/↓ select · r refresh · q quit"
	return MutedStyle.Render(cacheLine + "\n" + keys)
}

// pad right-pads s with spaces to width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
