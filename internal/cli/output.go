package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/marketlens/marketlens/internal/format"
	"github.com/marketlens/marketlens/internal/models"
	"github.com/marketlens/marketlens/internal/service"
	"github.com/marketlens/marketlens/internal/tui"
)

// renderer applies terminal styles when stdout is a TTY and passes text
// through unchanged when it is not, so piped output stays clean.
type renderer struct {
	styled bool
}

func (r renderer) apply(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

func (r renderer) header(s string) string { return r.apply(tui.HeaderStyle, s) }
func (r renderer) label(s string) string  { return r.apply(tui.LabelStyle, s) }
func (r renderer) value(s string) string  { return r.apply(tui.ValueStyle, s) }
func (r renderer) muted(s string) string  { return r.apply(tui.MutedStyle, s) }

func (r renderer) change(v float64, s string) string {
	if !r.styled {
		return s
	}
	return tui.ChangeStyle(v).Render(s)
}

// renderAnalysis prints the full analysis bundle for one symbol: quote
// headline, valuation and profitability ratios, and technical signals.
func renderAnalysis(w io.Writer, a *models.StockAnalysis, styled bool) {
	r := renderer{styled: styled}
	q := a.Quote

	title := fmt.Sprintf("%s — %s", q.Symbol, q.Name)
	fmt.Fprintln(w, r.header(title))
	if q.Sector != "" {
		fmt.Fprintln(w, r.muted(fmt.Sprintf("%s / %s", q.Sector, q.Industry)))
	}

	changeText := fmt.Sprintf("%s (%s)", format.Float(q.Change, 2), format.Percent(q.ChangePercent))
	fmt.Fprintf(w, "%s %s  %s\n",
		r.label("Price"),
		r.value(format.Price(q.Price, q.Currency)),
		r.change(q.Change, changeText),
	)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("Market Cap"), format.MarketCap(q.MarketCap, q.Currency),
		r.label("Volume"), format.Number(q.Volume))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("52w High"), format.Price(q.High52Week, q.Currency),
		r.label("52w Low"), format.Price(q.Low52Week, q.Currency))

	m := a.Metrics
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("P/E"), format.Ratio(m.PERatio),
		r.label("Forward P/E"), format.Ratio(m.ForwardPE))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("PEG"), format.Ratio(m.PEGRatio),
		r.label("P/B"), format.Ratio(m.PriceToBook))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("Profit Margin"), ratioPercent(m.ProfitMargin),
		r.label("ROE"), ratioPercent(m.ReturnOnEquity))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("Revenue Growth"), ratioPercent(m.RevenueGrowth),
		r.label("Debt/Equity"), format.Ratio(m.DebtToEquity))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("Dividend Yield"), ratioPercent(m.DividendYield),
		r.label("Payout Ratio"), ratioPercent(m.PayoutRatio))

	t := a.Technical
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("RSI"), format.Ratio(t.RSI),
		r.label("Volatility"), ratioPercent(t.Volatility))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("MA50"), format.Ratio(t.MovingAverage50),
		r.label("MA200"), format.Ratio(t.MovingAvg200))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		r.label("Support"), format.Ratio(t.SupportLevel),
		r.label("Resistance"), format.Ratio(t.ResistanceLevel))
	tw.Flush()
	fmt.Fprintln(w)
}

// ratioPercent renders an optional ratio as a signed percentage, with the
// same em-dash fallback as format.Ratio for missing values.
func ratioPercent(v *float64) string {
	if v == nil {
		return "—"
	}
	return format.Percent(*v * 100)
}

// renderEvaluation prints the scored verdict for a symbol.
func renderEvaluation(w io.Writer, symbol string, ev *models.StockEvaluation, styled bool) {
	r := renderer{styled: styled}

	fmt.Fprintln(w, r.header(fmt.Sprintf("%s evaluation", strings.ToUpper(symbol))))
	scoreText := fmt.Sprintf("%s/100 — %s", format.Float(ev.Score, 0), ev.Recommendation)
	fmt.Fprintf(w, "%s %s\n", r.label("Score"), r.change(ev.Score-50, scoreText))

	if len(ev.PositiveFactors) > 0 {
		fmt.Fprintln(w, r.label("Positive factors:"))
		for _, factor := range ev.PositiveFactors {
			fmt.Fprintf(w, "  + %s\n", factor)
		}
	}
	if len(ev.RedFlags) > 0 {
		fmt.Fprintln(w, r.label("Red flags:"))
		for _, flag := range ev.RedFlags {
			fmt.Fprintf(w, "  - %s\n", flag)
		}
	}
}

// renderAIAnalysis prints AI commentary for a symbol and question.
func renderAIAnalysis(w io.Writer, symbol, question string, resp *models.AIAnalysisResponse, styled bool) {
	r := renderer{styled: styled}

	fmt.Fprintln(w, r.header(fmt.Sprintf("%s — %s", strings.ToUpper(symbol), question)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, resp.Analysis)
	if len(resp.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.label("Recommendations:"))
		for _, rec := range resp.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
	}
}

// renderScreener prints a screener result page as a table. Field columns are
// sorted by name so the layout is stable across runs.
func renderScreener(w io.Writer, page *models.ScreenerResponse, styled bool) {
	r := renderer{styled: styled}

	name := page.TemplateName
	if name == "" {
		name = page.TemplateID
	}
	fmt.Fprintln(w, r.header(fmt.Sprintf("Screener: %s (%d matches)", name, len(page.Rows))))

	columns := screenerColumns(page.Rows)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headerRow := append([]string{"SYMBOL", "NAME"}, columns...)
	fmt.Fprintln(tw, r.label(strings.Join(headerRow, "\t")))
	for _, row := range page.Rows {
		cells := []string{row.Symbol, row.Name}
		for _, col := range columns {
			if v, ok := row.Fields[col]; ok {
				cells = append(cells, format.Float(v, 2))
			} else {
				cells = append(cells, "—")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// screenerColumns collects the union of field names across all rows.
func screenerColumns(rows []models.ScreenerRow) []string {
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range rows {
		for name := range row.Fields {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				columns = append(columns, name)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// renderCacheStats prints the per-domain entry census.
func renderCacheStats(w io.Writer, stats service.CacheStats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tENTRIES\tVALID\tEXPIRED")
	fmt.Fprintf(tw, "stock\t%d\t%d\t%d\n", stats.Stock.Entries, stats.Stock.Valid, stats.Stock.Expired)
	fmt.Fprintf(tw, "ai\t%d\t%d\t%d\n", stats.AI.Entries, stats.AI.Valid, stats.AI.Expired)
	fmt.Fprintf(tw, "screener\t%d\t%d\t%d\n", stats.Screener.Entries, stats.Screener.Valid, stats.Screener.Expired)
	fmt.Fprintf(tw, "total\t%d\t\t\n", stats.Total)
	tw.Flush()
}
