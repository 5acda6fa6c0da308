// Package models defines the payload types exchanged with the Market Lens
// backend. Field names and JSON tags mirror the backend's response shapes
// exactly so decoded values can be cached and re-served without translation.
package models

// StockQuote is the headline quote block for a symbol.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	High52Week    float64 `json:"high52Week"`
	Low52Week     float64 `json:"low52Week"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	Currency      string  `json:"currency"`
}

// FinancialMetrics holds valuation, profitability, growth, health, and
// dividend ratios. Pointers distinguish "not reported" from zero.
type FinancialMetrics struct {
	PERatio         *float64 `json:"peRatio"`
	ForwardPE       *float64 `json:"forwardPE"`
	PEGRatio        *float64 `json:"pegRatio"`
	PriceToBook     *float64 `json:"priceToBook"`
	PriceToSales    *float64 `json:"priceToSales"`
	EVToRevenue     *float64 `json:"evToRevenue"`
	ProfitMargin    *float64 `json:"profitMargin"`
	OperatingMargin *float64 `json:"operatingMargin"`
	GrossMargin     *float64 `json:"grossMargin"`
	ReturnOnEquity  *float64 `json:"returnOnEquity"`
	ReturnOnAssets  *float64 `json:"returnOnAssets"`
	RevenueGrowth   *float64 `json:"revenueGrowth"`
	EarningsGrowth  *float64 `json:"earningsGrowth"`
	DebtToEquity    *float64 `json:"debtToEquity"`
	CurrentRatio    *float64 `json:"currentRatio"`
	QuickRatio      *float64 `json:"quickRatio"`
	CashPerShare    *float64 `json:"cashPerShare"`
	DividendYield   *float64 `json:"dividendYield"`
	DividendRate    *float64 `json:"dividendRate"`
	PayoutRatio     *float64 `json:"payoutRatio"`
}

// TechnicalIndicators holds the computed technical signals for a symbol.
type TechnicalIndicators struct {
	RSI             *float64 `json:"rsi"`
	MovingAverage50 *float64 `json:"movingAverage50"`
	MovingAvg200    *float64 `json:"movingAverage200"`
	Volatility      *float64 `json:"volatility"`
	SupportLevel    *float64 `json:"supportLevel"`
	ResistanceLevel *float64 `json:"resistanceLevel"`
}

// PricePoint is a single OHLCV bar in the price history.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockAnalysis is the full analysis bundle returned by
// POST /api/stocks/analyze: quote, metrics, technicals, one year of price
// history, and the generated prompt used for follow-up AI questions.
type StockAnalysis struct {
	Quote        StockQuote          `json:"quote"`
	Metrics      FinancialMetrics    `json:"metrics"`
	Technical    TechnicalIndicators `json:"technical"`
	PriceHistory []PricePoint        `json:"priceHistory"`
	Prompt       string              `json:"prompt"`
}

// StockEvaluation is the scored verdict returned by POST /api/stocks/evaluate.
type StockEvaluation struct {
	Score           float64  `json:"score"`
	Recommendation  string   `json:"recommendation"`
	PositiveFactors []string `json:"positiveFactors"`
	RedFlags        []string `json:"redFlags"`
}

// AIAnalysisResponse is the commentary returned by POST /api/ai/analyze.
type AIAnalysisResponse struct {
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// ScreenerRow is one company row in a screener result page.
type ScreenerRow struct {
	Symbol string             `json:"symbol"`
	Name   string             `json:"name"`
	Fields map[string]float64 `json:"fields,omitempty"`
}

// ScreenerResponse is a raw screener result page for a template.
type ScreenerResponse struct {
	TemplateID   string        `json:"templateId"`
	TemplateName string        `json:"templateName"`
	Rows         []ScreenerRow `json:"rows"`
}

// HealthStatus is the backend health report from GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
