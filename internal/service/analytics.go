package service

// Engagement analytics are presented with static sample data; there is
// no ingestion path from real link clicks.

// DayStat is one day of page views and link clicks.
type DayStat struct {
	Date   string `json:"date"`
	Views  int    `json:"views"`
	Clicks int    `json:"clicks"`
}

// TopLink is one entry in the most-clicked ranking.
type TopLink struct {
	Title      string `json:"title"`
	Clicks     int    `json:"clicks"`
	Percentage int    `json:"percentage"`
}

// AnalyticsSummary is the payload behind the analytics tab.
type AnalyticsSummary struct {
	Series      []DayStat `json:"series"`
	TopLinks    []TopLink `json:"topLinks"`
	TotalViews  int       `json:"totalViews"`
	TotalClicks int       `json:"totalClicks"`
}

// AnalyticsService serves the sample engagement data.
type AnalyticsService struct{}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

var sampleSeries = []DayStat{
	{Date: "Jan 1", Views: 120, Clicks: 45},
	{Date: "Jan 2", Views: 150, Clicks: 62},
	{Date: "Jan 3", Views: 180, Clicks: 71},
	{Date: "Jan 4", Views: 140, Clicks: 55},
	{Date: "Jan 5", Views: 200, Clicks: 89},
	{Date: "Jan 6", Views: 220, Clicks: 95},
	{Date: "Jan 7", Views: 250, Clicks: 112},
}

var sampleTopLinks = []TopLink{
	{Title: "Instagram", Clicks: 245, Percentage: 42},
	{Title: "Website", Clicks: 187, Percentage: 32},
	{Title: "YouTube", Clicks: 98, Percentage: 17},
	{Title: "LinkedIn", Clicks: 52, Percentage: 9},
}

// Summary returns the sample series with totals.
func (s *AnalyticsService) Summary() AnalyticsSummary {
	out := AnalyticsSummary{
		Series:   sampleSeries,
		TopLinks: sampleTopLinks,
	}
	for _, d := range out.Series {
		out.TotalViews += d.Views
		out.TotalClicks += d.Clicks
	}
	return out
}
