package dashboard

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "Active"
	CampaignPaused    CampaignStatus = "Paused"
	CampaignCompleted CampaignStatus = "Completed"
	CampaignDraft     CampaignStatus = "Draft"
)

type Campaign struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Channel     string         `json:"channel"`
	Status      CampaignStatus `json:"status"`
	Budget      int64          `json:"budget"`
	Spent       int64          `json:"spent"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	Conversions int64          `json:"conversions"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	ROI         float64        `json:"roi"`
}

var campaigns = []Campaign{
	{ID: 1, Name: "Q1 Product Launch", Channel: "Google Ads", Status: CampaignActive, Budget: 15000, Spent: 8500, Impressions: 250000, Clicks: 12500, Conversions: 125, StartDate: "2024-01-01", EndDate: "2024-03-31", ROI: 2.8},
	{ID: 2, Name: "Social Media Awareness", Channel: "Facebook", Status: CampaignActive, Budget: 8000, Spent: 6200, Impressions: 180000, Clicks: 9000, Conversions: 90, StartDate: "2024-01-15", EndDate: "2024-02-28", ROI: 1.9},
	{ID: 3, Name: "Email Newsletter", Channel: "Email", Status: CampaignCompleted, Budget: 3000, Spent: 2800, Impressions: 50000, Clicks: 2500, Conversions: 75, StartDate: "2024-01-01", EndDate: "2024-01-31", ROI: 3.2},
	{ID: 4, Name: "LinkedIn B2B Campaign", Channel: "LinkedIn", Status: CampaignPaused, Budget: 12000, Spent: 4500, Impressions: 85000, Clicks: 3400, Conversions: 42, StartDate: "2024-01-10", EndDate: "2024-02-28", ROI: 1.5},
	{ID: 5, Name: "Content Marketing", Channel: "Blog/SEO", Status: CampaignActive, Budget: 5000, Spent: 2200, Impressions: 125000, Clicks: 6250, Conversions: 95, StartDate: "2024-01-01", EndDate: "2024-06-30", ROI: 4.1},
}

type MarketingStats struct {
	TotalBudget      int64   `json:"totalBudget"`
	TotalSpent       int64   `json:"totalSpent"`
	TotalConversions int64   `json:"totalConversions"`
	AverageROI       float64 `json:"averageRoi"`
}

type MarketingView struct {
	Campaigns []Campaign     `json:"campaigns"`
	Stats     MarketingStats `json:"stats"`
	Filters   []SelectFilter `json:"filters"`
}

func Marketing(q Query) MarketingView {
	view := MarketingView{
		Campaigns: []Campaign{},
		Filters: []SelectFilter{
			{Name: "channel", Label: "Channel", Options: withAll("Google Ads", "Facebook", "Email", "LinkedIn", "Blog/SEO")},
			{Name: "status", Label: "Status", Options: withAll(string(CampaignActive), string(CampaignPaused), string(CampaignCompleted), string(CampaignDraft))},
		},
	}

	var roiSum float64
	for _, c := range campaigns {
		view.Stats.TotalBudget += c.Budget
		view.Stats.TotalSpent += c.Spent
		view.Stats.TotalConversions += c.Conversions
		roiSum += c.ROI

		if q.matchesSearch(c.Name, c.Channel) &&
			q.matchesSelect("channel", c.Channel) &&
			q.matchesSelect("status", string(c.Status)) {
			view.Campaigns = append(view.Campaigns, c)
		}
	}
	view.Stats.AverageROI = round1(roiSum / float64(len(campaigns)))

	return view
}
