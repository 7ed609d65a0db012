package dto

type ProductStatDTO struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

type CategoryStatDTO struct {
	Category  string  `json:"category"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

type DayStatDTO struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
}

type AnalyticsResponse struct {
	TotalRevenue float64           `json:"totalRevenue"`
	TotalOrders  int               `json:"totalOrders"`
	BestSeller   *ProductStatDTO   `json:"bestSeller"`
	Products     []ProductStatDTO  `json:"products"`
	Categories   []CategoryStatDTO `json:"categories"`
	Days         []DayStatDTO      `json:"days"`
}
