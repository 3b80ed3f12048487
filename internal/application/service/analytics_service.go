package service

import (
	"context"
	"sort"
	"time"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/repository"
	"github.com/swechhitarimal/SMS/pkg/apperror"
)

// TopProductLimit is how many products the top-products list carries.
const TopProductLimit = 5

// AnalyticsSummary is the full report for one reporting window.
type AnalyticsSummary struct {
	TotalRevenue      float64              `json:"total_revenue"`
	TotalSales        int                  `json:"total_sales"`
	AverageOrderValue float64              `json:"average_order_value"`
	TopProducts       []ProductSalesPoint  `json:"top_products"`
	SalesByDay        []DailySalesPoint    `json:"sales_by_day"`
	SalesByCategory   []CategorySalesPoint `json:"sales_by_category"`
	CustomerStats     CustomerStats        `json:"customer_stats"`
}

// ProductSalesPoint is one product's accumulated in-window performance,
// keyed by the name recorded on the sale line.
type ProductSalesPoint struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailySalesPoint is one calendar day of the reporting window.
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// CategorySalesPoint is accumulated in-window revenue for one category.
type CategorySalesPoint struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CustomerStats holds the customer cohort counts.
type CustomerStats struct {
	TotalCustomers     int `json:"total_customers"`
	ReturningCustomers int `json:"returning_customers"`
	NewCustomers       int `json:"new_customers"`
}

// AnalyticsService loads the three collections read-only and runs the
// aggregation over them.
type AnalyticsService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewAnalyticsService creates a new analytics service. The clock defaults to
// time.Now and is injectable for deterministic tests.
func NewAnalyticsService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *AnalyticsService {
	return &AnalyticsService{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// WithClock overrides the reference clock.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// GetSummary computes the analytics summary for the trailing windowDays-day
// period ending now.
func (s *AnalyticsService) GetSummary(ctx context.Context, windowDays int) (*AnalyticsSummary, error) {
	if windowDays < 1 {
		return nil, apperror.NewBadRequestError("Window must be a positive number of days")
	}

	products, err := s.productRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	return Aggregate(products, sales, customers, windowDays, s.now()), nil
}

// Aggregate computes the analytics summary for the windowDays calendar days
// ending at the reference instant's day, inclusive. It is pure: identical
// inputs and reference yield identical output, and no input is mutated.
func Aggregate(products []entity.Product, sales []entity.Sale, customers []entity.Customer, windowDays int, reference time.Time) *AnalyticsSummary {
	if windowDays < 1 {
		windowDays = 1
	}

	refDay := dayStart(reference)
	// The cutoff is the start of the oldest day in the window, so the
	// in-window set is exactly the union of the daily-series buckets.
	cutoff := refDay.AddDate(0, 0, -(windowDays - 1))

	inWindow := make([]entity.Sale, 0, len(sales))
	for _, sale := range sales {
		if !sale.CreatedAt.Before(cutoff) {
			inWindow = append(inWindow, sale)
		}
	}

	summary := &AnalyticsSummary{
		TopProducts:     []ProductSalesPoint{},
		SalesByCategory: []CategorySalesPoint{},
	}

	for _, sale := range inWindow {
		summary.TotalRevenue += sale.Total
	}
	summary.TotalSales = len(inWindow)
	if summary.TotalSales > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalSales)
	}

	summary.TopProducts = topProducts(inWindow)
	summary.SalesByDay = salesByDay(inWindow, refDay, windowDays)
	summary.SalesByCategory = salesByCategory(inWindow, products)
	summary.CustomerStats = customerStats(customers, sales, cutoff)

	return summary
}

// topProducts accumulates quantity and revenue per line-item name across the
// in-window sales and returns the top entries by revenue. Keying by name (not
// product ID) keeps lines from renamed or deleted products aggregated under
// the label recorded at sale time. Ties keep encounter order.
func topProducts(sales []entity.Sale) []ProductSalesPoint {
	index := make(map[string]int)
	points := []ProductSalesPoint{}

	for _, sale := range sales {
		for _, item := range sale.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(points)
				index[item.Name] = i
				points = append(points, ProductSalesPoint{Name: item.Name})
			}
			points[i].Quantity += item.Quantity
			points[i].Revenue += item.Total
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Revenue > points[j].Revenue })
	if len(points) > TopProductLimit {
		points = points[:TopProductLimit]
	}
	return points
}

// salesByDay buckets the in-window sales into exactly windowDays calendar
// days, oldest first, ending at refDay. Days without sales appear with zeros.
// Sale timestamps are converted to the reference location before truncation so
// every in-window sale lands in one of the series days regardless of the zone
// its record carries.
func salesByDay(sales []entity.Sale, refDay time.Time, windowDays int) []DailySalesPoint {
	type bucket struct {
		count   int
		revenue float64
	}
	buckets := make(map[string]*bucket, windowDays)

	for _, sale := range sales {
		key := dayStart(sale.CreatedAt.In(refDay.Location())).Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.revenue += sale.Total
	}

	series := make([]DailySalesPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := refDay.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		point := DailySalesPoint{Date: key}
		if b, ok := buckets[key]; ok {
			point.Sales = b.count
			point.Revenue = b.revenue
		}
		series = append(series, point)
	}
	return series
}

// salesByCategory attributes each in-window line item to a category by
// looking up the current product list by name (first match). Lines whose
// product no longer exists fall back to the default category.
func salesByCategory(sales []entity.Sale, products []entity.Product) []CategorySalesPoint {
	categoryByName := make(map[string]string, len(products))
	for _, p := range products {
		if _, ok := categoryByName[p.Name]; !ok {
			categoryByName[p.Name] = p.CategoryOrDefault()
		}
	}

	index := make(map[string]int)
	points := []CategorySalesPoint{}

	for _, sale := range sales {
		for _, item := range sale.Items {
			category, ok := categoryByName[item.Name]
			if !ok {
				category = entity.DefaultCategory
			}
			i, ok := index[category]
			if !ok {
				i = len(points)
				index[category] = i
				points = append(points, CategorySalesPoint{Category: category})
			}
			points[i].Revenue += item.Total
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Revenue > points[j].Revenue })
	return points
}

// customerStats derives the cohort counts. Returning customers are counted
// against the full sales history via the best-effort email-or-name join; new
// customers against their own creation timestamp and the window cutoff.
func customerStats(customers []entity.Customer, allSales []entity.Sale, cutoff time.Time) CustomerStats {
	stats := CustomerStats{TotalCustomers: len(customers)}

	for i := range customers {
		purchases := 0
		for j := range allSales {
			if customers[i].MatchesSale(&allSales[j]) {
				purchases++
			}
		}
		if purchases > 1 {
			stats.ReturningCustomers++
		}
		if !customers[i].CreatedAt.Before(cutoff) {
			stats.NewCustomers++
		}
	}
	return stats
}

// dayStart truncates t to local midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
