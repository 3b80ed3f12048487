package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/enum"
	"github.com/swechhitarimal/SMS/internal/infrastructure/repository"
	"github.com/swechhitarimal/SMS/internal/infrastructure/storage"
)

var reference = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func saleOn(t time.Time, total float64, items ...entity.SaleItem) entity.Sale {
	return entity.Sale{
		ID:            "sale-" + t.Format("20060102150405"),
		CustomerName:  "Walk In",
		Items:         items,
		Total:         total,
		PaymentMethod: enum.PaymentCash,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     t,
	}
}

func item(name string, price float64, qty int) entity.SaleItem {
	return entity.SaleItem{
		Name:     name,
		Price:    price,
		Quantity: qty,
		Total:    price * float64(qty),
	}
}

func TestAggregateDailySeriesLength(t *testing.T) {
	sales := []entity.Sale{
		saleOn(reference.AddDate(0, 0, -1), 25, item("Widget", 25, 1)),
		saleOn(reference.AddDate(0, 0, -40), 99, item("Widget", 99, 1)),
	}

	for _, windowDays := range []int{7, 30, 90, 365} {
		summary := Aggregate(nil, sales, nil, windowDays, reference)
		assert.Len(t, summary.SalesByDay, windowDays, "window of %d days", windowDays)

		// The series ends at the reference day and has no gaps.
		assert.Equal(t, reference.Format("2006-01-02"), summary.SalesByDay[windowDays-1].Date)
		for i := 1; i < len(summary.SalesByDay); i++ {
			prev, err := time.Parse("2006-01-02", summary.SalesByDay[i-1].Date)
			require.NoError(t, err)
			assert.Equal(t, prev.AddDate(0, 0, 1).Format("2006-01-02"), summary.SalesByDay[i].Date)
		}
	}
}

func TestAggregateSeriesRevenueMatchesTotal(t *testing.T) {
	sales := []entity.Sale{
		saleOn(reference, 30, item("Widget", 5, 2), item("Gadget", 20, 1)),
		saleOn(reference.AddDate(0, 0, -3), 45.50, item("Hammer", 45.50, 1)),
		saleOn(reference.AddDate(0, 0, -6), 12.25, item("Tape", 12.25, 1)),
		saleOn(reference.AddDate(0, 0, -200), 500, item("Drill", 500, 1)),
	}

	for _, windowDays := range []int{7, 30, 90, 365} {
		summary := Aggregate(nil, sales, nil, windowDays, reference)

		var seriesRevenue float64
		var seriesCount int
		for _, point := range summary.SalesByDay {
			seriesRevenue += point.Revenue
			seriesCount += point.Sales
		}
		assert.InDelta(t, summary.TotalRevenue, seriesRevenue, 1e-9, "window of %d days", windowDays)
		assert.Equal(t, summary.TotalSales, seriesCount, "window of %d days", windowDays)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	summary := Aggregate(nil, nil, nil, 7, reference)

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalSales)
	assert.Zero(t, summary.AverageOrderValue)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.SalesByCategory)
	assert.Len(t, summary.SalesByDay, 7)
	for _, point := range summary.SalesByDay {
		assert.Zero(t, point.Sales)
		assert.Zero(t, point.Revenue)
	}
	assert.Zero(t, summary.CustomerStats.TotalCustomers)
}

func TestAggregateSingleSaleScenario(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Name: "Widget", Category: "Tools", Price: 5},
		{ID: "p2", Name: "Gadget", Category: "Tools", Price: 20},
	}
	sales := []entity.Sale{
		saleOn(reference, 30, item("Widget", 5, 2), item("Gadget", 20, 1)),
	}

	summary := Aggregate(products, sales, nil, 7, reference)

	assert.Equal(t, 30.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TotalSales)
	assert.Equal(t, 30.0, summary.AverageOrderValue)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, ProductSalesPoint{Name: "Gadget", Quantity: 1, Revenue: 20}, summary.TopProducts[0])
	assert.Equal(t, ProductSalesPoint{Name: "Widget", Quantity: 2, Revenue: 10}, summary.TopProducts[1])

	require.Len(t, summary.SalesByCategory, 1)
	assert.Equal(t, CategorySalesPoint{Category: "Tools", Revenue: 30}, summary.SalesByCategory[0])

	today := summary.SalesByDay[len(summary.SalesByDay)-1]
	assert.Equal(t, 1, today.Sales)
	assert.Equal(t, 30.0, today.Revenue)
}

func TestAggregateTopProductsCapAndOrder(t *testing.T) {
	var items []entity.SaleItem
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		items = append(items, item(name, float64(10+i*10), 1))
	}
	sales := []entity.Sale{saleOn(reference, 280, items...)}

	summary := Aggregate(nil, sales, nil, 30, reference)

	require.Len(t, summary.TopProducts, TopProductLimit)
	for i := 1; i < len(summary.TopProducts); i++ {
		assert.GreaterOrEqual(t, summary.TopProducts[i-1].Revenue, summary.TopProducts[i].Revenue)
	}
	assert.Equal(t, "G", summary.TopProducts[0].Name)
}

func TestAggregateTopProductsTiesKeepEncounterOrder(t *testing.T) {
	sales := []entity.Sale{
		saleOn(reference, 20, item("First", 10, 1), item("Second", 10, 1)),
	}

	summary := Aggregate(nil, sales, nil, 7, reference)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "First", summary.TopProducts[0].Name)
	assert.Equal(t, "Second", summary.TopProducts[1].Name)
}

func TestAggregateCategoryRevenueSumsToTotal(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Name: "Hammer", Category: "Tools", Price: 15},
		{ID: "p2", Name: "Notebook", Category: "Stationery", Price: 3},
		{ID: "p3", Name: "Mystery", Price: 7}, // no category set
	}
	sales := []entity.Sale{
		saleOn(reference, 33, item("Hammer", 15, 2), item("Notebook", 3, 1)),
		saleOn(reference.AddDate(0, 0, -2), 21, item("Mystery", 7, 3)),
		saleOn(reference.AddDate(0, 0, -4), 9, item("Notebook", 3, 3)),
	}

	summary := Aggregate(products, sales, nil, 30, reference)

	var categoryRevenue float64
	for _, point := range summary.SalesByCategory {
		categoryRevenue += point.Revenue
	}
	assert.InDelta(t, summary.TotalRevenue, categoryRevenue, 1e-9)

	// A product with no category set lands in the default bucket.
	found := false
	for _, point := range summary.SalesByCategory {
		if point.Category == entity.DefaultCategory {
			found = true
			assert.Equal(t, 21.0, point.Revenue)
		}
	}
	assert.True(t, found)
}

func TestAggregateDeletedProductFallsBackToDefaultCategory(t *testing.T) {
	// The sold product is gone from the current inventory.
	sales := []entity.Sale{
		saleOn(reference, 50, item("Discontinued", 50, 1)),
	}

	summary := Aggregate([]entity.Product{}, sales, nil, 7, reference)

	require.Len(t, summary.SalesByCategory, 1)
	assert.Equal(t, entity.DefaultCategory, summary.SalesByCategory[0].Category)
	assert.Equal(t, 50.0, summary.SalesByCategory[0].Revenue)
}

func TestAggregateWindowBoundary(t *testing.T) {
	windowDays := 7
	cutoffDay := reference.AddDate(0, 0, -(windowDays - 1))
	onCutoff := time.Date(cutoffDay.Year(), cutoffDay.Month(), cutoffDay.Day(), 0, 0, 0, 0, time.UTC)

	sales := []entity.Sale{
		saleOn(onCutoff, 10, item("Kept", 10, 1)),
		saleOn(onCutoff.Add(-time.Second), 99, item("Dropped", 99, 1)),
	}

	summary := Aggregate(nil, sales, nil, windowDays, reference)

	assert.Equal(t, 10.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TotalSales)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Kept", summary.TopProducts[0].Name)
}

func TestAggregateMixedZoneSeriesSumsToTotal(t *testing.T) {
	// Stored records carry UTC timestamps while the server clock runs ahead
	// of UTC. A sale landing exactly on the cutoff instant must appear in
	// both the totals and the daily series.
	east := time.FixedZone("UTC+5", 5*60*60)
	ref := time.Date(2024, 5, 15, 14, 30, 0, 0, east)
	// Cutoff for a 7-day window is 2024-05-09T00:00:00+05:00.
	onCutoff := time.Date(2024, 5, 8, 19, 0, 0, 0, time.UTC)

	sales := []entity.Sale{
		saleOn(onCutoff, 10, item("Widget", 10, 1)),
		saleOn(time.Date(2024, 5, 14, 23, 30, 0, 0, time.UTC), 20, item("Gadget", 20, 1)),
	}

	summary := Aggregate(nil, sales, nil, 7, ref)

	assert.Equal(t, 30.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.TotalSales)

	var seriesRevenue float64
	var seriesCount int
	for _, point := range summary.SalesByDay {
		seriesRevenue += point.Revenue
		seriesCount += point.Sales
	}
	assert.InDelta(t, summary.TotalRevenue, seriesRevenue, 1e-9)
	assert.Equal(t, summary.TotalSales, seriesCount)

	// The cutoff sale falls on the oldest series day in the reference zone.
	assert.Equal(t, 1, summary.SalesByDay[0].Sales)
	assert.Equal(t, 10.0, summary.SalesByDay[0].Revenue)
}

func TestAggregateOldSaleExcludedButNewCustomerCounted(t *testing.T) {
	oldSale := saleOn(reference.AddDate(0, 0, -40), 120, item("Drill", 120, 1))
	oldSale.CustomerName = "Jordan"
	oldSale.CustomerEmail = "jordan@example.com"

	customers := []entity.Customer{
		{
			ID:        "c1",
			Name:      "Jordan",
			Email:     "jordan@example.com",
			CreatedAt: reference.AddDate(0, 0, -2),
		},
	}

	summary := Aggregate(nil, []entity.Sale{oldSale}, customers, 30, reference)

	// The sale is outside the window everywhere...
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalSales)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.SalesByCategory)

	// ...but the cohort counts use the customer's own creation timestamp.
	assert.Equal(t, 1, summary.CustomerStats.TotalCustomers)
	assert.Equal(t, 1, summary.CustomerStats.NewCustomers)
	assert.Zero(t, summary.CustomerStats.ReturningCustomers)
}

func TestAggregateCustomerCohorts(t *testing.T) {
	mkSale := func(daysAgo int, name, email string) entity.Sale {
		s := saleOn(reference.AddDate(0, 0, -daysAgo), 10, item("Widget", 10, 1))
		s.CustomerName = name
		s.CustomerEmail = email
		return s
	}
	sales := []entity.Sale{
		mkSale(1, "Alex", "alex@example.com"),
		mkSale(100, "Alex", "alex@example.com"), // old sales still count toward returning
		mkSale(2, "Sam", ""),                    // no email: name fallback
		mkSale(3, "Sam", ""),
		mkSale(4, "Riley", "riley@example.com"),
	}
	customers := []entity.Customer{
		{ID: "c1", Name: "Alex", Email: "alex@example.com", CreatedAt: reference.AddDate(0, 0, -100)},
		{ID: "c2", Name: "Sam", Email: "sam@example.com", CreatedAt: reference.AddDate(0, 0, -3)},
		{ID: "c3", Name: "Riley", Email: "riley@example.com", CreatedAt: reference.AddDate(0, 0, -60)},
	}

	summary := Aggregate(nil, sales, customers, 30, reference)

	assert.Equal(t, 3, summary.CustomerStats.TotalCustomers)
	assert.Equal(t, 2, summary.CustomerStats.ReturningCustomers) // Alex and Sam
	assert.Equal(t, 1, summary.CustomerStats.NewCustomers)       // Sam joined in window
}

func TestAggregateIsDeterministic(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Name: "Widget", Category: "Tools", Price: 5},
	}
	sales := []entity.Sale{
		saleOn(reference, 30, item("Widget", 5, 2), item("Gadget", 20, 1)),
		saleOn(reference.AddDate(0, 0, -5), 15, item("Widget", 5, 3)),
	}
	customers := []entity.Customer{
		{ID: "c1", Name: "Alex", Email: "alex@example.com", CreatedAt: reference.AddDate(0, 0, -1)},
	}

	first := Aggregate(products, sales, customers, 30, reference)
	second := Aggregate(products, sales, customers, 30, reference)

	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	products := []entity.Product{{ID: "p1", Name: "Widget", Category: "Tools", Price: 5, Stock: 3}}
	sales := []entity.Sale{saleOn(reference, 10, item("Widget", 5, 2))}

	before, err := json.Marshal(sales)
	require.NoError(t, err)

	Aggregate(products, sales, nil, 7, reference)

	after, err := json.Marshal(sales)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 3, products[0].Stock)
}

func TestAnalyticsServiceGetSummary(t *testing.T) {
	store := storage.NewMemoryStore()
	productRepo := repository.NewProductRepository(store)
	saleRepo := repository.NewSaleRepository(store)
	customerRepo := repository.NewCustomerRepository(store)

	ctx := context.Background()
	require.NoError(t, productRepo.Save(ctx, []entity.Product{
		{ID: "p1", Name: "Widget", Category: "Tools", Price: 5, Stock: 10},
	}))
	require.NoError(t, saleRepo.Save(ctx, []entity.Sale{
		saleOn(reference.AddDate(0, 0, -1), 10, item("Widget", 5, 2)),
	}))

	svc := NewAnalyticsService(productRepo, saleRepo, customerRepo).
		WithClock(func() time.Time { return reference })

	summary, err := svc.GetSummary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 10.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TotalSales)
	assert.Len(t, summary.SalesByDay, 7)
}

func TestAnalyticsServiceRejectsNonPositiveWindow(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAnalyticsService(
		repository.NewProductRepository(store),
		repository.NewSaleRepository(store),
		repository.NewCustomerRepository(store),
	)

	_, err := svc.GetSummary(context.Background(), 0)
	require.Error(t, err)
}
