package service

import (
	"context"

	"github.com/swechhitarimal/SMS/internal/domain/entity"
	"github.com/swechhitarimal/SMS/internal/domain/repository"
)

// RecentSaleLimit is how many recent sales the dashboard shows.
const RecentSaleLimit = 5

// DashboardService provides the overview statistics for the landing page.
type DashboardService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// DashboardStats represents the overview statistics.
type DashboardStats struct {
	TotalProducts  int              `json:"total_products"`
	TotalSales     int              `json:"total_sales"`
	TotalCustomers int              `json:"total_customers"`
	Revenue        float64          `json:"revenue"`
	LowStockCount  int              `json:"low_stock_count"`
	LowStockItems  []entity.Product `json:"low_stock_items"`
	RecentSales    []entity.Sale    `json:"recent_sales"`
}

// GetStats returns the overview statistics: collection counts, all-time
// revenue, low-stock alerts, and the most recent sales.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
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

	stats := &DashboardStats{
		TotalProducts:  len(products),
		TotalSales:     len(sales),
		TotalCustomers: len(customers),
		LowStockItems:  []entity.Product{},
		RecentSales:    []entity.Sale{},
	}

	for _, sale := range sales {
		stats.Revenue += sale.Total
	}

	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		stats.LowStockCount++
		if len(stats.LowStockItems) < RecentSaleLimit {
			stats.LowStockItems = append(stats.LowStockItems, p)
		}
	}

	// The sales collection is newest first.
	recent := sales
	if len(recent) > RecentSaleLimit {
		recent = recent[:RecentSaleLimit]
	}
	stats.RecentSales = append(stats.RecentSales, recent...)

	return stats, nil
}
