package service

import (
	"sort"

	"github.com/amontenegro/gadgethub-backend/internal/app/model"
	"github.com/amontenegro/gadgethub-backend/internal/app/repository"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
)

const (
	dashboardTopLimit    = 5
	dashboardRecentLimit = 5
	LowStockThreshold    = 5
)

// ProductSummary is the slim product shape embedded in dashboard rankings.
type ProductSummary struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	Category        model.ProductCategory `json:"category"`
	Price           float64               `json:"price"`
	PrimaryImageURL string                `json:"primary_image_url,omitempty"`
}

type TopInquiredProduct struct {
	Product      ProductSummary `json:"product"`
	InquiryCount int64          `json:"inquiry_count"`
}

type TopSellingProduct struct {
	Product      ProductSummary `json:"product"`
	UnitsSold    int64          `json:"units_sold"`
	TotalRevenue float64        `json:"total_revenue"`
}

type DashboardStats struct {
	TotalProducts       int64                `json:"total_products"`
	AvailableProducts   int64                `json:"available_products"`
	FeaturedProducts    int64                `json:"featured_products"`
	TotalInquiries      int64                `json:"total_inquiries"`
	PendingInquiries    int64                `json:"pending_inquiries"`
	CompletedSales      int64                `json:"completed_sales"`
	TotalRevenue        float64              `json:"total_revenue"`
	TopInquiredProducts []TopInquiredProduct `json:"top_inquired_products"`
	TopSellingProducts  []TopSellingProduct  `json:"top_selling_products"`
	RecentInquiries     []model.Inquiry      `json:"recent_inquiries"`
	RecentSales         []model.Sale         `json:"recent_sales"`
	LowStockProducts    []model.Product      `json:"low_stock_products"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	LowStockProducts() ([]model.Product, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	inquiryRepo repository.InquiryRepository
	saleRepo    repository.SaleRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	inquiryRepo repository.InquiryRepository,
	saleRepo repository.SaleRepository,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		inquiryRepo: inquiryRepo,
		saleRepo:    saleRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	logger.Debug("Computing dashboard stats", nil)

	productCounts, err := s.productRepo.Counts()
	if err != nil {
		return nil, err
	}
	inquiryCounts, err := s.inquiryRepo.Counts()
	if err != nil {
		return nil, err
	}
	completedSales, err := s.saleRepo.CountCompleted()
	if err != nil {
		return nil, err
	}

	inquiryRefs, err := s.inquiryRepo.ListProductRefs()
	if err != nil {
		return nil, err
	}
	saleRefs, err := s.saleRepo.ListCompletedRefs()
	if err != nil {
		return nil, err
	}

	inquiredCounts := TopInquiredCounts(inquiryRefs, dashboardTopLimit)
	sellingTotals := TopSellingTotals(saleRefs, dashboardTopLimit)

	summaries, err := s.productSummaries(inquiredCounts, sellingTotals)
	if err != nil {
		return nil, err
	}

	topInquired := make([]TopInquiredProduct, 0, len(inquiredCounts))
	for _, rc := range inquiredCounts {
		summary, ok := summaries[rc.ProductID]
		if !ok {
			continue
		}
		topInquired = append(topInquired, TopInquiredProduct{
			Product:      summary,
			InquiryCount: rc.Count,
		})
	}

	topSelling := make([]TopSellingProduct, 0, len(sellingTotals))
	for _, rt := range sellingTotals {
		summary, ok := summaries[rt.ProductID]
		if !ok {
			continue
		}
		topSelling = append(topSelling, TopSellingProduct{
			Product:      summary,
			UnitsSold:    rt.Units,
			TotalRevenue: rt.Revenue,
		})
	}

	recentInquiries, err := s.inquiryRepo.FindRecent(dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	recentSales, err := s.saleRepo.FindRecent(dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.FindLowStock(LowStockThreshold, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	// Empty lists serialize as [] rather than null
	if recentInquiries == nil {
		recentInquiries = []model.Inquiry{}
	}
	if recentSales == nil {
		recentSales = []model.Sale{}
	}
	if lowStock == nil {
		lowStock = []model.Product{}
	}

	return &DashboardStats{
		TotalProducts:       productCounts.Total,
		AvailableProducts:   productCounts.Available,
		FeaturedProducts:    productCounts.Featured,
		TotalInquiries:      inquiryCounts.Total,
		PendingInquiries:    inquiryCounts.Pending,
		CompletedSales:      completedSales,
		TotalRevenue:        TotalRevenue(saleRefs),
		TopInquiredProducts: topInquired,
		TopSellingProducts:  topSelling,
		RecentInquiries:     recentInquiries,
		RecentSales:         recentSales,
		LowStockProducts:    lowStock,
	}, nil
}

func (s *dashboardService) LowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock(LowStockThreshold, 0)
}

func (s *dashboardService) productSummaries(
	inquired []InquiryCount,
	selling []SellingTotal,
) (map[uint]ProductSummary, error) {
	idSet := make(map[uint]struct{})
	for _, rc := range inquired {
		idSet[rc.ProductID] = struct{}{}
	}
	for _, rt := range selling {
		idSet[rt.ProductID] = struct{}{}
	}
	if len(idSet) == 0 {
		return map[uint]ProductSummary{}, nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[uint]ProductSummary, len(products))
	for _, p := range products {
		summaries[p.ID] = ProductSummary{
			ID:              p.ID,
			Name:            p.Name,
			Category:        p.Category,
			Price:           p.Price,
			PrimaryImageURL: p.PrimaryImageURL(),
		}
	}
	return summaries, nil
}

// InquiryCount is a product's inquiry tally in ranked order.
type InquiryCount struct {
	ProductID uint
	Count     int64
}

// SellingTotal is a product's completed-sale totals in ranked order.
type SellingTotal struct {
	ProductID uint
	Units     int64
	Revenue   float64
}

// TopInquiredCounts tallies inquiries per product and returns the top entries
// by count descending. Ties keep first-seen order of the input rows.
func TopInquiredCounts(productIDs []uint, limit int) []InquiryCount {
	counts := make(map[uint]int64)
	order := make([]uint, 0)
	for _, id := range productIDs {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	ranked := make([]InquiryCount, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, InquiryCount{ProductID: id, Count: counts[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopSellingTotals sums units and revenue per product over completed sales and
// returns the top entries by units descending. A zero quantity counts as one
// unit. Sales without a product are skipped. Ties keep first-seen order.
func TopSellingTotals(refs []repository.CompletedSaleRef, limit int) []SellingTotal {
	totals := make(map[uint]*SellingTotal)
	order := make([]uint, 0)
	for _, ref := range refs {
		if ref.ProductID == nil {
			continue
		}
		id := *ref.ProductID
		qty := int64(ref.Quantity)
		if qty <= 0 {
			qty = 1
		}
		t, seen := totals[id]
		if !seen {
			t = &SellingTotal{ProductID: id}
			totals[id] = t
			order = append(order, id)
		}
		t.Units += qty
		t.Revenue += ref.SaleAmount
	}

	ranked := make([]SellingTotal, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *totals[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Units > ranked[j].Units
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TotalRevenue sums the amounts of completed sales.
func TotalRevenue(refs []repository.CompletedSaleRef) float64 {
	var total float64
	for _, ref := range refs {
		total += ref.SaleAmount
	}
	return total
}
