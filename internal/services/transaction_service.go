package services

import (
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates one business day of settled restaurant orders.
type SalesSummary struct {
	Date              string        `json:"date"`
	TotalSales        float64       `json:"totalSales"`
	TotalOrders       int           `json:"totalOrders"`
	TakeawayOrders    int           `json:"takeawayOrders"`
	AverageOrderValue float64       `json:"averageOrderValue"`
	Hourly            []HourlySales `json:"hourly"`
}

// HourlySales is the sales total of one clock hour, 0-23 in business time.
type HourlySales struct {
	Hour   int     `json:"hour"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// TransactionService exposes the settlement history.
type TransactionService interface {
	GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int, error)
	GetTransaction(id string) (*models.Transaction, error)
	GetSalesSummary(date string) (*SalesSummary, error)
}

type transactionService struct {
	runner  repositories.TxRunner
	txnRepo repositories.TransactionRepository
	loc     *time.Location
	now     func() time.Time
}

// NewTransactionService creates a new instance of TransactionService. Sales
// days are cut at midnight in loc.
func NewTransactionService(runner repositories.TxRunner, txnRepo repositories.TransactionRepository, loc *time.Location) TransactionService {
	if loc == nil {
		loc = time.Local
	}
	return &transactionService{runner: runner, txnRepo: txnRepo, loc: loc, now: time.Now}
}

func (s *transactionService) GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 200 {
		filters.PageSize = 50
	}
	txns, total, err := s.txnRepo.GetTransactions(s.runner.Executor(), filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "listing transactions")
	}
	return txns, total, nil
}

func (s *transactionService) GetTransaction(id string) (*models.Transaction, error) {
	txn, err := s.txnRepo.GetTransactionByID(s.runner.Executor(), id)
	if err != nil {
		return nil, repoError(err, ErrTransactionNotFound, "getting transaction")
	}
	return txn, nil
}

// GetSalesSummary totals the transactions of date (YYYY-MM-DD). An empty
// date means today.
func (s *transactionService) GetSalesSummary(date string) (*SalesSummary, error) {
	var day time.Time
	if date == "" {
		day = truncateToDay(s.now(), s.loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", ErrValidation, err)
		}
		day = parsed
	}
	next := day.AddDate(0, 0, 1)

	txns, _, err := s.txnRepo.GetTransactions(s.runner.Executor(), models.TransactionFilters{From: &day, To: &next})
	if err != nil {
		return nil, repoError(err, nil, "listing transactions for sales summary")
	}

	summary := &SalesSummary{Date: day.Format("2006-01-02"), Hourly: make([]HourlySales, 24)}
	hourly := make([]decimal.Decimal, 24)
	total := decimal.Zero
	for _, txn := range txns {
		amount := decimal.NewFromFloat(txn.TotalAmount)
		hour := txn.Timestamp.In(s.loc).Hour()
		hourly[hour] = hourly[hour].Add(amount)
		summary.Hourly[hour].Orders++
		total = total.Add(amount)
		if txn.IsTakeaway {
			summary.TakeawayOrders++
		}
	}
	for h := range summary.Hourly {
		summary.Hourly[h].Hour = h
		summary.Hourly[h].Sales = hourly[h].Round(2).InexactFloat64()
	}
	summary.TotalOrders = len(txns)
	summary.TotalSales = total.Round(2).InexactFloat64()
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = total.Div(decimal.NewFromInt(int64(summary.TotalOrders))).Round(2).InexactFloat64()
	}
	return summary, nil
}
