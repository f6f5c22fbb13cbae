package services

import (
	"context"
	"sort"
	"time"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/entity"
)

const topItemLimit = 5

// ItemSales is one row of the top-selling-items table.
type ItemSales struct {
	MenuName string  `json:"menuName"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesReport summarizes the orders whose creation time falls inside the
// requested window. Revenue figures are tax-inclusive and only count paid
// orders; tax is re-derived from subtotals, never read from storage.
type SalesReport struct {
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	TotalOrders     int         `json:"totalOrders"`
	CompletedOrders int         `json:"completedOrders"`
	CancelledOrders int         `json:"cancelledOrders"`
	PaidOrders      int         `json:"paidOrders"`
	CashPayments    int         `json:"cashPayments"`
	QRPayments      int         `json:"qrPayments"`
	TotalRevenue    float64     `json:"totalRevenue"`
	TotalTax        float64     `json:"totalTax"`
	TopItems        []ItemSales `json:"topItems"`
}

type ReportService struct {
	API *client.Client
}

func NewReportService(api *client.Client) *ReportService {
	return &ReportService{API: api}
}

// SalesReport aggregates the order history for [start, end]. The end of
// the window is inclusive through end-of-day.
func (s *ReportService) SalesReport(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	orders, err := s.API.Orders(ctx)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
	sold := map[string]*ItemSales{}

	for _, o := range orders {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		report.TotalOrders++

		switch o.Status {
		case entity.StatusCompleted:
			report.CompletedOrders++
		case entity.StatusCancelled:
			report.CancelledOrders++
		}

		if o.PaymentStatus != entity.PaymentPaid {
			continue
		}
		report.PaidOrders++
		report.TotalRevenue += o.FinalAmount()
		report.TotalTax += o.Tax()

		switch o.PaymentMethod {
		case entity.MethodCash:
			report.CashPayments++
		case entity.MethodQR:
			report.QRPayments++
		}

		for _, it := range o.Items {
			row := sold[it.MenuName]
			if row == nil {
				row = &ItemSales{MenuName: it.MenuName}
				sold[it.MenuName] = row
			}
			row.Quantity += it.Quantity
			row.Revenue += it.Subtotal()
		}
	}

	for _, row := range sold {
		report.TopItems = append(report.TopItems, *row)
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		if report.TopItems[i].Quantity != report.TopItems[j].Quantity {
			return report.TopItems[i].Quantity > report.TopItems[j].Quantity
		}
		return report.TopItems[i].MenuName < report.TopItems[j].MenuName
	})
	if len(report.TopItems) > topItemLimit {
		report.TopItems = report.TopItems[:topItemLimit]
	}

	return report, nil
}
