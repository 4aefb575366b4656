package service

import (
	"context"
	"math"
	"time"

	"optiops/internal/dto"
	"optiops/internal/model"
	"optiops/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// monthlyBuckets is the number of calendar months covered by the chart
// series, current month included.
const monthlyBuckets = 7

const recentOrderLimit = 5

type DashboardService interface {
	// BuildSummary computes the full dashboard report as of the given time.
	// Sub-queries run concurrently; any failure fails the whole summary.
	BuildSummary(ctx context.Context, asOf time.Time) (*dto.DashboardSummary, error)
	// UserStats powers the user-management stat cards. Its growth rate is
	// period-over-period, unlike the summary's share-of-total rate.
	UserStats(ctx context.Context, asOf time.Time) (*dto.UserStatsResponse, error)
}

type dashboardService struct {
	users            repository.UserRepository
	machines         repository.MachineRepository
	customerOrders   repository.CustomerOrderRepository
	productionOrders repository.ProductionOrderRepository
}

func NewDashboardService(
	users repository.UserRepository,
	machines repository.MachineRepository,
	customerOrders repository.CustomerOrderRepository,
	productionOrders repository.ProductionOrderRepository,
) DashboardService {
	return &dashboardService{
		users:            users,
		machines:         machines,
		customerOrders:   customerOrders,
		productionOrders: productionOrders,
	}
}

// monthStart returns midnight on the first day of t's calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *dashboardService) BuildSummary(ctx context.Context, asOf time.Time) (*dto.DashboardSummary, error) {
	summary := &dto.DashboardSummary{
		MonthlySales:          make([]decimal.Decimal, monthlyBuckets),
		MonthlyCustomerGrowth: make([]int64, monthlyBuckets),
	}

	g, gctx := errgroup.WithContext(ctx)

	// Lifetime revenue — deliberately no date filter.
	g.Go(func() error {
		var err error
		summary.TotalRevenue, err = s.customerOrders.SumTotalAmount(gctx)
		return err
	})

	// New customers in the trailing 30 days, plus the growth rate base.
	g.Go(func() error {
		newCustomers, err := s.users.CountCreatedBetween(gctx, asOf.AddDate(0, 0, -30), asOf)
		if err != nil {
			return err
		}
		active, err := s.users.Count(gctx)
		if err != nil {
			return err
		}
		summary.NewCustomers = newCustomers
		summary.ActiveAccounts = active
		if active > 0 {
			summary.GrowthRate = float64(newCustomers) / float64(active) * 100
		}
		return nil
	})

	// Machine counts per canonical status.
	g.Go(func() error {
		var err error
		if summary.OperationalMachines, err = s.machines.CountByStatus(gctx, model.StatusOperational); err != nil {
			return err
		}
		if summary.MachinesUnderMaintenance, err = s.machines.CountByStatus(gctx, model.StatusUnderMaintenance); err != nil {
			return err
		}
		summary.OfflineMachines, err = s.machines.CountByStatus(gctx, model.StatusOffline)
		return err
	})

	// Production order counts per status.
	g.Go(func() error {
		var err error
		if summary.PendingOrders, err = s.productionOrders.CountByStatus(gctx, model.OrderPending); err != nil {
			return err
		}
		if summary.InProgressOrders, err = s.productionOrders.CountByStatus(gctx, model.OrderInProgress); err != nil {
			return err
		}
		summary.CompletedOrders, err = s.productionOrders.CountByStatus(gctx, model.OrderCompleted)
		return err
	})

	// Five most recent customer orders, joined for display.
	g.Go(func() error {
		orders, err := s.customerOrders.Recent(gctx, recentOrderLimit)
		if err != nil {
			return err
		}
		recent := make([]dto.RecentOrder, len(orders))
		for i, o := range orders {
			productName, username := "", ""
			if o.Product != nil {
				productName = o.Product.Name
			}
			if o.User != nil {
				username = o.User.Username
			}
			recent[i] = dto.RecentOrder{
				OrderID:     o.ID,
				ProductName: productName,
				Username:    username,
				Quantity:    o.Quantity,
				TotalAmount: o.TotalAmount,
				OrderDate:   o.OrderDate,
			}
		}
		summary.RecentOrders = recent
		return nil
	})

	// Monthly series: bucket i covers the calendar month (monthlyBuckets-1-i)
	// months before asOf's month, so index 0 is the oldest.
	for i := monthlyBuckets - 1; i >= 0; i-- {
		i := i
		start := monthStart(asOf).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		g.Go(func() error {
			sum, err := s.customerOrders.SumTotalAmountBetween(gctx, start, end)
			if err != nil {
				return err
			}
			summary.MonthlySales[monthlyBuckets-1-i] = sum
			return nil
		})
		g.Go(func() error {
			n, err := s.users.CountCreatedBetween(gctx, start, end)
			if err != nil {
				return err
			}
			summary.MonthlyCustomerGrowth[monthlyBuckets-1-i] = n
			return nil
		})
	}

	// Machine-type breakdown.
	g.Go(func() error {
		rows, err := s.machines.TypeSummary(gctx)
		if err != nil {
			return err
		}
		summary.MachineTypeSummary = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *dashboardService) UserStats(ctx context.Context, asOf time.Time) (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.AdminUsers, err = s.users.CountByRole(gctx, model.RoleAdmin)
		return err
	})
	g.Go(func() error {
		var err error
		stats.WorkerUsers, err = s.users.CountByRole(gctx, model.RoleWorker)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CustomerUsers, err = s.users.CountByRole(gctx, model.RoleCustomer)
		return err
	})

	var newUsers, previousPeriod int64
	thirtyDaysAgo := asOf.AddDate(0, 0, -30)
	g.Go(func() error {
		var err error
		newUsers, err = s.users.CountCreatedBetween(gctx, thirtyDaysAgo, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		previousPeriod, err = s.users.CountCreatedBetween(gctx, thirtyDaysAgo.AddDate(0, 0, -30), thirtyDaysAgo)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.NewUsers = newUsers
	if previousPeriod > 0 {
		rate := (float64(newUsers) - float64(previousPeriod)) / float64(previousPeriod) * 100
		stats.GrowthRate = math.Round(rate*10) / 10
	}
	return stats, nil
}
