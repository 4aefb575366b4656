package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is the fixed-shape report behind the admin dashboard:
// headline figures, status breakdowns, the five most recent orders and the
// seven-month chart series (oldest month first).
type DashboardSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`

	NewCustomers   int64   `json:"newCustomers"`
	ActiveAccounts int64   `json:"activeAccounts"`
	GrowthRate     float64 `json:"growthRate"`

	OperationalMachines      int64 `json:"operationalMachines"`
	MachinesUnderMaintenance int64 `json:"machinesUnderMaintenance"`
	OfflineMachines          int64 `json:"offlineMachines"`

	PendingOrders    int64 `json:"pendingOrders"`
	InProgressOrders int64 `json:"inProgressOrders"`
	CompletedOrders  int64 `json:"completedOrders"`

	RecentOrders []RecentOrder `json:"recentOrders"`

	MonthlySales          []decimal.Decimal `json:"monthlySales"`
	MonthlyCustomerGrowth []int64           `json:"monthlyCustomerGrowth"`

	MachineTypeSummary []MachineTypeSummary `json:"machineTypeSummary"`
}

// RecentOrder is a CustomerOrder joined with its product and buyer for display.
type RecentOrder struct {
	OrderID     uint            `json:"orderId"`
	ProductName string          `json:"productName"`
	Username    string          `json:"username"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
}

// MachineTypeSummary gives per-type totals with a per-status breakdown.
type MachineTypeSummary struct {
	MachineType      string `json:"machineType"`
	Total            int64  `json:"total"`
	Operational      int64  `json:"operational"`
	UnderMaintenance int64  `json:"underMaintenance"`
	Offline          int64  `json:"offline"`
}
