package model

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalUsers          int   `json:"totalUsers"`
	ActiveContractors   int   `json:"activeContractors"`
	ActiveCustomers     int   `json:"activeCustomers"`
	OpenJobs            int   `json:"openJobs"`
	OpenDisputes        int   `json:"openDisputes"`
	ActiveSubscriptions int   `json:"activeSubscriptions"`
	RevenueThisMonth    Money `json:"revenueThisMonth"`
	CommissionThisMonth Money `json:"commissionThisMonth"`
}

// PlatformSettings are backend-owned platform knobs shown next to the stats.
type PlatformSettings struct {
	CommissionRate  float64 `json:"commissionRate"`
	VATRate         float64 `json:"vatRate"`
	LeadPrice       Money   `json:"leadPrice"`
	WeeklyCredits   int     `json:"weeklyCredits"`
	MaintenanceMode bool    `json:"maintenanceMode"`
	SupportEmail    string  `json:"supportEmail,omitempty"`
}
