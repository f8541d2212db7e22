package dto

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	TotalEquipment      int `json:"total_equipment"` // suma de cantidades
	PendingMaintenances int `json:"pending_maintenances"`
	CompletedThisMonth  int `json:"completed_this_month"`
	Customers           int `json:"customers"`
	UnderWarranty       int `json:"under_warranty"`
	ExpiringSoon        int `json:"expiring_soon"`

	RecentMaintenances []MaintenanceResponse `json:"recent_maintenances"` // últimas 3
	UpcomingWarranties []UpcomingWarrantyDTO `json:"upcoming_warranties"` // próximas 5
	MonthlyCompleted   []MonthlyCountDTO     `json:"monthly_completed"`   // últimos 6 meses
}

// UpcomingWarrantyDTO garantía próxima a vencer.
type UpcomingWarrantyDTO struct {
	EquipmentID   string      `json:"equipment_id"`
	Name          string      `json:"name"`
	SKU           string      `json:"sku"`
	CustomerName  string      `json:"customer_name,omitempty"`
	WarrantyUntil Date        `json:"warranty_until"`
	Warranty      WarrantyDTO `json:"warranty"`
}

// MonthlyCountDTO punto de la serie mensual (Month = "2024-06", Label = "jun").
type MonthlyCountDTO struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
