package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateStatusRequest arrives as form fields from the machine status modal.
type UpdateStatusRequest struct {
	Status string `form:"status" validate:"required"`
}

// LogIssueRequest arrives as form fields from the issue report modal.
type LogIssueRequest struct {
	IssueType   string `form:"issueType"   validate:"required"`
	Severity    string `form:"severity"    validate:"required,oneof=Low Medium High Critical"`
	Description string `form:"description" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UpdateStatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type LogIssueResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ShouldMarkOffline bool   `json:"shouldMarkOffline"`
}

type MachineResponse struct {
	MachineID   uint   `json:"machineId"`
	MachineName string `json:"machineName"`
	MachineType string `json:"machineType"`
	Status      string `json:"status"`
}

// MachineDetails is the modal snapshot: machine fields plus the last ten
// audit rows, newest first.
type MachineDetails struct {
	Success            bool              `json:"success"`
	MachineID          uint              `json:"machineId"`
	MachineName        string            `json:"machineName"`
	MachineType        string            `json:"machineType"`
	Status             string            `json:"status"`
	LastMaintenance    string            `json:"lastMaintenance"`
	ImagePath          string            `json:"imagePath"`
	MaintenanceHistory []MachineLogEntry `json:"maintenanceHistory"`
}

type MachineLogEntry struct {
	Date        string `json:"date"`
	Action      string `json:"action"`
	PerformedBy string `json:"performedBy"`
}

// MachineStats aggregates fleet counts per canonical status.
type MachineStats struct {
	TotalMachines    int64 `json:"totalMachines"`
	Operational      int64 `json:"operational"`
	UnderMaintenance int64 `json:"underMaintenance"`
	Offline          int64 `json:"offline"`
}
