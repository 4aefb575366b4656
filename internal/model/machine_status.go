package model

import (
	"fmt"
	"strings"
)

// MachineStatus is the closed set of machine states. Only the three canonical
// strings below are ever persisted; all free-text input goes through
// ParseMachineStatus first.
type MachineStatus string

const (
	StatusOperational      MachineStatus = "Operational"
	StatusUnderMaintenance MachineStatus = "Under Maintenance"
	StatusOffline          MachineStatus = "Offline"
)

// AllMachineStatuses in display order.
var AllMachineStatuses = []MachineStatus{StatusOperational, StatusUnderMaintenance, StatusOffline}

// ParseMachineStatus normalizes free-text status input: lower-cased and with
// every space removed, "operational" / "undermaintenance" / "maintenance" /
// "offline" map to their canonical forms. Anything else is rejected with an
// error naming the raw input received.
func ParseMachineStatus(raw string) (MachineStatus, error) {
	switch strings.ReplaceAll(strings.ToLower(raw), " ", "") {
	case "operational":
		return StatusOperational, nil
	case "undermaintenance", "maintenance":
		return StatusUnderMaintenance, nil
	case "offline":
		return StatusOffline, nil
	default:
		return "", fmt.Errorf("invalid machine status %q", raw)
	}
}

func (s MachineStatus) String() string { return string(s) }
