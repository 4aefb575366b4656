package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMachineStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want MachineStatus
	}{
		{"Operational", StatusOperational},
		{"operational", StatusOperational},
		{" OPERATIONAL ", StatusOperational},
		{"Under Maintenance", StatusUnderMaintenance},
		{"undermaintenance", StatusUnderMaintenance},
		{"UNDER MAINTENANCE", StatusUnderMaintenance},
		{"maintenance", StatusUnderMaintenance},
		{"Offline", StatusOffline},
		{"  offline", StatusOffline},
	}
	for _, tc := range cases {
		got, err := ParseMachineStatus(tc.raw)
		require.NoError(t, err, "input %q", tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}

func TestParseMachineStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "broken", "op", "online", "maintenanced"} {
		_, err := ParseMachineStatus(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
