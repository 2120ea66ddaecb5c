package service

import (
	"context"
)

const maxDiagnosticLen = 80

type Diagnostics struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
}

// Diagnose probes the store. Errors are reported inside the result instead of
// being returned, so the probe itself never fails.
func (s *Service) Diagnose(ctx context.Context) Diagnostics {
	d := Diagnostics{
		Backend:     "✅ Running",
		Database:    "❌ Not Available",
		Collections: []string{},
	}
	if !s.Available() {
		return d
	}

	d.Database = "✅ Connected"
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		d.Database = "⚠️ Error: " + truncate(err.Error(), maxDiagnosticLen)
		return d
	}
	if names != nil {
		d.Collections = names
	}
	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
