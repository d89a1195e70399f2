// Package mockdata provides the fixed dashboard content bundled with the binary.
package mockdata

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// KPI is one dashboard indicator.
type KPI struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// RecentTicket is one row of the recent tickets table.
type RecentTicket struct {
	ID       int    `yaml:"id"`
	Client   string `yaml:"client"`
	Priority string `yaml:"priority"`
	Status   string `yaml:"status"`
}

// Dataset is the full dashboard content.
type Dataset struct {
	KPIs          []KPI          `yaml:"kpis"`
	RecentTickets []RecentTicket `yaml:"recent_tickets"`
}

//go:embed dashboard.yaml
var embeddedDashboard []byte

var defaultDataset = mustParse(embeddedDashboard)

// Default returns a copy of the embedded dataset.
func Default() Dataset {
	return defaultDataset.clone()
}

// Parse decodes a dataset document. Unknown fields are rejected.
func Parse(data []byte) (Dataset, error) {
	var out Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&out); err != nil {
		return Dataset{}, fmt.Errorf("decode dashboard data: %w", err)
	}
	for i, kpi := range out.KPIs {
		if kpi.Label == "" {
			return Dataset{}, fmt.Errorf("kpi %d: label is required", i)
		}
	}
	for i, ticket := range out.RecentTickets {
		if ticket.ID <= 0 {
			return Dataset{}, fmt.Errorf("ticket %d: id must be positive", i)
		}
	}
	return out, nil
}

func (d Dataset) clone() Dataset {
	return Dataset{
		KPIs:          append([]KPI(nil), d.KPIs...),
		RecentTickets: append([]RecentTicket(nil), d.RecentTickets...),
	}
}

func mustParse(data []byte) Dataset {
	dataset, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return dataset
}
