package engine

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"shiplate/internal/shipment"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "chaos" or "drift"
	Distribution string // "uniform" or "weibull"
	Count        int
	Seed         int64
	Now          time.Time
}

var (
	suppliers = []string{"Acme", "Beta Freight", "Cobalt Parts", "Delta Supply", "Evergreen"}
	carriers  = []string{"UPS", "DHL", "FedEx", "Maersk"}
	handoffs  = []string{"Dock A", "Dock B", "Customs", "Cross-dock", "Last mile"}
)

// Chaos routes a large share of shipments through one supplier and one handoff
// point and delays them, so the bottleneck tables have a clear leader.
const (
	bottleneckSupplier = "Cobalt Parts"
	bottleneckHandoff  = "Customs"
)

// Header is the column order of generated exports.
var Header = []string{
	shipment.FieldShipmentID,
	shipment.FieldPO,
	shipment.FieldSupplier,
	shipment.FieldCarrier,
	shipment.FieldStatus,
	shipment.FieldPlannedDelivery,
	shipment.FieldActualDelivery,
	shipment.FieldHandoffPoint,
}

func Generate(cfg GeneratorConfig) shipment.Table {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	today := shipment.Today(cfg.Now)

	table := shipment.Table{Header: Header}

	// One shipment planned per day, the last one due two weeks from today.
	firstPlanned := today.AddDays(14 - cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		planned := firstPlanned.AddDays(i)
		supplier := suppliers[rng.Intn(len(suppliers))]
		handoff := handoffs[rng.Intn(len(handoffs))]

		// 1. Determine Parameters
		k, lambda := 2.5, 3.0 // Mild: most shipments within a few days of plan
		switch cfg.Scenario {
		case "chaos":
			k = 0.8
			if rng.Float64() < 0.4 {
				supplier = bottleneckSupplier
				handoff = bottleneckHandoff
				lambda = 12.0
			}
		case "drift":
			ratio := float64(i) / float64(cfg.Count)
			k = 2.5 - (1.7 * ratio) // Shift 2.5 -> 0.8
			lambda = 3.0 + (6.0 * ratio)
		}

		// 2. Sample the transit offset against plan, negative means early
		var offset float64
		if cfg.Distribution == "weibull" {
			offset = weibullSample(rng, k, lambda) - lambda*0.6
		} else {
			offset = -3.0 + rng.Float64()*6.0
			if cfg.Scenario == "chaos" && supplier == bottleneckSupplier {
				offset += 5 + rng.Float64()*15
			}
			if cfg.Scenario == "drift" && i > cfg.Count/2 {
				offset += 4
			}
		}
		arrival := planned.AddDays(int(math.Round(offset)))

		// 3. Shipments arriving after today are still open
		status, actual := "delivered", arrival.String()
		if today.DaysUntil(arrival) > 0 {
			status, actual = "in_transit", ""
			if planned.DaysUntil(today) > 0 {
				status = "delayed"
			}
		}

		fields := map[string]string{
			shipment.FieldShipmentID:      fmt.Sprintf("SHP-%05d", i+1),
			shipment.FieldPO:              fmt.Sprintf("PO-%d", 4000+rng.Intn(900)),
			shipment.FieldSupplier:        supplier,
			shipment.FieldCarrier:         carriers[rng.Intn(len(carriers))],
			shipment.FieldStatus:          status,
			shipment.FieldPlannedDelivery: planned.String(),
			shipment.FieldActualDelivery:  actual,
			shipment.FieldHandoffPoint:    handoff,
		}

		// 4. Chaos also damages the export the way real ones get damaged
		if cfg.Scenario == "chaos" {
			switch r := rng.Float64(); {
			case r < 0.03:
				fields[shipment.FieldPlannedDelivery] = "TBD"
			case r < 0.06:
				fields[shipment.FieldSupplier] = ""
			case r < 0.09:
				fields[shipment.FieldHandoffPoint] = ""
			}
		}

		table.Rows = append(table.Rows, shipment.Row{Fields: fields})
	}

	return table
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes the table as a CSV export and returns its path.
func Save(outDir string, name string, table shipment.Table) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, name+".csv")
	if err := os.WriteFile(path, []byte(shipment.Format(table)), 0644); err != nil {
		return "", err
	}
	return path, nil
}
