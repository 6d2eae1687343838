package simulation

import (
	"context"
	"math"
	"testing"

	"github.com/gridsim/meritsim/core/model"
)

const priceTol = 1e-9

// thermalScenario builds a scenario with no renewables so that net demand
// equals demand.
func thermalScenario(demand []float64, pencePerTherm float64, plants []model.ThermalPlant) model.Scenario {
	sc := model.Scenario{GasPlants: plants}
	hours := make([]model.Hour, len(demand))
	for i, d := range demand {
		h := model.Hour(i + 1)
		hours[i] = h
		sc.Demand = append(sc.Demand, model.DemandPoint{Hour: h, DemandMWh: d})
		sc.GasPrices = append(sc.GasPrices, model.GasPricePoint{Hour: h, PencePerTherm: pencePerTherm})
	}
	sc.WindLoadFactors = model.LoadFactorTable{Hours: hours}
	sc.SolarLoadFactors = model.LoadFactorTable{Hours: hours}
	return sc
}

func mustRun(t *testing.T, cfg Config, sc model.Scenario) *model.Result {
	t.Helper()
	res, err := NewEngine(cfg, nil).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestDispatch_SingleUnitClearing(t *testing.T) {
	// 100 MW at efficiency 0.5, gas at 50 p/therm: fuel 17.0605 GBP/MWh,
	// bid 34.121 GBP/MWh.
	sc := thermalScenario([]float64{60}, 50, []model.ThermalPlant{
		{Name: "ccgt", CapacityMW: 100, Efficiency: 0.5},
	})
	res := mustRun(t, Config{}, sc)

	r := res.Hourly[0]
	if math.Abs(r.GasGeneratedMWh-60) > priceTol {
		t.Errorf("gas generated: got %v, want 60", r.GasGeneratedMWh)
	}
	if math.Abs(r.MarginalPriceGBP-34.121) > 1e-6 {
		t.Errorf("marginal price: got %v, want 34.121", r.MarginalPriceGBP)
	}
	if r.SupplyShortageMWh != 0 {
		t.Errorf("unexpected shortage %v", r.SupplyShortageMWh)
	}
}

func TestDispatch_StackExhaustedLeavesShortage(t *testing.T) {
	sc := thermalScenario([]float64{150}, 50, []model.ThermalPlant{
		{Name: "ccgt", CapacityMW: 100, Efficiency: 0.5},
	})
	res := mustRun(t, Config{}, sc)

	r := res.Hourly[0]
	if math.Abs(r.GasGeneratedMWh-100) > priceTol {
		t.Errorf("gas generated: got %v, want 100", r.GasGeneratedMWh)
	}
	if math.Abs(r.MarginalPriceGBP-34.121) > 1e-6 {
		t.Errorf("shortage hour keeps last dispatched bid, got %v", r.MarginalPriceGBP)
	}
	if math.Abs(r.SupplyShortageMWh-50) > priceTol {
		t.Errorf("shortage: got %v, want 50", r.SupplyShortageMWh)
	}
	if res.ShortageHours != 1 {
		t.Errorf("shortage hours: got %d, want 1", res.ShortageHours)
	}
}

func TestDispatch_CurtailmentExactCover(t *testing.T) {
	// Wind covers demand exactly: net demand is zero, the hour clears at
	// zero and no thermal unit runs regardless of the stack.
	sc := thermalScenario([]float64{100}, 50, []model.ThermalPlant{
		{Name: "ccgt", CapacityMW: 500, Efficiency: 0.5},
	})
	sc.WindPlants = []model.RenewablePlant{{Name: "w1", CapacityMW: 100}}
	sc.WindLoadFactors.Columns = map[string][]float64{"w1": {1.0}}

	res := mustRun(t, Config{}, sc)
	r := res.Hourly[0]
	if r.MarginalPriceGBP != 0 || r.GasGeneratedMWh != 0 {
		t.Errorf("expected curtailment branch, got price %v gas %v", r.MarginalPriceGBP, r.GasGeneratedMWh)
	}
}

func TestDispatch_RenewableOversupply(t *testing.T) {
	sc := thermalScenario([]float64{50}, 50, nil)
	sc.WindPlants = []model.RenewablePlant{{Name: "w1", CapacityMW: 200}}
	sc.WindLoadFactors.Columns = map[string][]float64{"w1": {0.8}}

	res := mustRun(t, Config{}, sc)
	r := res.Hourly[0]
	if r.MarginalPriceGBP != 0 || r.GasGeneratedMWh != 0 {
		t.Errorf("oversupply hour must clear at zero, got price %v gas %v", r.MarginalPriceGBP, r.GasGeneratedMWh)
	}
	if r.SupplyShortageMWh != 0 {
		t.Errorf("oversupply is not a shortage, got %v", r.SupplyShortageMWh)
	}
}

func TestDispatch_MeritOrderPrecedence(t *testing.T) {
	plants := []model.ThermalPlant{
		{Name: "peaker", CapacityMW: 100, Efficiency: 0.4},
		{Name: "ccgt", CapacityMW: 100, Efficiency: 0.6},
	}

	// Below the efficient unit's capacity the peaker must stay idle and
	// the efficient unit sets the price.
	res := mustRun(t, Config{}, thermalScenario([]float64{80}, 50, plants))
	r := res.Hourly[0]
	wantCheap := 50.0 / 100 * thermEnergyMWh / 0.6
	if math.Abs(r.MarginalPriceGBP-wantCheap) > 1e-9 {
		t.Errorf("marginal price: got %v, want %v", r.MarginalPriceGBP, wantCheap)
	}

	// Past it, the efficient unit runs full and the peaker is marginal.
	res = mustRun(t, Config{}, thermalScenario([]float64{150}, 50, plants))
	r = res.Hourly[0]
	wantDear := 50.0 / 100 * thermEnergyMWh / 0.4
	if math.Abs(r.MarginalPriceGBP-wantDear) > 1e-9 {
		t.Errorf("marginal price: got %v, want %v", r.MarginalPriceGBP, wantDear)
	}
	if math.Abs(r.GasGeneratedMWh-150) > priceTol {
		t.Errorf("gas generated: got %v, want 150", r.GasGeneratedMWh)
	}
}

func TestDispatch_ClearingPriceIsLastUnitNotMax(t *testing.T) {
	// A very expensive unit sits idle at the top of the stack; it must not
	// influence the clearing price.
	plants := []model.ThermalPlant{
		{Name: "ccgt", CapacityMW: 100, Efficiency: 0.6},
		{Name: "ocgt", CapacityMW: 100, Efficiency: 0.3},
		{Name: "relic", CapacityMW: 100, Efficiency: 0.2},
	}
	res := mustRun(t, Config{}, thermalScenario([]float64{120}, 60, plants))
	r := res.Hourly[0]
	want := 60.0 / 100 * thermEnergyMWh / 0.3
	if math.Abs(r.MarginalPriceGBP-want) > 1e-9 {
		t.Errorf("clearing price must come from last dispatched unit: got %v, want %v", r.MarginalPriceGBP, want)
	}
}

func mixedScenario(hours int) model.Scenario {
	sc := model.Scenario{
		WindPlants: []model.RenewablePlant{
			{Name: "w1", CapacityMW: 120},
			{Name: "w2", CapacityMW: 80},
		},
		SolarPlants: []model.RenewablePlant{{Name: "s1", CapacityMW: 60}},
		GasPlants: []model.ThermalPlant{
			{Name: "ccgt-1", CapacityMW: 90, Efficiency: 0.58},
			{Name: "ccgt-2", CapacityMW: 70, Efficiency: 0.52},
			{Name: "ocgt", CapacityMW: 40, Efficiency: 0.35},
		},
	}
	labels := make([]model.Hour, hours)
	w1 := make([]float64, hours)
	w2 := make([]float64, hours)
	s1 := make([]float64, hours)
	for i := 0; i < hours; i++ {
		h := model.Hour(i + 1)
		labels[i] = h
		// Deterministic but uneven shapes: some curtailed hours, some
		// shortage hours.
		demand := 120 + 140*math.Abs(math.Sin(float64(i)/3))
		price := 45 + 20*math.Abs(math.Cos(float64(i)/5))
		sc.Demand = append(sc.Demand, model.DemandPoint{Hour: h, DemandMWh: demand})
		sc.GasPrices = append(sc.GasPrices, model.GasPricePoint{Hour: h, PencePerTherm: price})
		w1[i] = 0.5 + 0.5*math.Sin(float64(i)/4)
		w2[i] = 0.3 + 0.3*math.Cos(float64(i)/6)
		s1[i] = math.Max(0, math.Sin(float64(i%24)/24*math.Pi))
	}
	sc.WindLoadFactors = model.LoadFactorTable{Hours: labels, Columns: map[string][]float64{"w1": w1, "w2": w2}}
	sc.SolarLoadFactors = model.LoadFactorTable{Hours: labels, Columns: map[string][]float64{"s1": s1}}
	return sc
}

func TestRun_ConservationProperty(t *testing.T) {
	res := mustRun(t, Config{}, mixedScenario(72))
	for _, r := range res.Hourly {
		balance := r.TotalSupplyMWh() + r.SupplyShortageMWh - r.DemandMWh
		if r.SupplyShortageMWh == 0 && balance < 0 {
			t.Fatalf("hour %d: supply below demand without shortage (balance %v)", r.Hour, balance)
		}
		if r.SupplyShortageMWh > 0 && math.Abs(balance) > 1e-9 {
			t.Fatalf("hour %d: wind+solar+gas+shortage != demand (off by %v)", r.Hour, balance)
		}
	}
}

func TestRun_ShortageConsistency(t *testing.T) {
	sc := mixedScenario(72)
	rc, err := NewRunContext(sc)
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	total := rc.Stack.TotalCapacityMW()
	res := mustRun(t, Config{}, sc)
	for i, r := range res.Hourly {
		// Shortage from the stack walk must equal the one implied by net
		// demand against total thermal capacity.
		want := math.Max(0, rc.NetDemandMWh[i]-total)
		if math.Abs(r.SupplyShortageMWh-want) > 1e-9 {
			t.Errorf("hour %d: shortage %v disagrees with reconciliation %v", r.Hour, r.SupplyShortageMWh, want)
		}
	}
}

func TestRun_ResultsInHourOrder(t *testing.T) {
	res := mustRun(t, Config{}, mixedScenario(30))
	for i, r := range res.Hourly {
		if r.Hour != model.Hour(i+1) {
			t.Fatalf("position %d holds hour %d", i, r.Hour)
		}
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	sc := mixedScenario(96)
	seq := mustRun(t, Config{}, sc)
	par := mustRun(t, Config{Workers: 8}, sc)
	if len(seq.Hourly) != len(par.Hourly) {
		t.Fatalf("length mismatch: %d vs %d", len(seq.Hourly), len(par.Hourly))
	}
	for i := range seq.Hourly {
		if seq.Hourly[i] != par.Hourly[i] {
			t.Fatalf("hour %d differs: %+v vs %+v", i+1, seq.Hourly[i], par.Hourly[i])
		}
	}
	if seq.MeanMarginalPriceGBP != par.MeanMarginalPriceGBP || seq.ShortageHours != par.ShortageHours {
		t.Error("summary statistics differ between sequential and parallel runs")
	}
}

func TestRun_SummaryStatistics(t *testing.T) {
	sc := thermalScenario([]float64{60, 150, 0}, 50, []model.ThermalPlant{
		{Name: "ccgt", CapacityMW: 100, Efficiency: 0.5},
	})
	res := mustRun(t, Config{}, sc)
	if res.ShortageHours != 1 {
		t.Errorf("shortage hours: got %d, want 1", res.ShortageHours)
	}
	want := (34.121 + 34.121 + 0) / 3
	if math.Abs(res.MeanMarginalPriceGBP-want) > 1e-6 {
		t.Errorf("mean price: got %v, want %v", res.MeanMarginalPriceGBP, want)
	}
	if res.RunID == "" {
		t.Error("run id not assigned")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(Config{}, nil).Run(ctx, mixedScenario(24))
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestAssemble_Empty(t *testing.T) {
	res := Assemble(nil)
	if res.MeanMarginalPriceGBP != 0 || res.ShortageHours != 0 {
		t.Errorf("empty table should yield zero summary, got %+v", res)
	}
}
