// Package export writes the result table for external reporting and
// plotting tools. The column set and order are a contract with those tools
// and must not change.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gridsim/meritsim/core/model"
)

// Header is the fixed report column set, one row per hour.
var Header = []string{
	"Hour",
	"Marginal_Price_GBP",
	"Wind_Generated_MWh",
	"Solar_Generated_MWh",
	"Gas_Generated_MWh",
	"Demand_MWh",
	"Supply_Shortage_MWh",
}

// WriteCSV writes the hourly result table to w in CSV format.
func WriteCSV(w io.Writer, res *model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range res.Hourly {
		rec := []string{
			strconv.Itoa(int(r.Hour)),
			fmtFloat(r.MarginalPriceGBP),
			fmtFloat(r.WindGeneratedMWh),
			fmtFloat(r.SolarGeneratedMWh),
			fmtFloat(r.GasGeneratedMWh),
			fmtFloat(r.DemandMWh),
			fmtFloat(r.SupplyShortageMWh),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full result, table and summary, to w in JSON format.
func WriteJSON(w io.Writer, res *model.Result) error {
	enc := json.NewEncoder(w)
	return enc.Encode(res)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
