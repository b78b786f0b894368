package commands

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/olekukonko/tablewriter"
)

// helper functions for formatting floats and integers
func f(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
func i(i int64) string {
	return strconv.FormatInt(i, 10)
}

var resultHeader = []string{"Prediction", "Intrusion", "Confidence", "Attack Prob.", "Normal Prob."}

func resultRow(r classification.Result) []string {
	intrusion := "no"
	if r.IsIntrusion {
		intrusion = "yes"
	}
	return []string{
		r.Prediction, intrusion, classification.FormatConfidence(r.Confidence),
		f(r.AttackProbability), f(r.NormalProbability),
	}
}

// writeResults prints results as a table when human is set and as csv
// otherwise
func writeResults(w io.Writer, results []classification.Result, human bool) error {
	if human {
		table := tablewriter.NewWriter(w)
		table.SetHeader(resultHeader)
		for _, r := range results {
			table.Append(resultRow(r))
		}
		table.Render()
		return nil
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(resultHeader)
	for _, r := range results {
		csvWriter.Write(resultRow(r))
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func writeBatchSummary(w io.Writer, batch classification.BatchResult, human bool) error {
	header := []string{"Total", "Intrusions", "Normal"}
	row := []string{
		i(int64(batch.TotalCount)), i(int64(batch.IntrusionCount)), i(int64(batch.NormalCount)),
	}
	if human {
		table := tablewriter.NewWriter(w)
		table.SetHeader(header)
		table.Append(row)
		table.Render()
		return nil
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(header)
	csvWriter.Write(row)
	csvWriter.Flush()
	return csvWriter.Error()
}

func writeTrend(w io.Writer, points []dashboard.Point, human bool) error {
	header := []string{"Index", "Intrusion"}
	if human {
		table := tablewriter.NewWriter(w)
		table.SetHeader(header)
		for _, p := range points {
			table.Append([]string{i(int64(p.Index)), i(int64(p.Flag))})
		}
		table.Render()
		return nil
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(header)
	for _, p := range points {
		csvWriter.Write([]string{i(int64(p.Index)), i(int64(p.Flag))})
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeForm prints the form fields in feature order followed by any
// unrecognized names
func writeForm(w io.Writer, form features.Fields) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Feature", "Value"})
	for _, name := range sortedFields(form) {
		table.Append([]string{name, form[name]})
	}
	table.Render()
}

func sortedFields(form features.Fields) []string {
	order := make(map[string]int, len(features.Names()))
	for idx, name := range features.Names() {
		order[name] = idx
	}
	names := make([]string, 0, len(form))
	for name := range form {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		oa, okA := order[names[a]]
		ob, okB := order[names[b]]
		if okA != okB {
			return okA
		}
		if !okA {
			return names[a] < names[b]
		}
		return oa < ob
	})
	return names
}
