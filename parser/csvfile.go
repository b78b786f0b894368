package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/activecm/idsdash/pkg/features"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

//ErrNoHeader is returned for CSV input without a header row
var ErrNoHeader = errors.New("csv input has no header row")

type (
	// CSVReader turns batch CSV files into feature records. Columns are
	// matched to features by header name; other columns are ignored.
	CSVReader struct {
		log *log.Entry
		// ShowProgress draws a progress bar on stdout while rows are
		// converted
		ShowProgress bool
	}
)

//NewCSVReader creates a reader logging through logger
func NewCSVReader(logger *log.Entry) *CSVReader {
	return &CSVReader{log: logger}
}

// Read converts every data row of the CSV stream into a record by
// overlaying the row's cells onto base. Short rows are accepted: columns a
// row lacks keep the value from base. An empty cell is a value like any
// other, so it coerces to 0 for numeric features and "" for the rest.
func (c *CSVReader) Read(r io.Reader, base features.Record) ([]features.Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.ReuseRecord = false

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := c.mapColumns(header)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv rows: %w", err)
	}

	var bar *mpb.Bar
	var p *mpb.Progress
	// a bar with nothing to count would never complete
	if c.ShowProgress && len(rows) > 0 {
		p = mpb.New(mpb.WithWidth(20))
		bar = p.AddBar(int64(len(rows)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Reading rows:", decor.WC{W: 30, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	records := make([]features.Record, 0, len(rows))
	for _, row := range rows {
		start := time.Now()
		fields := make(features.Fields, len(columns))
		for i, cell := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			fields[columns[i]] = cell
		}
		records = append(records, features.BuildFrom(base, fields))
		if bar != nil {
			bar.IncrBy(1, time.Since(start))
		}
	}
	if p != nil {
		p.Wait()
	}

	c.log.WithFields(log.Fields{
		"rows":    len(records),
		"columns": len(header),
	}).Debug("Read batch csv")
	return records, nil
}

// mapColumns returns the feature name for every header cell, or "" for
// columns that do not name a feature
func (c *CSVReader) mapColumns(header []string) []string {
	columns := make([]string, len(header))
	var ignored []string
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if features.Has(name) {
			columns[i] = name
		} else {
			ignored = append(ignored, name)
		}
	}
	if len(ignored) > 0 {
		c.log.WithField("columns", strings.Join(ignored, ",")).Debug("Ignoring csv columns that are not features")
	}
	return columns
}
