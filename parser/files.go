package parser

import (
	"compress/gzip"
	"errors"
	"os"
	"strings"

	"github.com/activecm/idsdash/pkg/features"
)

// ReadFile reads a .csv or .csv.gz batch file
func (c *CSVReader) ReadFile(path string, base features.Record) ([]features.Record, error) {
	if !strings.HasSuffix(path, ".csv") && !strings.HasSuffix(path, ".csv.gz") {
		return nil, errors.New("filetype not recognized, expected .csv or .csv.gz")
	}

	fileHandle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fileHandle.Close()

	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(fileHandle)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		return c.Read(gzipReader, base)
	}
	return c.Read(fileHandle, base)
}
