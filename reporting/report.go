package reporting

import (
	"errors"
	"fmt"
	"html/template"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/activecm/idsdash/pkg/classification"
	htmlTempl "github.com/activecm/idsdash/reporting/templates"
	"github.com/activecm/idsdash/resources"
	"github.com/activecm/idsdash/util"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
)

const reportFolder = "idsdash-batch-report"

// PrintHTML writes the results of a batch prediction as an html report into
// a new folder within dir. If the folder already exists a counter is
// appended to its name. The path of the written index.html is returned.
func PrintHTML(batch classification.BatchResult, source string, dir string, res *resources.Resources) (string, error) {
	if !util.IsDir(dir) {
		return "", errors.New("report directory " + dir + " does not exist")
	}

	//create outFolder as our string builder
	outFolder := []byte(filepath.Join(dir, reportFolder))
	outFolderBaseLen := len(outFolder)
	counter := 1

	//while the file exists, append the next counter
	for util.Exists(string(outFolder)) {
		outFolder = outFolder[:outFolderBaseLen]
		outFolder = append(outFolder, []byte(strconv.Itoa(counter))...)
		counter++
	}
	outFolderString := string(outFolder)

	err := os.Mkdir(outFolderString, 0755)
	if err != nil {
		return "", err
	}

	err = ioutil.WriteFile(filepath.Join(outFolderString, "style.css"), htmlTempl.CSStempl, 0644)
	if err != nil {
		return "", err
	}

	index := filepath.Join(outFolderString, "index.html")
	err = writeBatchPage(index, reportInfo(batch, source, res.SessionID))
	if err != nil {
		return "", err
	}

	res.Logger().WithFields(log.Fields{
		"path":    index,
		"records": len(batch.Results),
	}).Info("Wrote batch report")
	fmt.Println("[-] Wrote outputs, check " + outFolderString + " for files")
	return index, nil
}

// Open shows a written report in the default browser
func Open(index string) error {
	return open.Run(index)
}

func reportInfo(batch classification.BatchResult, source string, session string) htmlTempl.ReportingInfo {
	info := htmlTempl.ReportingInfo{
		Title:     "Batch Prediction",
		Generated: time.Now(),
		Session:   session,
		Source:    source,
		Total:     batch.TotalCount,
		Intrusion: batch.IntrusionCount,
		Normal:    batch.NormalCount,
	}
	for idx, r := range batch.Results {
		info.Rows = append(info.Rows, htmlTempl.Row{
			Index:       idx + 1,
			Prediction:  r.Prediction,
			IsIntrusion: r.IsIntrusion,
			Confidence:  classification.FormatConfidence(r.Confidence),
			Attack:      strconv.FormatFloat(r.AttackProbability, 'f', 2, 64),
			Normal:      strconv.FormatFloat(r.NormalProbability, 'f', 2, 64),
		})
	}
	return info
}

func writeBatchPage(path string, info htmlTempl.ReportingInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := template.New("index.html").Parse(htmlTempl.BatchTempl)
	if err != nil {
		return err
	}
	return out.Execute(f, info)
}
