package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/resources"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody bounds how much of a failed response is copied into errors
const maxErrorBody = 512

type (
	//Client sends feature records to the classifier backend
	Client struct {
		http         *http.Client
		predictURL   string
		batchURL     string
		healthURL    string
		modelInfoURL string
		log          *log.Entry
	}

	//batchRequest is the body of a batch prediction
	batchRequest struct {
		TrafficData []features.Record `json:"traffic_data"`
	}

	//StatusError reports a non 2xx answer from the backend
	StatusError struct {
		URL    string
		Status int
		Body   string
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.Status, e.Body)
}

//NewClient creates a Client for the backend named in the config
func NewClient(res *resources.Resources) *Client {
	backend := res.Config.R.Backend
	return &Client{
		// a zero Timeout leaves hung requests to the transport
		http:         &http.Client{Timeout: backend.Timeout},
		predictURL:   backend.PredictURL.String(),
		batchURL:     backend.BatchURL.String(),
		healthURL:    backend.HealthURL.String(),
		modelInfoURL: backend.ModelInfoURL.String(),
		log:          res.Logger(),
	}
}

// PredictOne classifies a single record. Any failure is logged and turned
// into the zero result; the error is returned only for diagnostics.
func (c *Client) PredictOne(ctx context.Context, rec features.Record) (classification.Result, error) {
	body, err := c.post(ctx, c.predictURL, rec)
	if err != nil {
		c.log.WithFields(log.Fields{
			"error": err.Error(),
			"url":   c.predictURL,
		}).Error("Prediction request failed")
		return classification.Zero(), err
	}

	res, err := classification.Decode(body)
	if err != nil {
		c.log.WithFields(log.Fields{
			"error": err.Error(),
			"url":   c.predictURL,
		}).Error("Encountered unparsable prediction response")
		return classification.Zero(), err
	}

	c.log.WithFields(log.Fields{
		"prediction": res.Prediction,
		"confidence": res.Confidence,
	}).Debug("Received prediction")
	return res, nil
}

// PredictBatch classifies records in one request. On any failure the
// returned batch is empty; partial results are never returned.
func (c *Client) PredictBatch(ctx context.Context, recs []features.Record) (classification.BatchResult, error) {
	if recs == nil {
		recs = []features.Record{}
	}

	body, err := c.post(ctx, c.batchURL, batchRequest{TrafficData: recs})
	if err != nil {
		c.log.WithFields(log.Fields{
			"error":   err.Error(),
			"url":     c.batchURL,
			"records": len(recs),
		}).Error("Batch prediction request failed")
		return classification.BatchResult{}, err
	}

	batch, err := classification.DecodeBatch(body)
	if err != nil {
		c.log.WithFields(log.Fields{
			"error": err.Error(),
			"url":   c.batchURL,
		}).Error("Encountered unparsable batch response")
		return classification.BatchResult{}, err
	}

	c.log.WithFields(log.Fields{
		"records":    len(recs),
		"total":      batch.TotalCount,
		"intrusions": batch.IntrusionCount,
	}).Info("Received batch prediction")
	return batch, nil
}

func (c *Client) post(ctx context.Context, target string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			URL:    req.URL.String(),
			Status: resp.StatusCode,
			Body:   string(bytes.TrimSpace(snippet)),
		}
	}

	return ioutil.ReadAll(resp.Body)
}
