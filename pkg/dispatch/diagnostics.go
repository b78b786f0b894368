package dispatch

import (
	"context"
	"fmt"
)

type (
	//Health is the backend's answer to a health check
	Health struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}

	//ModelInfo describes the classifier loaded by the backend
	ModelInfo struct {
		ModelType     string   `json:"model_type"`
		FeaturesCount int      `json:"features_count"`
		IsLoaded      bool     `json:"is_loaded"`
		Classes       []string `json:"classes"`
	}
)

//Health asks the backend whether it is up and has a model loaded
func (c *Client) Health(ctx context.Context) (Health, error) {
	var health Health
	body, err := c.get(ctx, c.healthURL)
	if err != nil {
		return health, err
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return health, fmt.Errorf("unparsable health response: %w", err)
	}
	return health, nil
}

//ModelInfo fetches the description of the backend's classifier
func (c *Client) ModelInfo(ctx context.Context) (ModelInfo, error) {
	var info ModelInfo
	body, err := c.get(ctx, c.modelInfoURL)
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return info, fmt.Errorf("unparsable model info response: %w", err)
	}
	return info, nil
}
