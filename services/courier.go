package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nived-628/ShopSphere/utils"
)

// CourierClient is the boundary to the courier partner. The partner's internal
// logic is opaque; only its request/response API matters here.
type CourierClient interface {
	CancelShipment(docketNumber, reason string) error
}

// HTTPCourierClient talks JSON over HTTP to the courier partner with a bounded
// timeout. Nothing in the request path blocks on it beyond that timeout.
type HTTPCourierClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPCourierClient builds a courier client for the partner API.
func NewHTTPCourierClient(baseURL, apiKey string) *HTTPCourierClient {
	return &HTTPCourierClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CancelShipment asks the courier to cancel a shipment that already has a
// docket number.
func (c *HTTPCourierClient) CancelShipment(docketNumber, reason string) error {
	body, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return utils.WrapError(err, "failed to encode cancellation request")
	}

	url := fmt.Sprintf("%s/shipments/%s/cancel", c.baseURL, docketNumber)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return utils.WrapError(err, "failed to build cancellation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return utils.ExternalServiceError("Courier partner unreachable", utils.ReasonCourierUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return utils.ExternalServiceError(
			fmt.Sprintf("Courier rejected cancellation for docket %s", docketNumber),
			utils.ReasonCourierRejected,
			fmt.Errorf("status %d", resp.StatusCode),
		)
	}
	utils.LogInfo("Courier accepted cancellation for docket %s", docketNumber)
	return nil
}
