package visits

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"petclinic-microservices/internal/domain/gateway"
	"petclinic-microservices/internal/platform/httpclient"
	"petclinic-microservices/internal/platform/metrics"
)

const Name = "visits"

type Config struct {
	BaseURL string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

// Client habla con el visits-service.
type Client struct {
	http *httpclient.Client
}

var _ gateway.VisitsClient = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("visits: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Name = Name
	hc.Metrics = cfg.Metrics
	return &Client{http: hc}, nil
}

func NewFromHTTP(hc *httpclient.Client) *Client {
	if hc.Name == "" {
		hc.Name = Name
	}
	return &Client{http: hc}
}

// GetVisitsForPets hace GET /pets/visits?petIds=1,2,3 respetando el orden.
// Sin ids no sale a la red.
func (c *Client) GetVisitsForPets(ctx context.Context, petIDs []int) (gateway.Visits, error) {
	if len(petIDs) == 0 {
		return gateway.Visits{Items: []gateway.VisitDetails{}}, nil
	}

	var out gateway.Visits
	if err := c.http.GetJSON(ctx, "/pets/visits?petIds="+joinIDs(petIDs), &out); err != nil {
		return gateway.Visits{}, err
	}
	if out.Items == nil {
		out.Items = []gateway.VisitDetails{}
	}
	return out, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
