package execution

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"gint/internal/domain"
)

const codeSuccess = "SUCCESS"

var _ Executor = (*GhostInspector)(nil)

// GhostInspector executes tests on demand through the Ghost Inspector API
type GhostInspector struct {
	client *resty.Client
	apiKey string
	log    *zap.Logger
}

// NewGhostInspector creates a client for the API rooted at baseURL.
func NewGhostInspector(baseURL, apiKey string, log *zap.Logger) *GhostInspector {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &GhostInspector{client: client, apiKey: apiKey, log: log.Named("executor")}
}

// Run submits test and waits for the remote run to complete.
func (g *GhostInspector) Run(ctx context.Context, organizationID string, test *domain.TestDefinition) (*domain.TestResult, error) {
	log := g.log.With(zap.String("test", test.Name))
	log.Debug("submitting test", zap.String("start_url", test.StartURL))

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": g.apiKey,
			"wait":   "true",
		}).
		SetBody(test).
		Post(fmt.Sprintf("/organizations/%s/on-demand/execute", url.PathEscape(organizationID)))
	if err != nil {
		return nil, &domain.ExecutionError{Test: test.Name, Err: err}
	}

	body := resp.Body()
	if resp.IsError() {
		return nil, &domain.ExecutionError{
			Test:       test.Name,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(responseMessage(body, resp.Status())),
		}
	}

	result, err := parseResult(body)
	if err != nil {
		return nil, &domain.ExecutionError{Test: test.Name, StatusCode: resp.StatusCode(), Err: err}
	}

	log.Debug("test finished", zap.Bool("passing", result.Passing))
	return result, nil
}

// parseResult unwraps the {"code": ..., "data": {...}} envelope.
func parseResult(body []byte) (*domain.TestResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response is not valid JSON")
	}
	parsed := gjson.ParseBytes(body)

	if code := parsed.Get("code").String(); code != codeSuccess {
		return nil, fmt.Errorf("service returned code %q: %s", code, responseMessage(body, "no message"))
	}

	data := parsed.Get("data")
	if !data.IsObject() {
		return nil, errors.New(`response has no "data" object`)
	}

	return &domain.TestResult{
		Passing: data.Get("passing").Bool(),
		Payload: []byte(data.Raw),
	}, nil
}

func responseMessage(body []byte, fallback string) string {
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	return fallback
}
