package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
	"github.com/kimjbstar/korea-public-village-forecast/internal/grid"
	"github.com/kimjbstar/korea-public-village-forecast/pkg/telemetry"
)

// MetricsRecorder receives one call per provider request.
type MetricsRecorder interface {
	RecordProviderCall(ctx context.Context, operation, outcome string, d time.Duration)
}

// Client talks to the village forecast service. Its configuration is fixed
// at construction, so a Client is safe for concurrent use.
type Client struct {
	cfg        config.ForecastConfig
	projection grid.Projection
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *zap.Logger
	tele       *telemetry.Telemetry
	metrics    MetricsRecorder
}

func NewClientWithConfig(cfg config.ForecastConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultForecastBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		projection: cfg.Projection,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		clock:  clockwork.NewRealClock(),
		logger: logger.With(zap.String("component", "forecast")),
		tele:   tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for provider calls.
func (c *Client) SetMetricsRecorder(metrics MetricsRecorder) {
	c.metrics = metrics
}

// SetClock swaps the time source used for "now". Pass nil to reset to real time.
func (c *Client) SetClock(clock clockwork.Clock) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	c.clock = clock
}

func (c *Client) Projection() grid.Projection {
	return c.projection
}

// FetchObservation queries the ultra-short-term observation (getUltraSrtNcst).
func (c *Client) FetchObservation(ctx context.Context, req Request) (res *ObservationResult, err error) {
	ctx, done := c.begin(ctx, OpUltraSrtNcst, req)
	defer func() { done(err) }()

	reqURL, data, err := c.fetch(ctx, OpUltraSrtNcst, c.gridQuery(req, ObservationThreshold))
	if err != nil {
		return nil, err
	}

	records, err := decodeItems[RawRecord](data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	baseDate, err := formatStamp(records[0].BaseDate, records[0].BaseTime)
	if err != nil {
		return nil, err
	}

	items := make([]WeatherItem, 0, len(records))
	for _, r := range records {
		items = append(items, Classify(r))
	}

	return &ObservationResult{
		URL:      reqURL,
		BaseDate: baseDate,
		Items:    items,
		Origin:   c.origin(data),
	}, nil
}

// FetchForecastShortTerm queries the ultra-short-term forecast (getUltraSrtFcst).
func (c *Client) FetchForecastShortTerm(ctx context.Context, req Request) (*ForecastResult, error) {
	return c.fetchForecast(ctx, OpUltraSrtFcst, ShortTermThreshold, req)
}

// FetchForecastVillage queries the village forecast (getVilageFcst). The
// requested time is used as the base time verbatim.
func (c *Client) FetchForecastVillage(ctx context.Context, req Request) (*ForecastResult, error) {
	return c.fetchForecast(ctx, OpVilageFcst, NoThreshold, req)
}

func (c *Client) fetchForecast(ctx context.Context, operation string, threshold int, req Request) (res *ForecastResult, err error) {
	ctx, done := c.begin(ctx, operation, req)
	defer func() { done(err) }()

	reqURL, data, err := c.fetch(ctx, operation, c.gridQuery(req, threshold))
	if err != nil {
		return nil, err
	}

	records, err := decodeItems[RawRecord](data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	baseDate, err := formatStamp(records[0].BaseDate, records[0].BaseTime)
	if err != nil {
		return nil, err
	}

	buckets, err := GroupByForecastTime(records)
	if err != nil {
		return nil, err
	}

	return &ForecastResult{
		URL:       reqURL,
		BaseDate:  baseDate,
		Forecasts: buckets,
		Origin:    c.origin(data),
	}, nil
}

// FetchVersion queries the publication version of one product (getFcstVersion).
func (c *Client) FetchVersion(ctx context.Context, req VersionRequest) (res *VersionResult, err error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "forecast."+OpFcstVersion)
	span.SetAttributes(attribute.String("ftype", string(req.Type)))
	done := c.finisher(ctx, span, OpFcstVersion)
	defer func() { done(err) }()

	if !req.Type.Valid() {
		return nil, fmt.Errorf("forecast: unknown file type %q", req.Type)
	}

	at := req.Time
	if at.IsZero() {
		at = c.clock.Now()
	}
	rows, page := paging(req.NumOfRows, req.PageNo)

	params := url.Values{}
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(rows))
	params.Set("ftype", string(req.Type))
	params.Set("basedatetime", at.In(KST).Format("200601021504"))

	reqURL, data, err := c.fetch(ctx, OpFcstVersion, params)
	if err != nil {
		return nil, err
	}

	records, err := decodeItems[json.RawMessage](data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	var version struct {
		FileType string `json:"filetype"`
		Version  string `json:"version"`
	}
	if err := json.Unmarshal(records[0], &version); err != nil {
		return nil, fmt.Errorf("%w: version record: %v", ErrMalformedEnvelope, err)
	}

	return &VersionResult{
		URL:      reqURL,
		FileType: version.FileType,
		Version:  version.Version,
		Result:   records[0],
		Origin:   c.origin(data),
	}, nil
}

// begin opens the span for a grid operation and returns its completion func.
func (c *Client) begin(ctx context.Context, operation string, req Request) (context.Context, func(error)) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "forecast."+operation)
	span.SetAttributes(
		attribute.Float64("lat", req.Lat),
		attribute.Float64("lng", req.Lng),
	)
	return ctx, c.finisher(ctx, span, operation)
}

func (c *Client) finisher(ctx context.Context, span trace.Span, operation string) func(error) {
	start := time.Now()
	return func(err error) {
		defer span.End()

		elapsed := time.Since(start)
		outcome := Outcome(err)
		span.SetAttributes(attribute.String("outcome", outcome))

		if c.metrics != nil {
			c.metrics.RecordProviderCall(ctx, operation, outcome, elapsed)
		}

		if err != nil {
			c.logger.Warn("Forecast API call failed",
				zap.String("operation", operation),
				zap.String("outcome", outcome),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			c.tele.RecordError(ctx, err, map[string]interface{}{"operation": operation})
			return
		}

		c.logger.Debug("Forecast API call completed",
			zap.String("operation", operation),
			zap.Duration("elapsed", elapsed))
	}
}

// gridQuery resolves the base time and grid cell for req.
func (c *Client) gridQuery(req Request, threshold int) url.Values {
	requested := req.Time
	if requested.IsZero() {
		requested = c.clock.Now()
	}
	base := ResolveBaseTime(c.clock.Now(), requested, threshold).In(KST)
	cell := c.projection.ToGrid(req.Lat, req.Lng)
	rows, page := paging(req.NumOfRows, req.PageNo)

	c.logger.Debug("Resolved forecast query",
		zap.Time("requested", requested),
		zap.Time("base", base),
		zap.Int("nx", cell.NX),
		zap.Int("ny", cell.NY))

	params := url.Values{}
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(rows))
	params.Set("base_date", base.Format("20060102"))
	params.Set("base_time", base.Format("1504"))
	params.Set("nx", strconv.Itoa(cell.NX))
	params.Set("ny", strconv.Itoa(cell.NY))
	return params
}

// fetch performs one GET and returns the full request URL and raw body.
func (c *Client) fetch(ctx context.Context, operation string, params url.Values) (string, []byte, error) {
	if c.cfg.APIKey == "" {
		return "", nil, ErrMissingCredential
	}

	q := url.Values{}
	q.Set("serviceKey", c.cfg.APIKey)
	q.Set("dataType", "JSON")
	for key, values := range params {
		q[key] = values
	}
	reqURL := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), operation, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return reqURL, nil, &TransportError{Operation: operation, Err: c.redactErr(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return reqURL, nil, &TransportError{Operation: operation, Err: c.redactErr(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return reqURL, nil, &TransportError{Operation: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return reqURL, nil, &TransportError{
			Operation: operation,
			Err:       &StatusError{StatusCode: resp.StatusCode, Body: truncateBody(data)},
		}
	}

	return reqURL, data, nil
}

// redactErr hides the service key in the URL carried by a *url.Error.
func (c *Client) redactErr(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.redactKey(urlErr.URL)
	}
	return err
}

// redactKey hides the service key so transport errors can be logged. URLs
// that do not parse get a plain substitution of the key text.
func (c *Client) redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		raw = strings.ReplaceAll(raw, url.QueryEscape(c.cfg.APIKey), "REDACTED")
		return strings.ReplaceAll(raw, c.cfg.APIKey, "REDACTED")
	}
	q := u.Query()
	if q.Has("serviceKey") {
		q.Set("serviceKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// maxStatusBody caps how much of a non-2xx body is kept on a StatusError.
const maxStatusBody = 512

func truncateBody(data []byte) string {
	if len(data) <= maxStatusBody {
		return string(data)
	}
	cut := maxStatusBody
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut]) + "..."
}

func (c *Client) origin(data []byte) json.RawMessage {
	if !c.cfg.ShowOrigin {
		return nil
	}
	return json.RawMessage(data)
}

func paging(rows, page int) (int, int) {
	if rows <= 0 {
		rows = DefaultNumOfRows
	}
	if page <= 0 {
		page = DefaultPageNo
	}
	return rows, page
}
