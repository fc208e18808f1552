package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const resultCodeOK = "00"

type envelope struct {
	Response *struct {
		Header header          `json:"header"`
		Body   json.RawMessage `json:"body"`
	} `json:"response"`
}

type header struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// body.items arrives as "" when a release has no rows, so it is decoded
// separately from the rest of the body.
type body struct {
	DataType   string          `json:"dataType"`
	Items      json.RawMessage `json:"items"`
	PageNo     int             `json:"pageNo"`
	NumOfRows  int             `json:"numOfRows"`
	TotalCount int             `json:"totalCount"`
}

// decodeItems validates the envelope in data and returns body.items.item.
// The header is checked before the body is touched.
func decodeItems[T any](data []byte) ([]T, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Response == nil {
		return nil, fmt.Errorf("%w: missing response", ErrMalformedEnvelope)
	}

	h := env.Response.Header
	if h.ResultCode != resultCodeOK {
		return nil, &ProviderError{Code: h.ResultCode, Message: h.ResultMsg}
	}

	if isEmptyJSON(env.Response.Body) {
		return nil, nil
	}
	var b body
	if err := json.Unmarshal(env.Response.Body, &b); err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrMalformedEnvelope, err)
	}
	if isEmptyJSON(b.Items) {
		return nil, nil
	}

	var items struct {
		Item []T `json:"item"`
	}
	if err := json.Unmarshal(b.Items, &items); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrMalformedEnvelope, err)
	}
	return items.Item, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`))
}
