package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/go-viper/mapstructure/v2"

	"github.com/pirogoeth/concourse-http-api-resource/internal/common"
	"github.com/pirogoeth/concourse-http-api-resource/internal/constants"
	"github.com/pirogoeth/concourse-http-api-resource/internal/httpc"
)

// Spec describes the single HTTP call an invocation performs, decoded from
// the fully rendered parameter mapping.
type Spec struct {
	Method  string            `mapstructure:"method"`
	URI     string            `mapstructure:"uri"`
	Headers map[string]string `mapstructure:"headers"`
	// JSON is the request body, sent as application/json when present.
	JSON interface{} `mapstructure:"json"`
	// FormData values are JSON-encoded individually and form-submitted.
	FormData map[string]interface{} `mapstructure:"form_data"`
	// SSLVerify is a bool, or a string holding inline PEM certificate
	// material to verify against.
	SSLVerify   interface{} `mapstructure:"ssl_verify"`
	OKResponses []int       `mapstructure:"ok_responses"`
	Debug       bool        `mapstructure:"debug"`
}

// Result contains the outcome of an executed request.
type Result struct {
	StatusCode int
	// Raw response body as a string.
	ResponseBody string
}

// StatusError reports a response status outside the accepted set. It
// carries the body for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %d", e.Status)
}

// FromParams decodes a rendered parameter mapping into a Spec and applies
// defaults. uri is the only required field.
func FromParams(params map[string]interface{}) (*Spec, error) {
	var s Spec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &s,
		// JSON numbers arrive as float64; ok_responses still has to
		// decode into []int.
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(params); err != nil {
		return nil, fmt.Errorf("decode request parameters: %w", err)
	}
	if strings.TrimSpace(s.URI) == "" {
		return nil, fmt.Errorf("request parameters: uri is required")
	}
	if strings.TrimSpace(s.Method) == "" {
		s.Method = constants.DefaultMethod
	}
	if len(s.OKResponses) == 0 {
		s.OKResponses = constants.DefaultOKResponses()
	}
	return &s, nil
}

// Execute performs the request exactly once and validates the response
// status against OKResponses. The Result is returned alongside a
// StatusError when the status is not accepted, so callers keep the body
// for diagnostics either way.
func (s *Spec) Execute(ctx context.Context) (*Result, error) {
	logger := common.GetLogger().WithComponent("request").WithRequest(s.Method, s.URI)

	h, err := httpc.FromVerify(s.SSLVerify)
	if err != nil {
		return nil, err
	}
	req := h.New().R().SetContext(ctx).SetHeaders(s.Headers)

	switch {
	case s.JSON != nil:
		if len(s.FormData) > 0 {
			// Policy: the JSON body wins when both are supplied.
			logger.Debug("both json and form_data supplied, sending json body")
		}
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(s.JSON)
	case len(s.FormData) > 0:
		form, err := EncodeFormData(s.FormData)
		if err != nil {
			return nil, err
		}
		req.SetFormData(form)
	}

	resp, err := execByMethod(req, strings.ToUpper(s.Method), s.URI)
	if err != nil {
		logger.Error("HTTP request failed", "error", err)
		return nil, err
	}

	status := resp.StatusCode()
	body := string(resp.Body())
	logger.Info("http response", "status_code", status, "response_size", len(body))
	logger.Debug("http response body", "body", body)

	res := &Result{StatusCode: status, ResponseBody: body}
	if !s.statusOK(status) {
		return res, &StatusError{Status: status, Body: body}
	}
	return res, nil
}

func (s *Spec) statusOK(status int) bool {
	for _, ok := range s.OKResponses {
		if status == ok {
			return true
		}
	}
	return false
}

func execByMethod(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodHead:
		return req.Head(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodPatch:
		return req.Patch(url)
	case http.MethodDelete:
		return req.Delete(url)
	default:
		return nil, fmt.Errorf("request: unsupported method: %s", method)
	}
}
