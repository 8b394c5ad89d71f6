// Package resource drives a single invocation: merge source and params,
// interpolate values, inject file references, perform the HTTP call and
// assemble the output record.
package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/pirogoeth/concourse-http-api-resource/internal/common"
	"github.com/pirogoeth/concourse-http-api-resource/internal/env"
	"github.com/pirogoeth/concourse-http-api-resource/internal/fileref"
	"github.com/pirogoeth/concourse-http-api-resource/internal/request"
	"github.com/pirogoeth/concourse-http-api-resource/internal/util"
)

// Runner executes one resource invocation. Each run is independent: the
// value mapping, parameter tree and response exist only for its duration.
type Runner struct {
	// Dir is the resource working directory, the bounding path for file
	// reference resolution.
	Dir string
	// Environ is a process-environment snapshot in os.Environ form. Only
	// build-metadata variables are fed into the value mapping.
	Environ []string
	// TestMode merges the parsed response body into the output record.
	// This is a test-support affordance, not a stable API.
	TestMode bool
}

// Run parses the raw input payload, renders the parameters and performs
// the request. It returns the serialized output record. Any failure other
// than a best-effort body merge aborts the run.
func (r *Runner) Run(ctx context.Context, raw []byte) ([]byte, error) {
	logger := common.GetLogger().WithComponent("resource")

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse input payload: %w", err)
	}

	// params override source on key collision
	params := make(map[string]interface{}, len(req.Source)+len(req.Params))
	for k, v := range req.Source {
		params[k] = v
	}
	for k, v := range req.Params {
		params[k] = v
	}

	if d, ok := params["debug"].(bool); ok && d {
		common.SetDefaultLogger(common.NewLogger(common.LogLevelDebug))
		logger = common.GetLogger().WithComponent("resource")
	}

	e := env.New()
	e.Build = env.FromEnviron(r.Environ)
	e.Params = params
	logger.Debug("value mapping assembled", "build_vars", len(e.Build), "params", len(params))

	rendered, err := util.RenderAnyTemplate(params, e)
	if err != nil {
		return nil, err
	}

	injected, ok := fileref.InjectFileContents(rendered, r.Dir).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("rendered parameters are not a mapping")
	}

	spec, err := request.FromParams(injected)
	if err != nil {
		return nil, err
	}

	result, err := spec.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return r.output(result)
}

// output builds the {"version":{}} record. In TestMode the response body,
// when it is a JSON object, is merged in on top; anything else is ignored
// rather than failing an otherwise successful request.
func (r *Runner) output(result *request.Result) ([]byte, error) {
	if !r.TestMode {
		return json.Marshal(Response{Version: map[string]interface{}{}})
	}
	out := map[string]interface{}{"version": map[string]interface{}{}}
	if gjson.Valid(result.ResponseBody) {
		if parsed := gjson.Parse(result.ResponseBody); parsed.IsObject() {
			for k, v := range parsed.Value().(map[string]interface{}) {
				out[k] = v
			}
		}
	}
	return json.Marshal(out)
}

// CheckVersions implements the check command. The resource produces no
// versions to track, so the answer is always the empty list; the input is
// still parsed so malformed payloads fail loudly, and no request is made.
func CheckVersions(raw []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse input payload: %w", err)
	}
	return []byte("[]"), nil
}
