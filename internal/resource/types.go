package resource

// Request is the payload Concourse writes on stdin: connection and request
// defaults under source, per-invocation overrides under params. version is
// accepted but unused by the core logic.
type Request struct {
	Source  map[string]interface{} `json:"source"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Version map[string]interface{} `json:"version,omitempty"`
}

// Response is the output record written to stdout. The resource produces
// no meaningful versions, so Version is always the empty object.
type Response struct {
	Version map[string]interface{} `json:"version"`
}
