package fileref

import (
	"errors"

	"github.com/pirogoeth/concourse-http-api-resource/internal/common"
)

// InjectFileContents walks arbitrary structures (map[string]any, []any) and
// replaces string values that parse as file references with the referenced
// file's contents, bounded to the given directory. Map keys are never
// subject to injection.
//
// Injection failures are non-fatal per leaf: a value that parses as a
// reference but cannot be resolved or read is logged and kept as its
// literal text. Aborting a whole run over one malformed reference would be
// worse than sending the literal string.
func InjectFileContents(in interface{}, bound string) interface{} {
	logger := common.GetLogger().WithComponent("fileref")

	var fn func(v interface{}) interface{}
	fn = func(v interface{}) interface{} {
		switch t := v.(type) {
		case map[string]interface{}:
			m := make(map[string]interface{}, len(t))
			for k, vv := range t {
				m[k] = fn(vv)
			}
			return m
		case []interface{}:
			arr := make([]interface{}, len(t))
			for i := range t {
				arr[i] = fn(t[i])
			}
			return arr
		case string:
			ref, err := Parse(t)
			if err != nil {
				// Plain value, pass through.
				return t
			}
			contents, err := ref.Contents(bound)
			if err != nil {
				if errors.Is(err, ErrTraversal) || errors.Is(err, ErrNotFound) {
					logger.Warn("file reference fell back to literal value", "value", t, "error", err)
				} else {
					logger.Error("error injecting file contents", "value", t, "error", err)
				}
				return t
			}
			logger.Debug("expanded file reference", "value", t, "bytes", len(contents))
			return contents
		default:
			return v
		}
	}
	return fn(in)
}
