package util

import (
	"github.com/pirogoeth/concourse-http-api-resource/internal/env"
)

// RenderAnyTemplate walks arbitrary structures (map[string]any, []any) and
// renders all string keys and values using the provided env with standard
// Go template syntax ({{...}}). Container shapes and non-string scalars are
// preserved; sequences keep their element order. Map keys are rendered too:
// if two keys render to the same string, the later entry wins, but entries
// are never silently dropped otherwise.
// The first rendering failure (malformed template, missing key) aborts the
// whole walk.
func RenderAnyTemplate(in interface{}, e *env.Env) (interface{}, error) {
	var fn func(v interface{}) (interface{}, error)
	fn = func(v interface{}) (interface{}, error) {
		switch t := v.(type) {
		case map[string]interface{}:
			m := make(map[string]interface{}, len(t))
			for k, vv := range t {
				rk, err := e.Render(k)
				if err != nil {
					return nil, err
				}
				rv, err := fn(vv)
				if err != nil {
					return nil, err
				}
				m[rk] = rv
			}
			return m, nil
		case []interface{}:
			arr := make([]interface{}, len(t))
			for i := range t {
				rv, err := fn(t[i])
				if err != nil {
					return nil, err
				}
				arr[i] = rv
			}
			return arr, nil
		case string:
			if e == nil {
				return t, nil
			}
			return e.Render(t)
		default:
			return v, nil
		}
	}
	return fn(in)
}
