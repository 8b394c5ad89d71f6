package util

import (
	"reflect"
	"testing"

	"github.com/pirogoeth/concourse-http-api-resource/internal/env"
)

func testEnv(vals map[string]interface{}) *env.Env {
	e := env.New()
	e.Params = vals
	return e
}

func TestRenderAnyTemplate_NestedShapePreserved(t *testing.T) {
	e := testEnv(map[string]interface{}{"name": "alice"})
	in := map[string]interface{}{
		"object": map[string]interface{}{"test": "{{.name}}"},
		"array":  []interface{}{"{{.name}}", "literal", float64(3)},
		"num":    float64(123),
		"flag":   true,
		"nothing": nil,
	}
	out, err := RenderAnyTemplate(in, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]interface{}{
		"object": map[string]interface{}{"test": "alice"},
		"array":  []interface{}{"alice", "literal", float64(3)},
		"num":    float64(123),
		"flag":   true,
		"nothing": nil,
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected result:\n got: %#v\nwant: %#v", out, want)
	}
}

func TestRenderAnyTemplate_IdempotentWithoutPlaceholders(t *testing.T) {
	e := testEnv(map[string]interface{}{"unused": "x"})
	in := map[string]interface{}{
		"a": "plain",
		"b": []interface{}{"one", "two"},
		"c": map[string]interface{}{"d": float64(1)},
	}
	out, err := RenderAnyTemplate(in, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("expected placeholder-free tree unchanged, got %#v", out)
	}
}

func TestRenderAnyTemplate_SequenceOrderPreserved(t *testing.T) {
	e := testEnv(map[string]interface{}{"a": "1", "b": "2", "c": "3"})
	out, err := RenderAnyTemplate([]interface{}{"{{.a}}", "{{.b}}", "{{.c}}"}, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	arr := out.([]interface{})
	if arr[0] != "1" || arr[1] != "2" || arr[2] != "3" {
		t.Fatalf("expected element order preserved, got %v", arr)
	}
}

func TestRenderAnyTemplate_RendersMapKeys(t *testing.T) {
	e := testEnv(map[string]interface{}{"key": "rendered"})
	out, err := RenderAnyTemplate(map[string]interface{}{"{{.key}}": "v"}, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := out.(map[string]interface{})
	if m["rendered"] != "v" {
		t.Fatalf("expected rendered key, got %v", m)
	}
	if _, ok := m["{{.key}}"]; ok {
		t.Fatalf("raw key must not survive rendering")
	}
}

func TestRenderAnyTemplate_MissingKeyAborts(t *testing.T) {
	e := testEnv(map[string]interface{}{})
	if _, err := RenderAnyTemplate(map[string]interface{}{"v": "{{.absent}}"}, e); err == nil {
		t.Fatalf("expected error for missing placeholder key")
	}
	if _, err := RenderAnyTemplate([]interface{}{"{{.absent}}"}, e); err == nil {
		t.Fatalf("expected error for missing placeholder key in sequence")
	}
}

func TestRenderAnyTemplate_NilEnvPassthrough(t *testing.T) {
	out, err := RenderAnyTemplate("{{.anything}}", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "{{.anything}}" {
		t.Fatalf("expected literal passthrough with nil env, got %v", out)
	}
}
