package rules

import (
	"reflect"
	"testing"

	"github.com/rushteam/diagkit/core"
)

func TestNewEvaluator_CompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "syntax error", rules: []Rule{{Name: "bad", Expr: "result.confidence <", Note: "x"}}},
		{name: "empty expression", rules: []Rule{{Name: "empty", Expr: "", Note: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEvaluator(tt.rules); err == nil {
				t.Error("expected compile-time error")
			}
		})
	}
}

func TestEvaluator_Apply(t *testing.T) {
	ev, err := NewEvaluator([]Rule{
		{Name: "low-confidence", Expr: `result.status == "success" && result.confidence < 60.0`, Note: "Low confidence; consider a clinical consult."},
		{Name: "fever-hydration", Expr: `"fever" in ctx.symptoms`, Note: "Stay hydrated."},
		{Name: "pediatric", Expr: `ctx.age > 0 && ctx.age < 12`, Note: "Pediatric dosing applies."},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ev.Len() != 3 {
		t.Fatalf("Len = %d", ev.Len())
	}

	result := &core.PredictionResult{
		PredictedDisease: "Flu",
		Confidence:       55,
		Status:           core.StatusSuccess,
	}
	pctx := &core.PredictContext{Symptoms: []string{"fever", "cough"}, Age: 8}

	ev.Apply(result, pctx)

	want := []string{
		"Low confidence; consider a clinical consult.",
		"Stay hydrated.",
		"Pediatric dosing applies.",
	}
	if !reflect.DeepEqual(result.Notes, want) {
		t.Errorf("Notes = %v, want %v", result.Notes, want)
	}
}

func TestEvaluator_NoHits(t *testing.T) {
	ev, err := NewEvaluator([]Rule{
		{Name: "low-confidence", Expr: `result.confidence < 10.0`, Note: "x"},
	})
	if err != nil {
		t.Fatal(err)
	}

	result := &core.PredictionResult{Confidence: 95, Status: core.StatusSuccess}
	ev.Apply(result, &core.PredictContext{Symptoms: []string{"fever"}})
	if len(result.Notes) != 0 {
		t.Errorf("no rule should fire, got %v", result.Notes)
	}
}

func TestEvaluator_NonBooleanSkipped(t *testing.T) {
	// an expression that evaluates to a non-boolean must not append a note
	ev, err := NewEvaluator([]Rule{
		{Name: "non-bool", Expr: `result.confidence`, Note: "x"},
		{Name: "real", Expr: `result.confidence > 1.0`, Note: "fired"},
	})
	if err != nil {
		t.Fatal(err)
	}

	result := &core.PredictionResult{Confidence: 42, Status: core.StatusSuccess}
	ev.Apply(result, nil)
	if !reflect.DeepEqual(result.Notes, []string{"fired"}) {
		t.Errorf("Notes = %v, want [fired]", result.Notes)
	}
}
