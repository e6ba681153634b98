package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rushteam/diagkit/pkg/utils"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError(ModuleDataset, ErrorCodeInvalidInput, "bad header")
	if err.Error() != "bad header" {
		t.Errorf("Error() = %q", err.Error())
	}

	// survives wrapping
	wrapped := fmt.Errorf("load: %w", err)
	derr := GetDomainError(wrapped)
	if derr == nil || derr.Module != ModuleDataset || derr.Code != ErrorCodeInvalidInput {
		t.Errorf("GetDomainError(wrapped) = %+v", derr)
	}

	if GetDomainError(errors.New("plain")) != nil {
		t.Error("plain error should not convert")
	}
	if GetDomainError(nil) != nil {
		t.Error("nil should not convert")
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsNotFound(ErrStoreNotFound) {
		t.Error("ErrStoreNotFound should be NOT_FOUND")
	}
	if IsNotFound(NewDomainError(ModuleModel, ErrorCodeUnavailable, "x")) {
		t.Error("UNAVAILABLE is not NOT_FOUND")
	}
	if !IsNoTrainingData(NewDomainError(ModuleSymptom, ErrorCodeNoTrainingData, "x")) {
		t.Error("expected NO_TRAINING_DATA predicate to match")
	}
}

func TestResultConstructors(t *testing.T) {
	tests := []struct {
		name   string
		result *PredictionResult
		status Status
	}{
		{name: "no symptoms", result: NewNoSymptomsResult(), status: StatusNoSymptoms},
		{name: "unrecognized", result: NewUnrecognizedResult(), status: StatusUnrecognized},
		{name: "low match", result: NewLowMatchResult(0.05, 5.0), status: StatusLowMatch},
		{name: "error", result: NewErrorResult("boom"), status: StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Status != tt.status {
				t.Errorf("status = %s, want %s", tt.result.Status, tt.status)
			}
			if tt.result.PredictedDisease != "Unknown" {
				t.Errorf("disease = %q, want Unknown", tt.result.PredictedDisease)
			}
			if tt.result.Medicine == "" {
				t.Error("guidance text must not be empty")
			}
		})
	}

	low := NewLowMatchResult(0.05, 5.0)
	if low.Score != 0.05 || low.Confidence != 5.0 {
		t.Errorf("low match should keep the raw score: %+v", low)
	}
}

func TestPutLabelMerges(t *testing.T) {
	r := &PredictionResult{}
	r.PutLabel("predictor", utils.Label{Value: "overlap", Source: "predict"})
	r.PutLabel("predictor", utils.Label{Value: "forest", Source: "fallback"})

	got := r.Labels["predictor"]
	if got.Value != "overlap|forest" {
		t.Errorf("merged label = %+v", got)
	}
}
