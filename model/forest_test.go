package model

import (
	"math"
	"reflect"
	"testing"
)

// separable fixture: class A fires feature 0, class B fires feature 1,
// class C fires feature 2.
func separableData() ([][]uint8, []string) {
	x := [][]uint8{
		{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0},
		{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
	}
	y := []string{
		"A", "A", "A", "A",
		"B", "B", "B", "B",
		"C", "C", "C", "C",
	}
	return x, y
}

func TestTrain_Validation(t *testing.T) {
	if _, _, err := Train(nil, nil, ForestConfig{}); err == nil {
		t.Error("expected error for empty training data")
	}
	if _, _, err := Train([][]uint8{{1}}, []string{"A", "B"}, ForestConfig{}); err == nil {
		t.Error("expected error for mismatched x/y lengths")
	}
}

func TestForest_Classes(t *testing.T) {
	x, y := separableData()
	f, _, err := Train(x, y, ForestConfig{Trees: 11, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(f.Classes, []string{"A", "B", "C"}) {
		t.Errorf("Classes = %v, want lexicographic [A B C]", f.Classes)
	}
}

func TestForest_PredictSeparable(t *testing.T) {
	x, y := separableData()
	f, _, err := Train(x, y, ForestConfig{Trees: 31, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input []uint8
		want  string
	}{
		{input: []uint8{1, 0, 0}, want: "A"},
		{input: []uint8{0, 1, 0}, want: "B"},
		{input: []uint8{0, 0, 1}, want: "C"},
	}
	for _, tt := range tests {
		if got, _ := f.Predict(tt.input); got != tt.want {
			t.Errorf("Predict(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestForest_ProbaDistribution(t *testing.T) {
	x, y := separableData()
	f, _, err := Train(x, y, ForestConfig{Trees: 15, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	proba := f.PredictProba([]uint8{1, 0, 0})
	if len(proba) != 3 {
		t.Fatalf("expected 3 class probabilities, got %d", len(proba))
	}
	total := 0.0
	for _, p := range proba {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %v", proba)
		}
		total += p
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1.0", total)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	x, y := separableData()

	f1, acc1, err := Train(x, y, ForestConfig{Trees: 21, Seed: 42, HoldoutRatio: 0.25})
	if err != nil {
		t.Fatal(err)
	}
	f2, acc2, err := Train(x, y, ForestConfig{Trees: 21, Seed: 42, HoldoutRatio: 0.25})
	if err != nil {
		t.Fatal(err)
	}

	if acc1 != acc2 {
		t.Errorf("holdout accuracy differs between runs: %v vs %v", acc1, acc2)
	}
	for _, input := range [][]uint8{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}} {
		p1 := f1.PredictProba(input)
		p2 := f2.PredictProba(input)
		if !reflect.DeepEqual(p1, p2) {
			t.Errorf("PredictProba(%v) differs between runs: %v vs %v", input, p1, p2)
		}
	}
}

func TestTrain_HoldoutAccuracy(t *testing.T) {
	x, y := separableData()

	// separable data with a stratified split should be near perfect
	_, acc, err := Train(x, y, ForestConfig{Trees: 31, Seed: 7, HoldoutRatio: 0.25})
	if err != nil {
		t.Fatal(err)
	}
	if acc < 0.5 {
		t.Errorf("holdout accuracy suspiciously low: %v", acc)
	}

	// no holdout means no diagnostic accuracy
	_, acc, err = Train(x, y, ForestConfig{Trees: 5, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if acc != 0 {
		t.Errorf("expected 0 accuracy without holdout, got %v", acc)
	}
}

func TestTrain_SingleSampleClass(t *testing.T) {
	// one class has a single sample: stratified split is impossible,
	// training must still succeed via the plain random split
	x := [][]uint8{{1, 0}, {1, 0}, {0, 1}}
	y := []string{"A", "A", "B"}

	f, _, err := Train(x, y, ForestConfig{Trees: 9, Seed: 1, HoldoutRatio: 0.25})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if len(f.Classes) != 2 {
		t.Errorf("Classes = %v", f.Classes)
	}
}
