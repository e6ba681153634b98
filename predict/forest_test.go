package predict

import (
	"context"
	"testing"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/dataset"
	"github.com/rushteam/diagkit/model"
	"github.com/rushteam/diagkit/recommend"
	"github.com/rushteam/diagkit/symptom"
)

func forestFixture(t *testing.T) *Forest {
	t.Helper()
	ds := &dataset.Dataset{
		Rows: []dataset.Row{
			{Disease: "Flu", SymptomCells: []string{"fever, cough", "fatigue"}},
			{Disease: "Flu", SymptomCells: []string{"fever, body ache"}},
			{Disease: "Cold", SymptomCells: []string{"cough, sneezing"}},
			{Disease: "Cold", SymptomCells: []string{"sneezing, runny nose"}},
		},
	}
	norm := symptom.NewNormalizer()
	rows := recommend.Compile(ds, norm)
	vocab, err := symptom.BuildVocabulary(recommend.RowSets(rows))
	if err != nil {
		t.Fatal(err)
	}

	x := make([][]uint8, len(rows))
	y := make([]string, len(rows))
	for i, r := range rows {
		x[i] = vocab.VectorizeSet(r.Symptoms)
		y[i] = r.Disease
	}
	m, _, err := model.Train(x, y, model.ForestConfig{Trees: 31, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	return &Forest{Norm: norm, Vocab: vocab, Model: m}
}

func TestForest_Predict(t *testing.T) {
	p := forestFixture(t)

	res, err := p.Predict(context.Background(), &core.PredictContext{
		Symptoms: []string{"fever", "body ache"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != core.StatusSuccess {
		t.Fatalf("status = %s, want success", res.Status)
	}
	if res.PredictedDisease != "Flu" {
		t.Errorf("disease = %q, want Flu", res.PredictedDisease)
	}
	if res.Confidence <= 0 || res.Confidence > 100 {
		t.Errorf("confidence out of range: %v", res.Confidence)
	}
}

func TestForest_Candidates(t *testing.T) {
	p := forestFixture(t)

	res, err := p.Predict(context.Background(), &core.PredictContext{Symptoms: []string{"sneezing"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) == 0 || len(res.Candidates) > 3 {
		t.Fatalf("candidates = %v", res.Candidates)
	}
	// candidates sorted by confidence, head matches the main conclusion
	if res.Candidates[0].Disease != res.PredictedDisease {
		t.Errorf("first candidate %q != predicted %q", res.Candidates[0].Disease, res.PredictedDisease)
	}
	for i := 1; i < len(res.Candidates); i++ {
		if res.Candidates[i].Confidence > res.Candidates[i-1].Confidence {
			t.Errorf("candidates not sorted: %v", res.Candidates)
		}
	}
}

func TestForest_NoSymptoms(t *testing.T) {
	p := forestFixture(t)
	res, err := p.Predict(context.Background(), &core.PredictContext{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != core.StatusNoSymptoms {
		t.Errorf("status = %s, want no_symptoms", res.Status)
	}
}

func TestForest_Unrecognized(t *testing.T) {
	p := forestFixture(t)
	res, err := p.Predict(context.Background(), &core.PredictContext{Symptoms: []string{"levitation"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != core.StatusUnrecognized {
		t.Errorf("status = %s, want unrecognized", res.Status)
	}
}

func TestForest_NilModel(t *testing.T) {
	p := forestFixture(t)
	p.Model = nil

	_, err := p.Predict(context.Background(), &core.PredictContext{Symptoms: []string{"fever"}})
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	if derr := core.GetDomainError(err); derr == nil || derr.Code != core.ErrorCodeUnavailable {
		t.Errorf("expected UNAVAILABLE, got %v", err)
	}
}
