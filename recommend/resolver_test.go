package recommend

import (
	"reflect"
	"testing"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/dataset"
	"github.com/rushteam/diagkit/symptom"
)

func fixtureDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Rows: []dataset.Row{
			{
				Disease:      "Flu",
				SymptomCells: []string{"fever, cough", "fatigue"},
				Medicine:     "Oseltamivir",
				Diet:         "Warm fluids",
				FoodsToAvoid: "Fried food",
			},
			{
				Disease:      "Flu",
				SymptomCells: []string{"fever", "body ache"},
				Medicine:     "Paracetamol",
				Diet:         "Light meals",
				FoodsToAvoid: "nan",
			},
			{
				Disease:      "Cold",
				SymptomCells: []string{"cough", "sneezing"},
				Medicine:     "",
				Diet:         "Vitamin C",
				FoodsToAvoid: "none",
			},
		},
	}
}

func TestCompile(t *testing.T) {
	rows := Compile(fixtureDataset(), symptom.NewNormalizer())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	flu := rows[0]
	if flu.Disease != "Flu" || flu.Index != 0 {
		t.Errorf("unexpected first row: %+v", flu)
	}
	for _, tok := range []string{"fever", "cough", "fatigue"} {
		if !flu.Symptoms.Has(tok) {
			t.Errorf("first row missing token %q: %v", tok, flu.Symptoms)
		}
	}
	if !rows[1].Symptoms.Has("body_ache") {
		t.Errorf("multi-word symptom not normalized: %v", rows[1].Symptoms)
	}

	sets := RowSets(rows)
	if len(sets) != 3 || sets[2].Len() != 2 {
		t.Errorf("RowSets mismatch: %v", sets)
	}
}

func TestResolver_PicksMaxIntersectionRow(t *testing.T) {
	norm := symptom.NewNormalizer()
	rows := Compile(fixtureDataset(), norm)
	rv := NewResolver(rows, norm)

	// two Flu rows: {fever,cough,fatigue} and {fever,body_ache};
	// the input overlaps the first one more
	med, diet, avoid := rv.Resolve("Flu", []string{"fever", "cough"})
	if med != "Oseltamivir" || diet != "Warm fluids" || avoid != "Fried food" {
		t.Errorf("Resolve = (%q, %q, %q)", med, diet, avoid)
	}

	// overlap favors the second Flu row
	med, _, _ = rv.Resolve("Flu", []string{"body ache"})
	if med != "Paracetamol" {
		t.Errorf("expected Paracetamol for body ache, got %q", med)
	}
}

func TestResolver_FallbackStrings(t *testing.T) {
	norm := symptom.NewNormalizer()
	rv := NewResolver(Compile(fixtureDataset(), norm), norm)

	// Cold row has empty medicine and "none" avoid cell
	med, diet, avoid := rv.Resolve("Cold", []string{"sneezing"})
	if med != core.FallbackMedicine {
		t.Errorf("empty medicine should fall back, got %q", med)
	}
	if diet != "Vitamin C" {
		t.Errorf("diet should pass through, got %q", diet)
	}
	if avoid != core.FallbackAvoid {
		t.Errorf("none avoid should fall back, got %q", avoid)
	}
}

func TestResolver_UnknownDisease(t *testing.T) {
	norm := symptom.NewNormalizer()
	rv := NewResolver(Compile(fixtureDataset(), norm), norm)

	med, diet, avoid := rv.Resolve("Migraine", []string{"headache"})
	want := []string{core.FallbackMedicine, core.FallbackDiet, core.FallbackAvoid}
	if !reflect.DeepEqual([]string{med, diet, avoid}, want) {
		t.Errorf("unknown disease should return safe fallbacks, got (%q, %q, %q)", med, diet, avoid)
	}
}
