package symptom

import (
	"math"
	"reflect"
	"testing"
)

func TestSet_Jaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want float64
	}{
		{name: "identical", a: NewSet("a", "b"), b: NewSet("a", "b"), want: 1.0},
		{name: "disjoint", a: NewSet("a"), b: NewSet("b"), want: 0.0},
		{name: "partial", a: NewSet("a", "b", "c"), b: NewSet("b", "c", "d"), want: 0.5},
		{name: "both empty", a: NewSet(), b: NewSet(), want: 0.0},
		{name: "one empty", a: NewSet("a"), b: NewSet(), want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Jaccard(tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
			// symmetric
			if rev := tt.b.Jaccard(tt.a); math.Abs(rev-got) > 1e-12 {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestSet_IntersectLen(t *testing.T) {
	a := NewSet("a", "b", "c")
	b := NewSet("b", "c", "d", "e")
	if got := a.IntersectLen(b); got != 2 {
		t.Errorf("IntersectLen = %d, want 2", got)
	}
	if got := a.UnionLen(b); got != 5 {
		t.Errorf("UnionLen = %d, want 5", got)
	}
}

func TestSet_Intersect(t *testing.T) {
	a := NewSet("fever", "cough", "fatigue")
	b := NewSet("cough", "fatigue", "sneezing")
	want := []string{"cough", "fatigue"}
	if got := a.Intersect(b); !reflect.DeepEqual(got, want) {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
}
