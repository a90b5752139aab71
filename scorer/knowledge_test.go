package scorer

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/store"
)

func knowledgeFixture(t *testing.T) (*store.MemoryCatalog, *KnowledgeGraph) {
	t.Helper()
	cat := store.NewMemoryCatalog([]*core.Product{
		{ID: "saw-1", Name: "Table Saw", Category: "power_tools"},
		{ID: "blade-1", Name: "Saw Blade", Category: "accessories"},
		{ID: "mask-1", Name: "Dust Mask", Category: "safety"},
	})
	cat.AddTaskProducts("table_build",
		core.TaskProduct{ProductID: "saw-1", Necessity: core.NecessityRequired},
		core.TaskProduct{ProductID: "mask-1", Necessity: core.NecessityRecommended},
	)
	kg, err := NewKnowledgeGraph(cat, map[string]string{
		"table":     "table_build",
		"table saw": "table_build",
	})
	if err != nil {
		t.Fatalf("NewKnowledgeGraph() error = %v", err)
	}
	return cat, kg
}

func TestNewKnowledgeGraph_EmptyTableFailsFast(t *testing.T) {
	cat := store.NewMemoryCatalog(nil)
	_, err := NewKnowledgeGraph(cat, nil)
	de := core.GetDomainError(err)
	if de == nil || de.Code != core.ErrorCodeReferenceDataEmpty {
		t.Fatalf("NewKnowledgeGraph() error = %v, want REFERENCE_DATA_EMPTY", err)
	}
}

func TestKnowledgeGraph_NoTaskNoSignal(t *testing.T) {
	_, kg := knowledgeFixture(t)
	rctx := &core.RecommendContext{Requirements: []string{"garden hose"}}
	out, err := kg.Score(context.Background(), rctx, &core.Candidate{Product: &core.Product{ID: "saw-1"}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if !out.NoSignal {
		t.Fatalf("out = %+v, want no signal", out)
	}
}

func TestKnowledgeGraph_NecessityScores(t *testing.T) {
	_, kg := knowledgeFixture(t)
	rctx := &core.RecommendContext{Requirements: []string{"build a dining table"}}

	tests := []struct {
		name string
		id   string
		want float64
	}{
		{"required", "saw-1", 0.9},
		{"recommended", "mask-1", 0.7},
		{"not in task", "blade-1", 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := kg.Score(context.Background(), rctx, &core.Candidate{Product: &core.Product{ID: tt.id}})
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(out.Value-tt.want) > 1e-9 {
				t.Errorf("Value = %v, want %v", out.Value, tt.want)
			}
		})
	}
}

func TestKnowledgeGraph_CompatBonus(t *testing.T) {
	cat, kg := knowledgeFixture(t)
	rctx := &core.RecommendContext{Requirements: []string{"build a dining table"}}

	// 2 个兼容商品加 0.1
	cat.AddCompatible("blade-1", "saw-1", "mask-1")
	out, err := kg.Score(context.Background(), rctx, &core.Candidate{Product: &core.Product{ID: "blade-1"}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(out.Value-0.5) > 1e-9 {
		t.Fatalf("Value = %v, want 0.5 (0.4 base + 0.1 bonus)", out.Value)
	}
}

func TestKnowledgeGraph_InferTasks(t *testing.T) {
	_, kg := knowledgeFixture(t)

	tests := []struct {
		name string
		reqs []string
		want []string
	}{
		{"token match", []string{"need a TABLE for the shop"}, []string{"table_build"}},
		{"multi-word contains match", []string{"a table saw please"}, []string{"table_build"}},
		{"no match", []string{"hearing protection"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kg.inferTasks(tt.reqs)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("inferTasks() = %v, want %v", got, tt.want)
			}
		})
	}
}
