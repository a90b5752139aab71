package scorer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rushteam/prorec/core"
)

// fakeEmbedder 对每个输入返回固定向量。
type fakeEmbedder struct {
	vec []float32
	err error
	n   int // 返回向量数量的覆写；0 表示与输入等长
}

func (f *fakeEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := f.n
	if n == 0 {
		n = len(texts)
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = f.vec
	}
	return out, nil
}

func TestContentBased_IdenticalText(t *testing.T) {
	s := &ContentBased{Embedder: &fakeEmbedder{vec: []float32{1, 0, 0}}}
	rctx := &core.RecommendContext{
		RequestText:  "cordless drill with battery",
		Requirements: []string{"cordless drill", "battery"},
	}
	c := &core.Candidate{Product: &core.Product{
		ID:   "p1",
		Name: "cordless drill with battery",
	}}

	out, err := s.Score(context.Background(), rctx, c)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	// 词法余弦 1.0、包含率 1.0、向量余弦 1.0，加权后仍为 1.0
	if math.Abs(out.Value-1.0) > 1e-6 {
		t.Fatalf("Value = %v, want 1.0", out.Value)
	}
}

func TestContentBased_Errors(t *testing.T) {
	rctx := &core.RecommendContext{RequestText: "need a drill"}
	good := &core.Candidate{Product: &core.Product{ID: "p1", Name: "drill"}}

	tests := []struct {
		name  string
		s     *ContentBased
		rctx  *core.RecommendContext
		c     *core.Candidate
		check func(error) bool
	}{
		{
			name:  "product without text",
			s:     &ContentBased{Embedder: &fakeEmbedder{vec: []float32{1}}},
			rctx:  rctx,
			c:     &core.Candidate{Product: &core.Product{ID: "p2"}},
			check: core.IsDomainError,
		},
		{
			name:  "empty request text",
			s:     &ContentBased{Embedder: &fakeEmbedder{vec: []float32{1}}},
			rctx:  &core.RecommendContext{},
			c:     good,
			check: core.IsDomainError,
		},
		{
			name:  "embedder not configured",
			s:     &ContentBased{},
			rctx:  rctx,
			c:     good,
			check: core.IsUnavailable,
		},
		{
			name:  "embedder call fails",
			s:     &ContentBased{Embedder: &fakeEmbedder{err: errors.New("timeout")}},
			rctx:  rctx,
			c:     good,
			check: core.IsBackendError,
		},
		{
			name:  "wrong vector count",
			s:     &ContentBased{Embedder: &fakeEmbedder{vec: []float32{1}, n: 1}},
			rctx:  rctx,
			c:     good,
			check: core.IsBackendError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Score(context.Background(), tt.rctx, tt.c)
			if err == nil || !tt.check(err) {
				t.Fatalf("Score() error = %v, want domain error", err)
			}
		})
	}
}

func TestContainmentRatio(t *testing.T) {
	tests := []struct {
		name string
		reqs []string
		text string
		want float64
	}{
		{"no requirements", nil, "anything", 0},
		{"full containment", []string{"dust mask"}, "3M Dust Mask respirator", 1.0},
		{"half containment", []string{"dust mask", "hearing protection"}, "dust mask only", 0.5},
		{"no containment", []string{"compressor"}, "hand saw", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := containmentRatio(tt.reqs, tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("containmentRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}
