package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/store"
)

func TestKey_Deterministic(t *testing.T) {
	k1 := Key("dust extraction for workshop", 10, "u1")
	k2 := Key("dust extraction for workshop", 10, "u1")
	if k1 != k2 {
		t.Fatalf("identical inputs produced different keys: %q vs %q", k1, k2)
	}

	// 不同 user 必须得到不同 key
	if k3 := Key("dust extraction for workshop", 10, "u2"); k3 == k1 {
		t.Fatalf("different user produced identical key %q", k3)
	}
	// 不同 limit 必须得到不同 key
	if k4 := Key("dust extraction for workshop", 5, "u1"); k4 == k1 {
		t.Fatalf("different limit produced identical key %q", k4)
	}
}

func TestKey_AnonymousSentinel(t *testing.T) {
	if Key("text", 10, "") != Key("text", 10, core.AnonymousUser) {
		t.Fatal("empty user id should map to the anonymous sentinel key")
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := New(store.NewMemoryStore(), 0, zerolog.Nop())

	key := Key("text", 10, "u1")
	if _, ok := g.GetRecommendations(ctx, key); ok {
		t.Fatal("expected miss on empty store")
	}

	recs := []*core.Recommendation{
		{
			Product:     &core.Product{ID: "p1", Name: "Saw"},
			HybridScore: 0.82,
			Scores:      core.ScoreVector{ContentBased: 0.9, Semantic: 0.8},
			Explanation: []string{"strong text match"},
		},
	}
	g.SetRecommendations(ctx, key, recs)

	got, ok := g.GetRecommendations(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if len(got) != 1 || got[0].Product.ID != "p1" || got[0].HybridScore != 0.82 {
		t.Fatalf("cached payload mismatch: %+v", got[0])
	}
}

func TestGateway_InvalidateNamespace(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	g := New(kv, 0, zerolog.Nop())

	g.SetRecommendations(ctx, Key("a", 10, "u1"), nil)
	g.SetRecommendations(ctx, Key("b", 10, "u1"), nil)
	// 命名空间之外的 key 不受影响
	if err := kv.Set(ctx, "other:key", []byte("x")); err != nil {
		t.Fatal(err)
	}

	n, err := g.InvalidateNamespace(ctx)
	if err != nil {
		t.Fatalf("InvalidateNamespace() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted %d entries, want 2", n)
	}
	if _, err := kv.Get(ctx, "other:key"); err != nil {
		t.Fatal("key outside namespace was deleted")
	}
}

// brokenKV 模拟故障的缓存后端。
type brokenKV struct{ *store.MemoryStore }

var errDown = errors.New("connection refused")

func (b *brokenKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, errDown }
func (b *brokenKV) Set(ctx context.Context, key string, value []byte, ttl ...int) error {
	return errDown
}

func TestGateway_FailuresAreNonFatal(t *testing.T) {
	ctx := context.Background()
	g := New(&brokenKV{store.NewMemoryStore()}, 0, zerolog.Nop())

	// get 故障按 miss 处理
	if _, ok := g.GetRecommendations(ctx, "k"); ok {
		t.Fatal("broken get should behave as a miss")
	}
	// set 故障不 panic、不报错
	g.SetRecommendations(ctx, "k", []*core.Recommendation{})
}

func TestGateway_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	g := New(kv, 0, zerolog.Nop())

	if err := kv.Set(ctx, "bad", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.GetRecommendations(ctx, "bad"); ok {
		t.Fatal("corrupt entry should behave as a miss")
	}
}
