package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/prorec/core"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "absent"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(absent) error = %v, want ErrStoreNotFound", err)
	}

	if err := ms.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get(k1) = %q, %v", got, err)
	}

	if err := ms.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after delete error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k1", []byte("v1"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k1"); err != nil {
		t.Fatalf("Get before expiry error = %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after expiry error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_DeleteByPrefix(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	for _, k := range []string{"rec:a", "rec:b", "other:c"} {
		if err := ms.Set(ctx, k, []byte("x")); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	n, err := ms.DeleteByPrefix(ctx, "rec:")
	if err != nil {
		t.Fatalf("DeleteByPrefix() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted = %d, want 2", n)
	}
	if _, err := ms.Get(ctx, "other:c"); err != nil {
		t.Fatalf("unrelated key removed: %v", err)
	}
}

func TestMemoryHistory_FindSimilarUsers(t *testing.T) {
	h := NewMemoryHistory()
	h.AddPurchases("u1",
		core.PurchaseRecord{ProductID: "p1", Category: "tools", Quantity: 1},
		core.PurchaseRecord{ProductID: "p2", Category: "safety", Quantity: 1},
		core.PurchaseRecord{ProductID: "p3", Category: "office", Quantity: 1},
	)
	// u2 重合 2/3，u3 重合 1/3，u4 重合 0
	h.AddPurchases("u2",
		core.PurchaseRecord{ProductID: "p1", Category: "tools", Quantity: 1},
		core.PurchaseRecord{ProductID: "p2", Category: "safety", Quantity: 1},
	)
	h.AddPurchases("u3", core.PurchaseRecord{ProductID: "p3", Category: "office", Quantity: 1})
	h.AddPurchases("u4", core.PurchaseRecord{ProductID: "p9", Category: "garden", Quantity: 1})

	got, err := h.FindSimilarUsers(context.Background(), "u1", []string{"tools", "safety", "office"})
	if err != nil {
		t.Fatalf("FindSimilarUsers() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"u2", "u3"}) {
		t.Fatalf("FindSimilarUsers() = %v, want [u2 u3]", got)
	}

	got, err = h.FindSimilarUsers(context.Background(), "u1", nil)
	if err != nil || got != nil {
		t.Fatalf("FindSimilarUsers(no categories) = %v, %v, want nil", got, err)
	}
}

func TestKVReferenceTables(t *testing.T) {
	kv := NewMemoryStore()
	defer kv.Close()
	ctx := context.Background()

	if err := kv.Set(ctx, RefKeyCategoryKeywords, []byte(`{"safety":["mask","gloves"]}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := kv.Set(ctx, RefKeyTaskKeywords, []byte(`{"drill":"drilling"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ref := &KVReferenceTables{KV: kv}
	cats, err := ref.CategoryKeywordMappings(ctx)
	if err != nil {
		t.Fatalf("CategoryKeywordMappings() error = %v", err)
	}
	if !reflect.DeepEqual(cats["safety"], []string{"mask", "gloves"}) {
		t.Errorf("cats = %v", cats)
	}
	tasks, err := ref.TaskKeywordMappings(ctx)
	if err != nil {
		t.Fatalf("TaskKeywordMappings() error = %v", err)
	}
	if tasks["drill"] != "drilling" {
		t.Errorf("tasks = %v", tasks)
	}
}

func TestKVReferenceTables_MissingKey(t *testing.T) {
	kv := NewMemoryStore()
	defer kv.Close()
	ref := &KVReferenceTables{KV: kv}
	if _, err := ref.CategoryKeywordMappings(context.Background()); err == nil {
		t.Fatal("expected error for missing reference key")
	}
}
