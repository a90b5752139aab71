package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/prorec/core"
)

// MemoryHistory 是内存实现的 PurchaseHistoryStore，用于测试/开发/原型。
type MemoryHistory struct {
	mu      sync.RWMutex
	records map[string][]core.PurchaseRecord
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{records: make(map[string][]core.PurchaseRecord)}
}

// AddPurchases 追加用户购买记录（测试数据装配用）。
func (h *MemoryHistory) AddPurchases(userID string, recs ...core.PurchaseRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[userID] = append(h.records[userID], recs...)
}

func (h *MemoryHistory) GetPurchaseHistory(ctx context.Context, userID string) ([]core.PurchaseRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	recs := h.records[userID]
	out := make([]core.PurchaseRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// FindSimilarUsers 返回类目重合度 >= 1/3 的其他用户。
// 重合度 = |交集| / |目标用户类目集合|。
func (h *MemoryHistory) FindSimilarUsers(ctx context.Context, userID string, categories []string) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(categories) == 0 {
		return nil, nil
	}
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}

	var out []string
	for uid, recs := range h.records {
		if uid == userID {
			continue
		}
		seen := make(map[string]bool)
		common := 0
		for _, r := range recs {
			if want[r.Category] && !seen[r.Category] {
				seen[r.Category] = true
				common++
			}
		}
		if float64(common)/float64(len(want)) >= 1.0/3.0 {
			out = append(out, uid)
		}
	}
	sort.Strings(out) // map 遍历无序，排序保证结果确定
	return out, nil
}

var _ core.PurchaseHistoryStore = (*MemoryHistory)(nil)
