package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/prorec/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的商品。
// 黑名单可以是内存列表，也可以从 KV 存储按 key 读取（JSON 数组）。
type BlacklistFilter struct {
	// ProductIDs 是内存中的黑名单商品 ID 列表
	ProductIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if c == nil || c.Product == nil {
		return true, nil
	}

	// 从内存列表检查
	for _, id := range f.ProductIDs {
		if c.Product.ID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		raw, err := f.Store.Get(ctx, f.Key)
		if err == nil {
			var blacklist []string
			if json.Unmarshal(raw, &blacklist) == nil {
				for _, id := range blacklist {
					if c.Product.ID == id {
						return true, nil
					}
				}
			}
		}
	}

	return false, nil
}

var _ Filter = (*BlacklistFilter)(nil)
