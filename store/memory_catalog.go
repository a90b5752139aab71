package store

import (
	"context"
	"strings"
	"sync"

	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/pkg/textsim"
)

// MemoryCatalog 是内存实现的 CatalogStore，用于测试/开发/原型。
// 关键词检索基于简单的 token 重合计数，生产环境应换成 ES/OpenSearch 等。
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]*core.Product
	order    []string // 保持插入顺序，保证检索结果确定性
	tasks    map[string][]core.TaskProduct
	compat   map[string][]string // productID -> 兼容商品 ID
}

func NewMemoryCatalog(products []*core.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make(map[string]*core.Product, len(products)),
		tasks:    make(map[string][]core.TaskProduct),
		compat:   make(map[string][]string),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, ok := c.products[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.products[p.ID] = p
	}
	return c
}

// AddTaskProducts 登记任务图谱边（测试数据装配用）。
func (c *MemoryCatalog) AddTaskProducts(taskID string, tps ...core.TaskProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks[taskID] = append(c.tasks[taskID], tps...)
}

// AddCompatible 登记兼容关系（测试数据装配用）。
func (c *MemoryCatalog) AddCompatible(productID string, compatibleIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compat[productID] = append(c.compat[productID], compatibleIDs...)
}

func (c *MemoryCatalog) SearchProducts(ctx context.Context, query string, filters map[string]string, limit int) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	terms := textsim.Tokenize(query)
	out := make([]*core.Product, 0, limit)
	for _, id := range c.order {
		p := c.products[id]
		if !matchFilters(p, filters) {
			continue
		}
		if len(terms) > 0 && !containsAnyTerm(p.Text(), terms) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (c *MemoryCatalog) GetProductsForTask(ctx context.Context, taskID string, limit int) ([]core.TaskProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tps := c.tasks[taskID]
	if limit > 0 && len(tps) > limit {
		tps = tps[:limit]
	}
	out := make([]core.TaskProduct, len(tps))
	copy(out, tps)
	return out, nil
}

func (c *MemoryCatalog) GetCompatibleProducts(ctx context.Context, productID string, limit int) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := c.compat[productID]
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matchFilters(p *core.Product, filters map[string]string) bool {
	for field, want := range filters {
		var got string
		switch field {
		case "category":
			got = p.Category
		case "brand":
			got = p.Brand
		default:
			return false
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

func containsAnyTerm(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

var _ core.CatalogStore = (*MemoryCatalog)(nil)
