package core

import "context"

// CatalogStore 是商品目录的领域接口，候选生成与知识图谱打分依赖它。
//
// 设计原则与 Store 相同：接口定义在 core，实现位于基础设施层
// （store.MemoryCatalog 用于测试/原型，生产实现由业务侧提供）。
type CatalogStore interface {
	// SearchProducts 关键词检索商品，filters 为可选的字段等值过滤
	// （如 {"category": "safety"}），limit 截断结果数量。
	SearchProducts(ctx context.Context, query string, filters map[string]string, limit int) ([]*Product, error)

	// GetProductsForTask 返回任务图谱中某任务关联的商品及必要程度。
	GetProductsForTask(ctx context.Context, taskID string, limit int) ([]TaskProduct, error)

	// GetCompatibleProducts 返回与指定商品兼容的商品列表。
	GetCompatibleProducts(ctx context.Context, productID string, limit int) ([]*Product, error)
}

// GraphRecommender 是图召回服务的领域接口：以原始请求文本为输入，
// 返回图关系推荐的商品。实现可以是 HTTP 图服务（candidate.GraphSource
// 自带一个）或任意自定义图存储。
type GraphRecommender interface {
	// RecommendProducts 基于请求文本做图推荐，limit 截断结果数量。
	RecommendProducts(ctx context.Context, query string, limit int) ([]*Product, error)
}

// PurchaseHistoryStore 是购买历史的领域接口，协同过滤打分依赖它。
//
// 「无购买历史」返回空切片而非错误：这是合法的稳态（新用户），
// 只有底层查询失败才返回 error。
type PurchaseHistoryStore interface {
	// GetPurchaseHistory 返回用户的全部购买记录；无记录返回空切片。
	GetPurchaseHistory(ctx context.Context, userID string) ([]PurchaseRecord, error)

	// FindSimilarUsers 返回与目标用户类目重合度 >= 1/3 的用户 ID 列表。
	// categories 为目标用户购买过的类目集合。
	FindSimilarUsers(ctx context.Context, userID string, categories []string) ([]string, error)
}

// ReferenceTables 提供外部维护的参考映射表，引擎构造时一次性加载，
// 进程内只读。表为空视为配置缺陷（fail fast），不存在硬编码的兜底表。
type ReferenceTables interface {
	// CategoryKeywordMappings 返回 类目 -> 关键词列表 映射（类目推断用）。
	CategoryKeywordMappings(ctx context.Context) (map[string][]string, error)

	// TaskKeywordMappings 返回 关键词 -> 任务 ID 映射（任务推断用）。
	TaskKeywordMappings(ctx context.Context) (map[string]string, error)
}
