package core

import "strings"

// Product 是商品目录中的只读条目，由外部 Catalog 维护，推荐引擎只消费不修改。
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
}

// Text 拼接商品的全部文本字段，用于词法/语义匹配。
func (p *Product) Text() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Name, p.Description, p.Category, p.Brand} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Candidate 是待打分的候选商品：商品引用 + 召回来源（provenance）。
// 请求级生命周期，打分后丢弃；按 Product.ID 去重，先到先得。
type Candidate struct {
	Product *Product
	// Source 标记候选来自哪个召回源（keyword / graph / category），
	// 仅用于解释与观测，不影响打分（分数对每个候选重新计算）。
	Source string
}

// PurchaseRecord 是一条购买历史记录，由外部购买历史存储提供。
type PurchaseRecord struct {
	ProductID string
	Category  string
	// Quantity 购买次数/数量，协同过滤用它累计共购频次。
	Quantity int
}

// Necessity 表示任务-商品关系的必要程度（知识图谱打分使用）。
type Necessity string

const (
	NecessityRequired    Necessity = "required"
	NecessityRecommended Necessity = "recommended"
	NecessityOptional    Necessity = "optional"
)

// TaskProduct 是任务图谱中「某任务需要某商品」的一条边。
type TaskProduct struct {
	ProductID string
	Necessity Necessity
}
