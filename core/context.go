package core

// AnonymousUser 是无登录用户的哨兵值，参与缓存 key 推导，保证匿名请求命中同一缓存。
const AnonymousUser = "anonymous"

// RecommendContext 承载单次推荐请求的全部上下文，贯穿整个流水线透传。
// 请求级生命周期，各阶段只追加不覆盖（Requirements 由抽取阶段写入一次）。
type RecommendContext struct {
	// RequestText 原始需求文本（RFP/需求文档）
	RequestText string

	// UserID 可选的用户标识；为空时协同过滤返回「无信号」而非报错
	UserID string

	// Limit 调用方期望返回的推荐数量
	Limit int

	// Explain 是否生成可读的推荐理由
	Explain bool

	// Requirements 由需求抽取阶段写入的离散需求条目（最多 20 条）
	Requirements []string

	// Params 请求级扩展参数（召回源/过滤器可读），不参与缓存 key
	Params map[string]any
}

// UserKey 返回参与缓存 key 推导的用户标识；匿名请求统一映射到 AnonymousUser。
func (rctx *RecommendContext) UserKey() string {
	if rctx.UserID == "" {
		return AnonymousUser
	}
	return rctx.UserID
}
