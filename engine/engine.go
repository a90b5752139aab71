// Package engine 实现推荐引擎门面：编排缓存、抽取、候选生成、并行打分、
// 融合与解释，并持有全局失败策略。
//
// 失败策略是非对称的，这是整个设计的核心张力：
//   - 内部各阶段 fail fast：策略与子阶段用带语境的类型化错误大声失败；
//   - 公共入口 fail soft：Recommend 捕获任何阶段的错误，记日志后
//     返回空列表，绝不把异常抛给调用方。
//
// 调用方拿到的永远是一个列表（可能为空）；「没有匹配」与「内部故障」
// 在返回值上不可区分，诊断依赖服务端日志（显式取舍，保持 API 简单）。
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rushteam/prorec/cache"
	"github.com/rushteam/prorec/candidate"
	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/extract"
	"github.com/rushteam/prorec/filter"
	"github.com/rushteam/prorec/fusion"
	"github.com/rushteam/prorec/scorer"
)

// 默认参数；Options 对应字段为零值时生效。
const (
	DefaultLimit            = 10
	DefaultCandidateTarget  = 40
	DefaultRequestTimeout   = 8 * time.Second
	DefaultSourceTimeout    = 3 * time.Second
	DefaultScoreConcurrency = 8
)

// Options 是引擎的构造参数。
type Options struct {
	// KV 缓存后端，必填；构造时探测可达性
	KV core.KeyValueStore
	// Catalog 商品目录，必填
	Catalog core.CatalogStore
	// History 购买历史存储，必填（协同过滤依赖）
	History core.PurchaseHistoryStore
	// Graph 图推荐服务，选填；缺省时跳过图召回源
	Graph core.GraphRecommender
	// LLM 大模型服务，必填（需求抽取与语义打分依赖）
	LLM core.LLMService
	// Embedder 向量化服务，必填（内容打分依赖）
	Embedder core.EmbeddingService
	// Reference 参考映射表，必填；构造时一次性加载，空表 fail fast
	Reference core.ReferenceTables

	// Weights 融合权重，必填且和为 1.0（±0.01）；没有默认权重
	Weights core.Weights

	CacheTTLSeconds  int
	RequestTimeout   time.Duration
	SourceTimeout    time.Duration
	CandidateTarget  int
	ScoreConcurrency int

	// FilterExprs 候选过滤的 CEL 保留条件（编译失败即构造失败）
	FilterExprs []string

	Logger zerolog.Logger
}

// Engine 是推荐引擎门面。进程级单例：权重、参考表、缓存客户端共享只读。
type Engine struct {
	cache     *cache.Gateway
	extractor *extract.Extractor
	generator *candidate.Generator
	filters   []filter.Filter
	parallel  *scorer.Parallel
	weights   core.Weights

	target  int
	timeout time.Duration
	logger  zerolog.Logger
}

// Request 是一次推荐请求。
type Request struct {
	Text    string
	Limit   int
	UserID  string
	Explain bool
}

// New 构造引擎，进程生命周期内调用一次。
//
// 构造期校验（任何一项不过即拒绝启动）：
//   - 权重存在且和为 1.0（±0.01）
//   - 缓存后端可达（Ping）
//   - 类目/任务参考表非空（此时加载，请求中不再查表）
//   - 过滤表达式可编译
func New(opts Options) (*Engine, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.KV == nil {
		return nil, fmt.Errorf("engine: cache backend (KV) is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("engine: catalog store is required")
	}
	if opts.History == nil {
		return nil, fmt.Errorf("engine: purchase history store is required")
	}
	if opts.LLM == nil {
		return nil, fmt.Errorf("engine: llm service is required")
	}
	if opts.Embedder == nil {
		return nil, fmt.Errorf("engine: embedding service is required")
	}
	if opts.Reference == nil {
		return nil, fmt.Errorf("engine: reference tables are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := opts.KV.Ping(ctx); err != nil {
		return nil, fmt.Errorf("engine: cache backend unreachable: %w", err)
	}

	// 参考表在构造期一次性加载：数据缺失要在启动时暴露，而非请求中
	categoryKeywords, err := opts.Reference.CategoryKeywordMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: load category keyword mappings: %w", err)
	}
	taskKeywords, err := opts.Reference.TaskKeywordMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: load task keyword mappings: %w", err)
	}

	logger := opts.Logger.With().Str("component", "engine").Logger()

	categorySource, err := candidate.NewCategorySource(opts.Catalog, categoryKeywords)
	if err != nil {
		return nil, err
	}
	sources := []candidate.Source{
		&candidate.KeywordSource{Catalog: opts.Catalog},
	}
	if opts.Graph != nil {
		sources = append(sources, &candidate.GraphSource{Recommender: opts.Graph})
	} else {
		logger.Warn().Msg("graph recommender not configured, graph candidate source disabled")
	}
	sources = append(sources, categorySource)

	knowledge, err := scorer.NewKnowledgeGraph(opts.Catalog, taskKeywords)
	if err != nil {
		return nil, err
	}

	filters := make([]filter.Filter, 0, len(opts.FilterExprs))
	for _, expr := range opts.FilterExprs {
		f, err := filter.NewCELFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		filters = append(filters, f)
	}

	sourceTimeout := opts.SourceTimeout
	if sourceTimeout <= 0 {
		sourceTimeout = DefaultSourceTimeout
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	target := opts.CandidateTarget
	if target <= 0 {
		target = DefaultCandidateTarget
	}

	return &Engine{
		cache:     cache.New(opts.KV, opts.CacheTTLSeconds, opts.Logger),
		extractor: &extract.Extractor{LLM: opts.LLM},
		generator: &candidate.Generator{
			Sources: sources,
			Timeout: sourceTimeout,
			Logger:  opts.Logger,
		},
		filters: filters,
		parallel: &scorer.Parallel{
			Collaborative:  &scorer.Collaborative{History: opts.History},
			ContentBased:   &scorer.ContentBased{Embedder: opts.Embedder},
			KnowledgeGraph: knowledge,
			Semantic:       &scorer.Semantic{LLM: opts.LLM},
			MaxConcurrent:  opts.ScoreConcurrency,
		},
		weights: opts.Weights,
		target:  target,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Recommend 是公共入口，也是唯一的错误兜底边界。
//
// 状态机（请求级）：CacheCheck → Extract → Generate → Filter → Score →
// Fuse → Explain → CachePopulate → Return；缓存命中直接跳到 Return。
// 任何阶段出错都折算为空列表 + 一条带 request_id 的诊断日志。
func (e *Engine) Recommend(ctx context.Context, req Request) []*core.Recommendation {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	logger := e.logger.With().Str("request_id", uuid.NewString()).Logger()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	key := cache.Key(req.Text, req.Limit, req.UserID)
	if recs, ok := e.cache.GetRecommendations(ctx, key); ok {
		logger.Debug().Int("count", len(recs)).Msg("cache hit")
		return recs
	}

	recs, err := e.recommend(ctx, req, key, logger)
	if err != nil {
		logger.Error().Err(err).Str("user_id", req.UserID).Int("limit", req.Limit).
			Msg("recommendation pipeline failed, returning empty result")
		return []*core.Recommendation{}
	}
	return recs
}

// recommend 执行缓存未命中后的完整流水线。
func (e *Engine) recommend(ctx context.Context, req Request, key string, logger zerolog.Logger) ([]*core.Recommendation, error) {
	rctx := &core.RecommendContext{
		RequestText: req.Text,
		UserID:      req.UserID,
		Limit:       req.Limit,
		Explain:     req.Explain,
	}

	requirements, err := e.extractor.Extract(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	rctx.Requirements = requirements

	cands, err := e.generator.Generate(ctx, rctx, e.target)
	if err != nil {
		return nil, err
	}
	// 空候选集不是错误：没有可打分对象，直接返回空列表
	if len(cands) == 0 {
		logger.Info().Msg("no candidates generated")
		return []*core.Recommendation{}, nil
	}

	cands = filter.Apply(ctx, rctx, e.filters, cands)
	if len(cands) == 0 {
		logger.Info().Msg("all candidates filtered out")
		return []*core.Recommendation{}, nil
	}

	vectors, err := e.parallel.ScoreAll(ctx, rctx, cands)
	if err != nil {
		return nil, err
	}

	recs := fusion.Fuse(cands, vectors, e.weights, req.Limit)
	if req.Explain {
		for _, r := range recs {
			r.Explanation = fusion.Explain(r.Scores, r.HybridScore)
		}
	}

	e.cache.SetRecommendations(ctx, key, recs)
	logger.Info().Int("candidates", len(cands)).Int("returned", len(recs)).Msg("recommendation served")
	return recs, nil
}

// ClearCache 清空推荐结果缓存命名空间（管理性操作），返回删除条数。
func (e *Engine) ClearCache(ctx context.Context) (int, error) {
	return e.cache.InvalidateNamespace(ctx)
}
