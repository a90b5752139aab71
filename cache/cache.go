// Package cache 实现推荐结果的内容寻址缓存网关。
//
// key 由 (请求文本, limit, 用户标识) 的 SHA-256 摘要推导，相同输入必然
// 命中相同 key（幂等、确定）。读写失败一律非致命：记录日志并按
// miss/跳过处理，缓存故障不能拖垮推荐请求本身。
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/prorec/core"
)

// Namespace 是推荐结果缓存的 key 前缀，批量失效按此前缀枚举删除。
const Namespace = "prorec:rec:"

// DefaultTTLSeconds 缓存条目的默认生存期（1 小时）。
// 条目从不原地更新，只会被替换或过期。
const DefaultTTLSeconds = 3600

// Gateway 是缓存网关：在 core.KeyValueStore 之上提供
// 内容寻址的 get/set 与命名空间级失效。
type Gateway struct {
	kv     core.KeyValueStore
	ttl    int
	logger zerolog.Logger
}

// New 创建缓存网关。ttlSeconds <= 0 时使用 DefaultTTLSeconds。
func New(kv core.KeyValueStore, ttlSeconds int, logger zerolog.Logger) *Gateway {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultTTLSeconds
	}
	return &Gateway{
		kv:     kv,
		ttl:    ttlSeconds,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// Key 推导缓存 key：Namespace + SHA-256(text|limit|user)。
// 匿名用户统一用 core.AnonymousUser 哨兵参与摘要。
func Key(requestText string, limit int, userID string) string {
	if userID == "" {
		userID = core.AnonymousUser
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%s", requestText, limit, userID))
	return Namespace + hex.EncodeToString(sum[:])
}

// GetRecommendations 读取缓存的推荐列表。
// 任何失败（连接、反序列化）都按 miss 处理并记日志，返回 (nil, false)。
func (g *Gateway) GetRecommendations(ctx context.Context, key string) ([]*core.Recommendation, bool) {
	raw, err := g.kv.Get(ctx, key)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			g.logger.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		}
		return nil, false
	}
	var recs []*core.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		g.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, treating as miss")
		return nil, false
	}
	return recs, true
}

// SetRecommendations 写入推荐列表。写失败只记日志，绝不让请求失败。
func (g *Gateway) SetRecommendations(ctx context.Context, key string, recs []*core.Recommendation) {
	raw, err := json.Marshal(recs)
	if err != nil {
		g.logger.Warn().Err(err).Str("key", key).Msg("cache encode failed, skipping store")
		return
	}
	if err := g.kv.Set(ctx, key, raw, g.ttl); err != nil {
		g.logger.Warn().Err(err).Str("key", key).Msg("cache set failed, continuing without store")
	}
}

// InvalidateNamespace 删除推荐缓存命名空间下的全部条目，返回删除数量。
// 管理性操作，不在热路径上。
func (g *Gateway) InvalidateNamespace(ctx context.Context) (int, error) {
	n, err := g.kv.DeleteByPrefix(ctx, Namespace)
	if err != nil {
		return n, core.NewDomainError(core.ModuleCache, core.ErrorCodeBackendError,
			fmt.Sprintf("cache: invalidate namespace %q: %v (check cache backend connectivity)", Namespace, err))
	}
	g.logger.Info().Int("deleted", n).Msg("cache namespace invalidated")
	return n, nil
}

// Ping 探测底层缓存后端可达性（引擎构造时调用）。
func (g *Gateway) Ping(ctx context.Context) error {
	return g.kv.Ping(ctx)
}
