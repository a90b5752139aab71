// Package prorec 是一个混合式商品推荐引擎（Product Recommender）。
//
// 输入一份自由文本的需求文档（RFP），输出带融合分与可读理由的商品
// 推荐列表。设计要点：
//   - 多策略融合：协同过滤 / 内容匹配 / 任务图谱 / LLM 语义四个对等
//     策略并行打分，按配置权重加权融合
//   - 候选多源合并：关键词检索、图推荐、类目推断三路召回去重合并
//   - 内容寻址缓存：(请求文本, limit, 用户) 摘要作 key，TTL 兜底
//   - 非对称失败策略：内部 fail fast，公共入口 fail soft
package prorec

import (
	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/engine"
)

// 轻量 facade：便于用户直接 import "prorec" 使用核心抽象。
type Engine = engine.Engine
type Options = engine.Options
type Request = engine.Request
type Recommendation = core.Recommendation
type Weights = core.Weights

// New 构造推荐引擎（engine.New 的别名）。
var New = engine.New
