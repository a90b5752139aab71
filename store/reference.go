package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/prorec/core"
)

// 参考数据在 KV 存储中的固定 key，由外部数据管道写入。
const (
	RefKeyCategoryKeywords = "ref:category_keyword_mappings"
	RefKeyTaskKeywords     = "ref:task_keyword_mappings"
)

// KVReferenceTables 从 KV 存储读取参考映射表（JSON 编码）。
// 引擎构造时一次性加载；表缺失或为空由调用方按配置缺陷处理。
type KVReferenceTables struct {
	KV core.Store
}

func (r *KVReferenceTables) CategoryKeywordMappings(ctx context.Context) (map[string][]string, error) {
	raw, err := r.KV.Get(ctx, RefKeyCategoryKeywords)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", RefKeyCategoryKeywords, err)
	}
	var m map[string][]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RefKeyCategoryKeywords, err)
	}
	return m, nil
}

func (r *KVReferenceTables) TaskKeywordMappings(ctx context.Context) (map[string]string, error) {
	raw, err := r.KV.Get(ctx, RefKeyTaskKeywords)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", RefKeyTaskKeywords, err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RefKeyTaskKeywords, err)
	}
	return m, nil
}

// StaticReferenceTables 直接持有映射表，测试与原型用。
type StaticReferenceTables struct {
	Categories map[string][]string // 类目 -> 关键词列表
	Tasks      map[string]string   // 关键词 -> 任务 ID
}

func (r *StaticReferenceTables) CategoryKeywordMappings(ctx context.Context) (map[string][]string, error) {
	return r.Categories, nil
}

func (r *StaticReferenceTables) TaskKeywordMappings(ctx context.Context) (map[string]string, error) {
	return r.Tasks, nil
}

var _ core.ReferenceTables = (*KVReferenceTables)(nil)
var _ core.ReferenceTables = (*StaticReferenceTables)(nil)
