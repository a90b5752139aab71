// Package feast 提供 Feast Feature Store 后端的购买历史存储实现。
//
// 协同过滤的原始数据（用户购买序列、相似用户列表）由离线管道计算并
// 物化到 Feast 在线存储，本包只做在线读取。特征编码约定：
//
//	purchase_history:product_ids  "p1|p2|p3"   竖线分隔的商品 ID
//	purchase_history:categories   "c1|c2|c3"   与商品一一对应的类目
//	purchase_history:quantities   "2|1|5"      与商品一一对应的购买次数
//	purchase_history:similar_users "u2|u7"     离线算好的相似用户
//	                                           （类目重合度 >= 1/3）
//
// 特征缺失/为空按「无购买历史」处理（合法稳态），连接或查询失败才报错。
package feast

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/prorec/core"
)

// 在线特征名约定。
const (
	featureProductIDs   = "purchase_history:product_ids"
	featureCategories   = "purchase_history:categories"
	featureQuantities   = "purchase_history:quantities"
	featureSimilarUsers = "purchase_history:similar_users"

	entityUserID = "user_id"
)

// HistoryStore 是 Feast 在线存储实现的 PurchaseHistoryStore。
type HistoryStore struct {
	client  *feastsdk.GrpcClient
	project string
}

// NewHistoryStore 创建 Feast gRPC 客户端；port 为 0 时取默认 6565。
func NewHistoryStore(host string, port int, project string) (*HistoryStore, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast history: connect %s:%d: %w", host, port, err)
	}
	return &HistoryStore{client: client, project: project}, nil
}

func (s *HistoryStore) GetPurchaseHistory(ctx context.Context, userID string) ([]core.PurchaseRecord, error) {
	row, err := s.fetch(ctx, userID, []string{featureProductIDs, featureCategories, featureQuantities})
	if err != nil {
		return nil, err
	}

	ids := splitList(stringVal(row[featureProductIDs]))
	if len(ids) == 0 {
		return nil, nil
	}
	cats := splitList(stringVal(row[featureCategories]))
	quants := splitList(stringVal(row[featureQuantities]))

	records := make([]core.PurchaseRecord, 0, len(ids))
	for i, id := range ids {
		rec := core.PurchaseRecord{ProductID: id, Quantity: 1}
		if i < len(cats) {
			rec.Category = cats[i]
		}
		if i < len(quants) {
			if q, err := strconv.Atoi(quants[i]); err == nil && q > 0 {
				rec.Quantity = q
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// FindSimilarUsers 返回离线物化的相似用户列表；categories 参数在这里
// 用不上（重合度约束已在离线侧施加），保留是为了满足领域接口。
func (s *HistoryStore) FindSimilarUsers(ctx context.Context, userID string, categories []string) ([]string, error) {
	row, err := s.fetch(ctx, userID, []string{featureSimilarUsers})
	if err != nil {
		return nil, err
	}
	return splitList(stringVal(row[featureSimilarUsers])), nil
}

// fetch 拉取单个用户实体的在线特征行。
func (s *HistoryStore) fetch(ctx context.Context, userID string, features []string) (feastsdk.Row, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: features,
		Entities: []feastsdk.Row{
			{entityUserID: feastsdk.StrVal(userID)},
		},
		Project: s.project,
	}
	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feast history: get online features for user %q: %w", userID, err)
	}
	rows := resp.Rows()
	if len(rows) == 0 {
		return feastsdk.Row{}, nil
	}
	return rows[0], nil
}

func stringVal(v *feasttypes.Value) string {
	if v == nil {
		return ""
	}
	return v.GetStringVal()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ core.PurchaseHistoryStore = (*HistoryStore)(nil)
