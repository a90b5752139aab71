package candidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/prorec/core"
)

// GraphSource 基于图关系服务召回候选：以原始请求文本为 key 做图推荐，
// 结果数量约束为 target/2。
type GraphSource struct {
	Recommender core.GraphRecommender
}

func (s *GraphSource) Name() string { return "candidate.graph" }

func (s *GraphSource) Generate(ctx context.Context, rctx *core.RecommendContext, target int) ([]*core.Candidate, error) {
	if s.Recommender == nil {
		return nil, fmt.Errorf("graph source: graph recommender is required")
	}

	limit := target / 2
	if limit <= 0 {
		limit = 1
	}
	products, err := s.Recommender.RecommendProducts(ctx, rctx.RequestText, limit)
	if err != nil {
		return nil, fmt.Errorf("graph source: recommend products: %w", err)
	}

	out := make([]*core.Candidate, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		out = append(out, &core.Candidate{Product: p, Source: s.Name()})
	}
	return out, nil
}

var _ Source = (*GraphSource)(nil)

// HTTPGraphRecommender 调用图推荐服务 /recommend，传入 query、top_k，
// 返回商品列表。服务侧通常由 Node2Vec/GraphSAGE 类图嵌入模型支撑。
type HTTPGraphRecommender struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

type graphRecReq struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type graphRecResp struct {
	Products []*core.Product `json:"products"`
}

func (r *HTTPGraphRecommender) RecommendProducts(ctx context.Context, query string, limit int) ([]*core.Product, error) {
	if r.Endpoint == "" {
		return nil, fmt.Errorf("graph recommender endpoint is required")
	}
	if query == "" {
		return nil, nil
	}

	client := r.Client
	if client == nil {
		t := r.Timeout
		if t <= 0 {
			t = 5 * time.Second
		}
		client = &http.Client{Timeout: t}
	}

	raw, err := json.Marshal(graphRecReq{Query: query, TopK: limit})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", r.Endpoint, bytes.NewBuffer(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph recommender rpc: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("graph recommender status=%d body=%s", resp.StatusCode, string(b))
	}

	var res graphRecResp
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return res.Products, nil
}

var _ core.GraphRecommender = (*HTTPGraphRecommender)(nil)
