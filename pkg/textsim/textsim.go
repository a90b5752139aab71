// Package textsim 提供分词、TF-IDF 向量化与余弦相似度等文本相似度原语，
// 供基于内容的打分策略复用。
package textsim

import (
	"math"
	"regexp"
	"strings"
)

// tokenRe 在包初始化时编译一次，按非字母数字字符切分。
var tokenRe = regexp.MustCompile(`[^a-z0-9_-]+`)

// Tokenize 把文本规整为小写 token 序列，过滤过短的词。
// 刻意保持简单：面向关键词匹配，不做词干化/停用词表。
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := tokenRe.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TermFrequency 计算 token 序列的词频向量（出现次数 / 总数）。
func TermFrequency(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return map[string]float64{}
	}
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	n := float64(len(tokens))
	for tok := range tf {
		tf[tok] /= n
	}
	return tf
}

// TFIDFVectors 对一组文档计算 TF-IDF 向量。
// IDF 采用平滑形式 ln((1+N)/(1+df)) + 1，小语料（如仅两篇文档）下
// 共现词的权重不会退化为零。
func TFIDFVectors(docs []string) []map[string]float64 {
	tfs := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tfs[i] = TermFrequency(tokens)
		for term := range tfs[i] {
			df[term]++
		}
	}
	n := float64(len(docs))
	out := make([]map[string]float64, len(docs))
	for i, tf := range tfs {
		vec := make(map[string]float64, len(tf))
		for term, f := range tf {
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			vec[term] = f * idf
		}
		out[i] = vec
	}
	return out
}

// TFIDFCosine 计算两段文本的 TF-IDF 余弦相似度，结果落在 [0,1]。
func TFIDFCosine(a, b string) float64 {
	vecs := TFIDFVectors([]string{a, b})
	return Cosine(vecs[0], vecs[1])
}

// Cosine 计算两个稀疏向量（map 表示）的余弦相似度。
// 任一向量为零向量时返回 0。
func Cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineVec 计算两个稠密向量的余弦相似度（embedding 相似度用）。
// 维度不一致或任一为零向量时返回 0。
func CosineVec(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
