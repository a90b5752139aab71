package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rushteam/prorec/core"
)

// fakeLLM 返回脚本化的回复。
type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name    string
		llm     core.LLMService
		text    string
		want    []string
		wantErr string // 期望的 DomainError code；空表示成功
	}{
		{
			name:    "no backend configured",
			llm:     nil,
			text:    "need a dust extractor",
			wantErr: core.ErrorCodeUnavailable,
		},
		{
			name:    "empty request text",
			llm:     &fakeLLM{reply: "whatever"},
			text:    "   ",
			wantErr: core.ErrorCodeInvalidInput,
		},
		{
			name:    "backend failure",
			llm:     &fakeLLM{err: errors.New("timeout")},
			text:    "need a dust extractor",
			wantErr: core.ErrorCodeBackendError,
		},
		{
			name:    "empty reply",
			llm:     &fakeLLM{reply: "\n  \n"},
			text:    "need a dust extractor",
			wantErr: core.ErrorCodeEmptyResult,
		},
		{
			name: "plain lines",
			llm:  &fakeLLM{reply: "dust extraction unit\nhearing protection\n"},
			text: "workshop setup",
			want: []string{"dust extraction unit", "hearing protection"},
		},
		{
			name: "bullets and numbering stripped",
			llm:  &fakeLLM{reply: "- dust extraction unit\n2. hearing protection\n• face shield"},
			text: "workshop setup",
			want: []string{"dust extraction unit", "hearing protection", "face shield"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Extractor{LLM: tt.llm}
			got, err := e.Extract(context.Background(), tt.text)
			if tt.wantErr != "" {
				de := core.GetDomainError(err)
				if de == nil || de.Code != tt.wantErr {
					t.Fatalf("Extract() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractor_TruncatesToMax(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("requirement %02d", i))
	}
	e := &Extractor{LLM: &fakeLLM{reply: strings.Join(lines, "\n")}}

	got, err := e.Extract(context.Background(), "big document")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != MaxRequirements {
		t.Fatalf("len = %d, want %d", len(got), MaxRequirements)
	}
	// 保序取前 20
	if got[0] != "requirement 00" || got[19] != "requirement 19" {
		t.Fatalf("truncation did not preserve order: first=%q last=%q", got[0], got[19])
	}
}
