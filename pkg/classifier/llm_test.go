package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock OpenAI Client ---

type mockChatClient struct {
	response openai.ChatCompletionResponse
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return m.response, nil
}

func replyWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func newMockLLM(t *testing.T, mock *mockChatClient) *LLMClassifier {
	t.Helper()
	c, err := NewLLMClassifierWithClient(mock, "test-model", nil)
	require.NoError(t, err)
	return c
}

func TestLLMClassifier_ParsesReply(t *testing.T) {
	mock := &mockChatClient{response: replyWith(
		`{"category": "password_reset", "confidence": 0.95, "reasoning": "User explicitly mentions forgot password"}`,
	)}
	c := newMockLLM(t, mock)

	result, err := c.Classify(context.Background(), "I forgot my password")
	require.NoError(t, err)
	assert.Equal(t, "password_reset", result.Category.Name)
	assert.Equal(t, PriorityHigh, result.Category.Priority)
	assert.InDelta(t, 0.95, result.Confidence, 0.001)
	assert.Equal(t, []string{"User explicitly mentions forgot password"}, result.MatchedPatterns)
	assert.Equal(t, "I forgot my password", result.Text)
}

func TestLLMClassifier_RequestShape(t *testing.T) {
	mock := &mockChatClient{response: replyWith(`{"category": "other", "confidence": 0.4}`)}
	c := newMockLLM(t, mock)

	_, err := c.Classify(context.Background(), "some ticket")
	require.NoError(t, err)

	req := mock.lastReq
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)

	prompt := req.Messages[1].Content
	assert.Contains(t, prompt, "password_reset")
	assert.Contains(t, prompt, "disk_space")
	assert.Contains(t, prompt, "some ticket")
	// The fallback is not offered as an option, only as an escape hatch.
	assert.NotContains(t, prompt, "- other:")
}

func TestLLMClassifier_StripsMarkdownFences(t *testing.T) {
	mock := &mockChatClient{response: replyWith(
		"```json\n{\"category\": \"disk_space\", \"confidence\": 0.8, \"reasoning\": \"mentions full drive\"}\n```",
	)}
	c := newMockLLM(t, mock)

	result, err := c.Classify(context.Background(), "C drive full")
	require.NoError(t, err)
	assert.Equal(t, "disk_space", result.Category.Name)
	assert.InDelta(t, 0.8, result.Confidence, 0.001)
}

func TestLLMClassifier_UnknownCategoryFallsBackToOther(t *testing.T) {
	mock := &mockChatClient{response: replyWith(
		`{"category": "made_up_category", "confidence": 0.9, "reasoning": "guess"}`,
	)}
	c := newMockLLM(t, mock)

	result, err := c.Classify(context.Background(), "weird ticket")
	require.NoError(t, err)
	assert.Equal(t, FallbackName, result.Category.Name)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
}

func TestLLMClassifier_ConfidenceDefaultsAndClamping(t *testing.T) {
	cases := []struct {
		reply string
		want  float64
	}{
		{`{"category": "disk_space"}`, 0.5},
		{`{"category": "disk_space", "confidence": 1.7}`, 1.0},
		{`{"category": "disk_space", "confidence": -0.2}`, 0.0},
	}
	for _, tc := range cases {
		mock := &mockChatClient{response: replyWith(tc.reply)}
		c := newMockLLM(t, mock)

		result, err := c.Classify(context.Background(), "ticket")
		require.NoError(t, err, "reply: %s", tc.reply)
		assert.InDelta(t, tc.want, result.Confidence, 0.001, "reply: %s", tc.reply)
	}
}

func TestLLMClassifier_RequestFailureSurfaces(t *testing.T) {
	mock := &mockChatClient{err: errors.New("connection refused")}
	c := newMockLLM(t, mock)

	_, err := c.Classify(context.Background(), "ticket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLLMClassifier_NoChoices(t *testing.T) {
	mock := &mockChatClient{response: openai.ChatCompletionResponse{}}
	c := newMockLLM(t, mock)

	_, err := c.Classify(context.Background(), "ticket")
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestLLMClassifier_MalformedJSONSurfaces(t *testing.T) {
	mock := &mockChatClient{response: replyWith("definitely not json")}
	c := newMockLLM(t, mock)

	_, err := c.Classify(context.Background(), "ticket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON")
}

func TestLLMConfig_Validation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     LLMConfig
		wantErr string
	}{
		{"openai without key", LLMConfig{Provider: ProviderOpenAI}, "API key"},
		{"azure without key", LLMConfig{Provider: ProviderAzure, BaseURL: "https://x"}, "API key"},
		{"azure without base url", LLMConfig{Provider: ProviderAzure, APIKey: "k"}, "base URL"},
		{"unknown provider", LLMConfig{Provider: "hal9000"}, "unknown provider"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLLMClassifier(tc.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	// Local needs neither a key nor a base URL.
	c, err := NewLLMClassifier(LLMConfig{Provider: ProviderLocal}, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```json\n{\"a\": 1}", `{"a": 1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFence(tc.in), "input: %q", tc.in)
	}
}

func TestBuildPrompt_EnumeratesCategories(t *testing.T) {
	prompt := buildPrompt(DefaultCategories(), "my ticket")
	for _, c := range DefaultCategories() {
		if c.Name == FallbackName {
			continue
		}
		assert.True(t, strings.Contains(prompt, "- "+c.Name+": "), "missing %s", c.Name)
	}
	assert.Contains(t, prompt, `"my ticket"`)
}
