package cookbook

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript is returned when the model answers with no text.
var ErrEmptyTranscript = errors.New("model returned no text")

// Client is the part of an OpenAI-compatible client the transcriber needs.
// *openai.Client satisfies it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const transcribePrompt = "Extract all the recipe titles from this image accurately. " +
	"Write one entry per line, exactly as printed, keeping each page number at the end of its line."

// Transcriber reads index pages with a vision-capable chat model.
type Transcriber struct {
	client    Client
	model     string
	maxTokens int
	logger    zerolog.Logger
}

// NewTranscriber creates a transcriber using model.
func NewTranscriber(client Client, model string, logger zerolog.Logger) *Transcriber {
	return &Transcriber{
		client:    client,
		model:     model,
		maxTokens: 1000,
		logger:    logger,
	}
}

// NewOpenAIClient builds a client for the given key and optional base URL.
func NewOpenAIClient(key, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Transcribe returns the text the model reads from the image.
func (t *Transcriber) Transcribe(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("image is empty")
	}

	mimeType := http.DetectContentType(image)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model:     t.model,
		MaxTokens: t.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: transcribePrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	}

	t.logger.Debug().Str("model", t.model).Str("mime", mimeType).Int("bytes", len(image)).Msg("transcribing index page")

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyTranscript
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// TranscribeFile reads an image from disk and transcribes it.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return t.Transcribe(ctx, image)
}
