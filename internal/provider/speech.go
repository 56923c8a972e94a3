package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/trace"
)

// SpeechClient abstracts the OpenAI audio speech API for testability.
type SpeechClient interface {
	CreateSpeech(ctx context.Context, params openai.AudioSpeechNewParams) (io.ReadCloser, error)
}

type openAISpeechClient struct {
	client openai.Client
}

func NewOpenAISpeechClient(apiKey string) SpeechClient {
	return &openAISpeechClient{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (c *openAISpeechClient) CreateSpeech(ctx context.Context, params openai.AudioSpeechNewParams) (io.ReadCloser, error) {
	resp, err := c.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Synthesizer turns commentary text into mp3 files on disk. A nil Synthesizer
// is valid and reports synthesis as unavailable, which leaves queue items
// unmaterialized for a later retry.
type Synthesizer struct {
	tracer    trace.Tracer
	client    SpeechClient
	outputDir string
	model     string
	voice     string

	nowFunc func() time.Time
}

func NewSynthesizer(tracer trace.Tracer, client SpeechClient, outputDir, model, voice string) *Synthesizer {
	return &Synthesizer{
		tracer:    tracer,
		client:    client,
		outputDir: outputDir,
		model:     model,
		voice:     voice,
		nowFunc:   time.Now,
	}
}

// Synthesize renders text to an mp3 under the output dir and returns its
// path. The empty string with a nil error never happens; failures always
// carry an error so callers can log and retry later.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("speech synthesis is not configured")
	}

	_, span := s.tracer.Start(ctx, "speech.synthesize")
	defer span.End()

	body, err := s.client.CreateSpeech(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return "", fmt.Errorf("create speech: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	path := filepath.Join(s.outputDir, s.filename(text))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return path, nil
}

// filename combines a timestamp with a short text hash so repeated phrases in
// the same second do not collide.
func (s *Synthesizer) filename(text string) string {
	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("commentary_%s_%04d.mp3",
		s.nowFunc().Format("20060102_150405"), h.Sum32()%10000)
}
