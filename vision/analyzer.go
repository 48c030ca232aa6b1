package vision

import (
	"context"
	"encoding/base64"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

const scenePrompt = `Describe this photo as JSON with fields: scene_type
(restaurant|store|park|natural_landmark|transportation|recreation|other),
confidence (high|medium|low), description, visual_elements, likely_categories,
distinctive_features, has_ocean_view, has_mountain_view, has_water_feature,
indoor_outdoor, visible_text, business_name, search_keywords.`

// Caller issues the raw vision-model request and returns the model's
// text. Network and auth mechanics live behind this boundary.
type Caller interface {
	Describe(ctx context.Context, image []byte) (string, error)
}

// OpenAICaller is the production Caller backed by a vision-capable
// chat completion model.
type OpenAICaller struct {
	Client *openai.Client
	Model  string
}

func NewOpenAICaller(apiKey, model string) *OpenAICaller {
	return &OpenAICaller{Client: openai.NewClient(apiKey), Model: model}
}

func (c *OpenAICaller) Describe(ctx context.Context, image []byte) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: scenePrompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
			},
		}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Analyzer produces a SceneAnalysis for a photo. It fails closed: any
// call failure yields the minimal fallback scene, never an error.
type Analyzer struct {
	Caller Caller
}

func (a *Analyzer) Analyze(ctx context.Context, image []byte) SceneAnalysis {
	if a == nil || a.Caller == nil {
		return Fallback()
	}

	text, err := a.Caller.Describe(ctx, image)
	if err != nil {
		log.Printf("[vision] analyze failed: %v", err)
		return Fallback()
	}
	if text == "" {
		return Fallback()
	}
	return Parse(text)
}
