package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"google.golang.org/genai"

	"github.com/Aashish23092/finstatement-extractor/resolver"
)

const systemInstruction = "재무제표에서 계정 항목과 값을 정확히 추출하는 전문가입니다."

// GeminiClient asks a Gemini model for the values of accounts the
// pipeline could not resolve.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// ExtractMissing sends the document prefix and the missing accounts and
// returns the values the model proposes, keyed by account id.
func (g *GeminiClient) ExtractMissing(ctx context.Context, document string, missing []resolver.MissingItem) (map[int]resolver.ExternalValue, error) {
	if len(missing) == 0 {
		return nil, nil
	}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		MaxOutputTokens:  1000,
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildFallbackPrompt(document, missing)), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	return ParseFallbackResponse(result.Text())
}

// BuildFallbackPrompt lists the missing accounts, embeds the document and
// asks for the extracted_items JSON shape.
func BuildFallbackPrompt(document string, missing []resolver.MissingItem) string {
	var items strings.Builder
	for _, m := range missing {
		fmt.Fprintf(&items, "- ID %d: %s\n", m.ID, m.Name)
	}
	return fmt.Sprintf(`다음 재무제표에서 아래 항목들의 값을 찾아주세요:

%s
문서:
%s

JSON 형식으로 응답해주세요:
{
    "extracted_items": {
        "항목ID": {"value": "값", "unit": "단위"}
    }
}
`, items.String(), document)
}

type fallbackResponse struct {
	ExtractedItems map[string]struct {
		Value any    `json:"value"`
		Unit  string `json:"unit"`
	} `json:"extracted_items"`
}

// ParseFallbackResponse repairs and decodes a model reply. Keys that are
// not integers and entries without a value are skipped.
func ParseFallbackResponse(raw string) (map[int]resolver.ExternalValue, error) {
	repaired, err := jsonrepair.RepairJSON(stripCodeFence(raw))
	if err != nil {
		return nil, fmt.Errorf("repair fallback response: %w", err)
	}

	var resp fallbackResponse
	if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
		return nil, fmt.Errorf("decode fallback response: %w", err)
	}

	values := make(map[int]resolver.ExternalValue, len(resp.ExtractedItems))
	for key, item := range resp.ExtractedItems {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		value := stringValue(item.Value)
		if value == "" {
			continue
		}
		values[id] = resolver.ExternalValue{Value: value, Unit: item.Unit}
	}
	return values, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// stripCodeFence removes a surrounding ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
