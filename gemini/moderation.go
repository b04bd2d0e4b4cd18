package gemini

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	languagepb "cloud.google.com/go/language/apiv1/languagepb"

	"github.com/datar-psa/ragmetrics/api"
)

// GoogleLanguageProvider implements ModerationProvider using Google Cloud Natural Language API client
type GoogleLanguageProvider struct {
	client *language.Client
}

// NewGoogleLanguageProvider creates a new provider using a preconfigured *language.Client (auth handled by caller)
func NewGoogleLanguageProvider(client *language.Client) *GoogleLanguageProvider {
	return &GoogleLanguageProvider{client: client}
}

// Moderate analyzes content for safety using Google Cloud Natural Language API
func (p *GoogleLanguageProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("language client is required")
	}

	resp, err := p.client.ModerateText(ctx, moderateRequest(content))
	if err != nil {
		return nil, fmt.Errorf("moderate text failed: %w", err)
	}

	return toModerationResult(resp), nil
}

func moderateRequest(content string) *languagepb.ModerateTextRequest {
	return &languagepb.ModerateTextRequest{
		Document: &languagepb.Document{
			Type: languagepb.Document_PLAIN_TEXT,
			Source: &languagepb.Document_Content{
				Content: content,
			},
		},
	}
}

func toModerationResult(resp *languagepb.ModerateTextResponse) *api.ModerationResult {
	categories := make([]api.ModerationCategory, 0, len(resp.GetModerationCategories()))
	for _, c := range resp.GetModerationCategories() {
		categories = append(categories, api.ModerationCategory{
			Name:       categoryName(c.GetName()),
			Confidence: float64(c.GetConfidence()),
		})
	}
	return &api.ModerationResult{Categories: categories}
}

// languageCategories maps Natural Language API category names that are not
// valid identifiers to the names in api.ModerationCategories
var languageCategories = map[string]string{
	"Death, Harm & Tragedy": "DeathHarmTragedy",
	"Firearms & Weapons":    "FirearmsWeapons",
	"Public Safety":         "PublicSafety",
	"Religion & Belief":     "ReligionBelief",
	"Illicit Drugs":         "IllicitDrugs",
	"War & Conflict":        "WarConflict",
}

func categoryName(googleCategory string) string {
	if name, ok := languageCategories[googleCategory]; ok {
		return name
	}
	return googleCategory
}

var _ api.ModerationProvider = (*GoogleLanguageProvider)(nil)
