package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAppName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"single quotes", "Découvrez 'WhatsApp' sur Google Play", "WhatsApp"},
		{"double quotes", `Download "TikTok" from Play Store`, "TikTok"},
		{"smart single quotes", "Check out ‘Instagram’ on Google Play", "Instagram"},
		{"smart double quotes", "Get “Spotify” today", "Spotify"},
		{"no quotes", "Simple App Name", "Simple App Name"},
		{"empty", "", ""},
		{"trims quoted name", "Découvrez '  WhatsApp  ' sur Google Play", "WhatsApp"},
		{"trims unquoted title", "   Simple App   ", "Simple App"},
		{"empty quotes fall through", "Découvrez '' sur Google Play", "Découvrez '' sur Google Play"},
		{"special characters", "Découvrez 'MyApp-2024 Pro™' sur Google Play", "MyApp-2024 Pro™"},
		{"first occurrence", "Get 'App One' and 'App Two' today", "App One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAppName(tt.title))
		})
	}
}
