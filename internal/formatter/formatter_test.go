package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdash/sellertray/internal/domain"
)

func TestParseFindsUniqueVariables(t *testing.T) {
	engine := NewTemplateEngine()

	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"empty template", "", []string{}},
		{"no variables", "plain text", []string{}},
		{"single variable", "[{{unread-count}}]", []string{"unread-count"}},
		{
			"duplicates collapse",
			"{{unread-count}} of {{total-count}} ({{unread-count}})",
			[]string{"unread-count", "total-count"},
		},
		{"malformed braces ignored", "{{not closed", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Parse(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := VariableContext{
		UnreadCount:     3,
		ReadCount:       7,
		TotalCount:      10,
		ErrorCount:      1,
		LatestTitle:     "Low stock",
		HasUnread:       true,
		Connected:       true,
		HighestSeverity: domain.TypeError,
		MarketplaceList: "ATVPDKIKX0DER",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"counts", "{{unread-count}}/{{total-count}}", "3/10"},
		{"title", "Latest: {{latest-title}}", "Latest: Low stock"},
		{"booleans", "unread={{has-unread}} connected={{connected}}", "unread=true connected=true"},
		{"severity ordinal", "sev {{highest-severity}}", "sev 1"},
		{"marketplaces", "{{marketplace-list}}", "ATVPDKIKX0DER"},
		{"no variables untouched", "static", "static"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Substitute(tt.template, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteUnknownVariableFails(t *testing.T) {
	engine := NewTemplateEngine()
	_, err := engine.Substitute("{{no-such-var}}", VariableContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variable")
}

func TestSeverityOrdinals(t *testing.T) {
	resolver := NewVariableResolver()

	tests := []struct {
		severity domain.Type
		want     string
	}{
		{domain.TypeError, "1"},
		{domain.TypeWarn, "2"},
		{domain.TypeSuccess, "3"},
		{domain.TypeInfo, "4"},
		{domain.Type("bogus"), "4"},
	}

	for _, tt := range tests {
		got, err := resolver.Resolve("highest-severity", VariableContext{HighestSeverity: tt.severity})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPresetRegistryDefaults(t *testing.T) {
	registry := NewPresetRegistry()

	compact, err := registry.Get("compact")
	require.NoError(t, err)
	assert.Contains(t, compact.Template, "{{unread-count}}")

	_, err = registry.Get("nope")
	require.Error(t, err)

	names := make([]string, 0)
	for _, preset := range registry.List() {
		names = append(names, preset.Name)
	}
	assert.Contains(t, names, "compact")
	assert.Contains(t, names, "detailed")
	assert.Contains(t, names, "count-only")
	assert.Contains(t, names, "connection")
}

func TestPresetRegistryRegister(t *testing.T) {
	registry := NewPresetRegistry()

	require.Error(t, registry.Register(Preset{Name: "", Template: "x"}))
	require.Error(t, registry.Register(Preset{Name: "x", Template: ""}))

	require.NoError(t, registry.Register(Preset{Name: "mine", Template: "{{unread-count}}!"}))
	got, err := registry.Get("mine")
	require.NoError(t, err)
	assert.Equal(t, "{{unread-count}}!", got.Template)
}

func TestPresetsSubstituteCleanly(t *testing.T) {
	engine := NewTemplateEngine()
	registry := NewPresetRegistry()
	ctx := VariableContext{UnreadCount: 2, TotalCount: 5, LatestTitle: "t"}

	for _, preset := range registry.List() {
		_, err := engine.Substitute(preset.Template, ctx)
		assert.NoError(t, err, "preset %s", preset.Name)
	}
}
