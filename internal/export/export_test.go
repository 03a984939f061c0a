package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"jrlgen/internal/domain"
)

func TestJSON_PrettyPrinted(t *testing.T) {
	doc := NewDocument([]domain.ExportItem{
		{Type: domain.ItemTypeBook, URI: "/data/a.cbr"},
		{Type: domain.ItemTypeBook, URI: "/data/b & c.cbz"},
	})

	out, err := JSON(doc)

	require.NoError(t, err)
	want := `{
  "items": [
    {
      "type": "book",
      "uri": "/data/a.cbr"
    },
    {
      "type": "book",
      "uri": "/data/b & c.cbz"
    }
  ]
}
`
	assert.Equal(t, want, string(out))
}

func TestJSON_EmptySelection(t *testing.T) {
	out, err := JSON(NewDocument(nil))

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"items\": []\n}\n", string(out))
}

func TestJSON_NilItemsRenderAsEmptyArray(t *testing.T) {
	out, err := JSON(domain.Export{})

	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(out))
}

func TestJSON_RoundTrip(t *testing.T) {
	doc := NewDocument([]domain.ExportItem{{Type: domain.ItemTypeBook, URI: "/b"}})

	out, err := JSON(doc)
	require.NoError(t, err)

	var decoded domain.Export
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, doc, decoded)
}

func TestYAML(t *testing.T) {
	doc := NewDocument([]domain.ExportItem{{Type: domain.ItemTypeBook, URI: "/data/a.cbr"}})

	out, err := YAML(doc)
	require.NoError(t, err)

	var decoded domain.Export
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, doc, decoded)
	assert.Contains(t, string(out), "type: book")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_DispatchesOnFormat(t *testing.T) {
	doc := NewDocument([]domain.ExportItem{{Type: domain.ItemTypeBook, URI: "/x"}})

	asJSON, err := Render(doc, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"type":"book","uri":"/x"}]}`, string(asJSON))

	asYAML, err := Render(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(asYAML), "uri: /x")
}
