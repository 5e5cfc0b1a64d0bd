package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customManifest = `{
  "name": "template-name",
  "version": "0.1.0",
  "private": true,
  "techpix": {
    "flavor": "app-tw",
    "features": [
      "eslint",
      "tailwind"
    ],
    "weight": 1.5,
    "nothing": null
  },
  "scripts": {
    "dev": "next dev"
  },
  "dependencies": {
    "react": "^19.0.0"
  },
  "engines": {}
}`

func TestDocumentRoundTripIsByteStable(t *testing.T) {
	doc, err := Parse([]byte(customManifest))
	require.NoError(t, err)

	assert.Equal(t, customManifest+lineEnding, string(doc.Encode()))
}

func TestSetStringPreservesKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(customManifest))
	require.NoError(t, err)

	doc.SetString("name", "demo")

	assert.Equal(t, []string{"name", "version", "private", "techpix", "scripts", "dependencies", "engines"}, doc.Keys())
	want := strings.Replace(customManifest, `"template-name"`, `"demo"`, 1) + lineEnding
	assert.Equal(t, want, string(doc.Encode()))
}

func TestSetStringAppendsMissingKey(t *testing.T) {
	doc, err := Parse([]byte(`{"version": "1.0.0"}`))
	require.NoError(t, err)

	doc.SetString("name", "demo")

	assert.Equal(t, []string{"version", "name"}, doc.Keys())
	name, ok := doc.String("name")
	assert.True(t, ok)
	assert.Equal(t, "demo", name)
}

func TestSetEntryCreatesSection(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "demo"}`))
	require.NoError(t, err)

	require.NoError(t, doc.SetEntry("dependencies", "@tanstack/react-query", "^5.62.0"))
	require.NoError(t, doc.SetEntry("dependencies", "axios", "^1.7.9"))

	assert.Equal(t, []Entry{
		{Key: "@tanstack/react-query", Value: "^5.62.0"},
		{Key: "axios", Value: "^1.7.9"},
	}, doc.Entries("dependencies"))
	assert.Equal(t, "{\n  \"name\": \"demo\",\n  \"dependencies\": {\n    \"@tanstack/react-query\": \"^5.62.0\",\n    \"axios\": \"^1.7.9\"\n  }\n}"+lineEnding, string(doc.Encode()))
}

func TestSetEntryReplacesInPlace(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "demo", "dependencies": {"axios": "^0.1.0", "react": "^19.0.0"}}`))
	require.NoError(t, err)

	require.NoError(t, doc.SetEntry("dependencies", "axios", "^1.7.9"))

	assert.Equal(t, []Entry{
		{Key: "axios", Value: "^1.7.9"},
		{Key: "react", Value: "^19.0.0"},
	}, doc.Entries("dependencies"))
}

func TestSetEntryRejectsNonObjectSection(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "demo", "dependencies": null}`))
	require.NoError(t, err)

	err = doc.SetEntry("dependencies", "axios", "^1.7.9")
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[]`, `"name"`, `42`, `{"name": }`, ``} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestEncodeEscapesStrings(t *testing.T) {
	doc, err := Parse([]byte(`{"description": "say \"hi\" <b>\n"}`))
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"description\": \"say \\\"hi\\\" <b>\\n\"\n}"+lineEnding, string(doc.Encode()))
}

func TestParseAcceptsJSONOnlyEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{"escaped slash", `{"homepage": "https:\/\/techpix.dev\/docs"}`, "homepage", "https://techpix.dev/docs"},
		{"surrogate pair", `{"description": "launch \ud83d\ude80"}`, "description", "launch \U0001F680"},
		{"colon on next line", "{\n  \"name\"\n  : \"demo\"\n}", "name", "demo"},
		{"tab indentation", "{\n\t\"name\": \"demo\"\n}", "name", "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			require.NoError(t, err)

			got, ok := doc.String(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			again, err := Parse(doc.Encode())
			require.NoError(t, err)
			got, _ = again.String(tt.key)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeepsNumberSpelling(t *testing.T) {
	input := "{\n  \"big\": 12345678901234567890,\n  \"exp\": 1e3,\n  \"neg\": -0.50,\n  \"flag\": false\n}"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, input+lineEnding, string(doc.Encode()))
}

func TestParseDuplicateKeyKeepsFirstPosition(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "a", "version": "1.0.0", "name": "b"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "version"}, doc.Keys())
	name, _ := doc.String("name")
	assert.Equal(t, "b", name)
}
