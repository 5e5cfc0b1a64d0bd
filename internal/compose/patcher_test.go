package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techpix-labs/create-techpix-app/internal/rollback"
)

const devCompose = `services:
  app:
    image: old-value
    ports:
      - "3000:3000"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRewriteImage(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{
			name:    "indented",
			in:      devCompose,
			want:    "services:\n  app:\n    image: demo-development\n    ports:\n      - \"3000:3000\"\n",
			changed: true,
		},
		{
			name:    "top level",
			in:      "image: x\n",
			want:    "image: demo-development\n",
			changed: true,
		},
		{
			name:    "first match only",
			in:      "a:\n  image: one\nb:\n  image: two\n",
			want:    "a:\n  image: demo-development\nb:\n  image: two\n",
			changed: true,
		},
		{
			name:    "crlf preserved",
			in:      "app:\r\n  image: old\r\n  ports: []\r\n",
			want:    "app:\r\n  image: demo-development\r\n  ports: []\r\n",
			changed: true,
		},
		{
			name:    "tab indentation",
			in:      "\timage:\told\n",
			want:    "\timage:\tdemo-development\n",
			changed: true,
		},
		{
			name: "no image line",
			in:   "services:\n  app:\n    build: .\n",
			want: "services:\n  app:\n    build: .\n",
		},
		{
			name: "already patched",
			in:   "  image: demo-development\n",
			want: "  image: demo-development\n",
		},
		{
			name: "key suffix is not matched",
			in:   "  base_image: old\n",
			want: "  base_image: old\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := RewriteImage([]byte(tc.in), "demo-development")
			assert.Equal(t, tc.want, string(got))
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestPatchImageMissingFile(t *testing.T) {
	target := Target{Label: "production", Path: filepath.Join(t.TempDir(), "compose.yaml")}
	outcome, err := PatchImage(target, "demo", nil)
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.NoFileExists(t, target.Path)
}

func TestPatchImageUnchangedIsNotWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compose.yaml")
	writeFile(t, path, "services:\n  app:\n    build: .\n")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	outcome, err := PatchImage(Target{Label: "development", Path: path}, "demo", nil)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "file should not be rewritten")
}

func TestPatchImageInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compose.yaml")
	writeFile(t, path, "services:\n  app:\n    image: old\n   bad: [\n")

	_, err := PatchImage(Target{Label: "development", Path: path}, "demo", nil)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "image: old")
}

func TestPatchImageUnreadable(t *testing.T) {
	// A directory in place of the file exists but cannot be read as one.
	path := filepath.Join(t.TempDir(), "compose.yaml")
	require.NoError(t, os.Mkdir(path, 0755))

	_, err := PatchImage(Target{Label: "development", Path: path}, "demo", nil)
	require.Error(t, err)
}

func TestPatchAllDevelopmentOnly(t *testing.T) {
	root := t.TempDir()
	targets := DefaultTargets(root)
	writeFile(t, targets[0].Path, devCompose)

	results, err := PatchAll(context.Background(), targets, "demo", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Rewritten, results[0].Outcome)
	assert.Equal(t, "development", results[0].Target.Label)
	assert.Equal(t, Skipped, results[1].Outcome)

	data, err := os.ReadFile(targets[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    image: demo-development\n")
	assert.NoFileExists(t, targets[1].Path)
}

func TestPatchAllBothTargets(t *testing.T) {
	root := t.TempDir()
	targets := DefaultTargets(root)
	writeFile(t, targets[0].Path, devCompose)
	writeFile(t, targets[1].Path, "services:\n  app:\n    image: techpix-production\n")

	results, err := PatchAll(context.Background(), targets, "shop", nil)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, Rewritten, r.Outcome, r.Target.Label)
	}

	data, err := os.ReadFile(targets[1].Path)
	require.NoError(t, err)
	assert.Equal(t, "services:\n  app:\n    image: shop-production\n", string(data))
}

func TestPatchAllFailure(t *testing.T) {
	root := t.TempDir()
	targets := DefaultTargets(root)
	writeFile(t, targets[0].Path, devCompose)
	writeFile(t, targets[1].Path, "services: [\n")

	_, err := PatchAll(context.Background(), targets, "demo", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "production")
}

func TestPatchAllCancelled(t *testing.T) {
	root := t.TempDir()
	targets := DefaultTargets(root)
	writeFile(t, targets[0].Path, devCompose)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PatchAll(ctx, targets, "demo", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatchAllRecordsWrites(t *testing.T) {
	root := t.TempDir()
	targets := DefaultTargets(root)
	writeFile(t, targets[0].Path, devCompose)

	ledger := rollback.New(nil)
	_, err := PatchAll(context.Background(), targets, "demo", ledger)
	require.NoError(t, err)
	ledger.Rollback()

	data, err := os.ReadFile(targets[0].Path)
	require.NoError(t, err)
	assert.Equal(t, devCompose, string(data))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "rewritten", Rewritten.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
