package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enterprise_security.txt"), []byte("security playbook"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saas_growth.txt"), []byte("growth playbook"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644))

	docs := NewLoader(dir).LoadDocuments()

	require.Len(t, docs, 2)
	bySource := map[string]Document{}
	for _, d := range docs {
		bySource[d.Source] = d
	}

	sec, ok := bySource["enterprise_security"]
	require.True(t, ok, "filename stem becomes the identifier")
	assert.Equal(t, "security playbook", sec.Text)
	assert.Equal(t, DocumentType, sec.Type)
	assert.Contains(t, bySource, "saas_growth")
}

func TestLoadDocuments_MissingDirectory(t *testing.T) {
	docs := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadDocuments()
	assert.Empty(t, docs)
}

func TestLoadDocuments_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("x"), 0644))

	docs := NewLoader(dir).LoadDocuments()
	require.Len(t, docs, 1)
	assert.Equal(t, "real", docs[0].Source)
}
