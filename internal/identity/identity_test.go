package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/yamlparse"
)

func parseDoc(t *testing.T, src string) *document.Document {
	t.Helper()
	docs, err := yamlparse.Parse([]byte(src), "t")
	require.NoError(t, err)
	return docs[0]
}

func TestIdentifyPositionalUsesStreamIndex(t *testing.T) {
	doc := parseDoc(t, "a: 1\n")
	out, warn := Identify(doc, document.ModePositional, 0)
	assert.False(t, warn, "positional mode must never warn")
	id, ok := out.Identity()
	require.True(t, ok)
	assert.Equal(t, document.ModePositional, id.Mode())
}

func TestIdentifyKubernetesUsesGVKAndName(t *testing.T) {
	doc := parseDoc(t, "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: web\n")
	out, warn := Identify(doc, document.ModeKubernetes, 0)
	assert.False(t, warn, "expected no warning when all three fields are present")
	id, ok := out.Identity()
	require.True(t, ok)
	assert.Equal(t, "k8s\x00apps/v1\x00Deployment\x00web", id.Key())
}

func TestIdentifyKubernetesFallsBackOnMissingField(t *testing.T) {
	doc := parseDoc(t, "apiVersion: apps/v1\nkind: Deployment\n")
	out, warn := Identify(doc, document.ModeKubernetes, 5)
	assert.True(t, warn, "expected a warning when metadata.name is missing")
	id, ok := out.Identity()
	require.True(t, ok)
	assert.Equal(t, document.ModePositional, id.Mode())
	assert.Equal(t, "idx\x005", id.Key())
}

func TestIdentifyAllScopesFallbackToMissingSubset(t *testing.T) {
	docs := []*document.Document{
		parseDoc(t, "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: web\n"), // complete
		parseDoc(t, "apiVersion: apps/v1\nkind: Deployment\n"),                         // missing name: fallback idx 0
		parseDoc(t, "kind: Deployment\n"),                                              // missing apiVersion+name: fallback idx 1
	}
	out, warnings := IdentifyAll(docs, document.ModeKubernetes)
	require.Len(t, warnings, 2)

	id0, ok := out[0].Identity()
	require.True(t, ok)
	assert.Equal(t, document.ModeKubernetes, id0.Mode(), "expected the complete document to keep a kubernetes identity")

	id1, ok := out[1].Identity()
	require.True(t, ok)
	id2, ok := out[2].Identity()
	require.True(t, ok)
	assert.Equal(t, "idx\x000", id1.Key())
	assert.Equal(t, "idx\x001", id2.Key())
}
