package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalIdentityKeyAndCaption(t *testing.T) {
	id := Positional(2)
	assert.Equal(t, ModePositional, id.Mode())
	assert.Equal(t, "idx\x002", id.Key())

	caption := id.Caption()
	require.Len(t, caption, 1)
	assert.Equal(t, "idx → 2", caption[0])
}

func TestKubernetesIdentityKeyAndCaption(t *testing.T) {
	id := Kubernetes("apps/v1", "Deployment", "web")
	assert.Equal(t, ModeKubernetes, id.Mode())
	assert.Equal(t, "k8s\x00apps/v1\x00Deployment\x00web", id.Key())

	caption := id.Caption()
	want := []string{"api_version → apps/v1", "kind → Deployment", "metadata.name → web"}
	assert.Equal(t, want, caption)
}

func TestDifferentIdentityModesNeverCollideByKey(t *testing.T) {
	positional := Positional(0)
	k8s := Kubernetes("", "", "")
	assert.NotEqual(t, positional.Key(), k8s.Key(), "expected positional and kubernetes keys to never collide")
}

func TestWithIdentityAndWithRootReturnIndependentCopies(t *testing.T) {
	doc := New(nil, "a: 1\n", 0)
	withID := doc.WithIdentity(Positional(0))

	_, ok := doc.Identity()
	assert.False(t, ok, "expected the original document to remain without an identity")

	_, ok = withID.Identity()
	require.True(t, ok, "expected the copy to carry the identity")

	withRoot := withID.WithRoot(nil)
	assert.NotSame(t, withID, withRoot, "expected WithRoot to return a distinct copy")

	_, ok = withRoot.Identity()
	assert.True(t, ok, "expected WithRoot to preserve identity")
}
