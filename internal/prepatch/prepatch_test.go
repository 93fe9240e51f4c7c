package prepatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everdiff/everdiff/internal/errs"
	"github.com/everdiff/everdiff/internal/yamlparse"
)

func TestMatchesSubsetWithExtraFieldsInDoc(t *testing.T) {
	docs, err := yamlparse.Parse([]byte("kind: Deployment\nmetadata:\n  name: web\n  namespace: prod\n"), "t")
	require.NoError(t, err)
	pattern, err := yamlparse.Parse([]byte("kind: Deployment\n"), "pattern")
	require.NoError(t, err)
	assert.True(t, Matches(pattern[0].Root, docs[0].Root), "expected pattern to match document superset")
}

func TestMatchesFailsOnFieldMismatch(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("kind: Deployment\n"), "t")
	pattern, _ := yamlparse.Parse([]byte("kind: StatefulSet\n"), "pattern")
	assert.False(t, Matches(pattern[0].Root, docs[0].Root), "expected mismatch on differing scalar value")
}

func TestMatchesSequencePositional(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("items:\n  - a\n  - b\n  - c\n"), "t")
	pattern, _ := yamlparse.Parse([]byte("items:\n  - a\n  - b\n"), "pattern")
	assert.True(t, Matches(pattern[0].Root, docs[0].Root), "expected prefix-length sequence match")
}

func TestApplyReplaceScalarField(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("a:\n  b: 1\n"), "t")
	replacement, _ := yamlparse.Parse([]byte("2\n"), "repl")

	rules := []Rule{{
		Name:    "bump-b",
		Patches: []PatchOp{{Op: "replace", Path: "/a/b", Value: replacement[0].Root}},
	}}

	out, err := Apply(docs[0], rules)
	require.NoError(t, err)

	got, ok := out.Root.Get("a")
	require.True(t, ok)
	b, ok := got.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", b.Raw)

	// Original document's tree must be untouched.
	origB, _ := docs[0].Root.Get("a")
	origBB, _ := origB.Get("b")
	assert.Equal(t, "1", origBB.Raw, "pre-patch must not mutate the original tree")
}

func TestApplyReplaceFailsWhenTargetMissing(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("a: 1\n"), "t")
	replacement, _ := yamlparse.Parse([]byte("2\n"), "repl")
	rules := []Rule{{
		Name:    "missing-target",
		Patches: []PatchOp{{Op: "replace", Path: "/missing", Value: replacement[0].Root}},
	}}

	_, err := Apply(docs[0], rules)
	require.Error(t, err)
	var ppe *errs.PrePatchError
	require.ErrorAs(t, err, &ppe)
	assert.Equal(t, "missing-target", ppe.RuleName)
}

func TestApplyAddAppendsToSequence(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("items:\n  - a\n  - b\n"), "t")
	newItem, _ := yamlparse.Parse([]byte("c\n"), "item")
	rules := []Rule{{
		Name:    "append-item",
		Patches: []PatchOp{{Op: "add", Path: "/items/-", Value: newItem[0].Root}},
	}}

	out, err := Apply(docs[0], rules)
	require.NoError(t, err)
	items, _ := out.Root.Get("items")
	require.Len(t, items.Items, 3)
	assert.Equal(t, "c", items.Items[2].Raw)
}

func TestApplyAddInsertsAtIndex(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("items:\n  - a\n  - c\n"), "t")
	newItem, _ := yamlparse.Parse([]byte("b\n"), "item")
	rules := []Rule{{
		Name:    "insert-item",
		Patches: []PatchOp{{Op: "add", Path: "/items/1", Value: newItem[0].Root}},
	}}

	out, err := Apply(docs[0], rules)
	require.NoError(t, err)
	items, _ := out.Root.Get("items")
	want := []string{"a", "b", "c"}
	require.Len(t, items.Items, len(want))
	for i, w := range want {
		assert.Equal(t, w, items.Items[i].Raw, "items[%d]", i)
	}
}

func TestApplySkipsRuleWhenDocumentLikeDoesNotMatch(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("kind: Service\nspec:\n  port: 80\n"), "t")
	guard, _ := yamlparse.Parse([]byte("kind: Deployment\n"), "guard")
	replacement, _ := yamlparse.Parse([]byte("443\n"), "repl")

	rules := []Rule{{
		Name:         "only-for-deployments",
		DocumentLike: guard[0].Root,
		Patches:      []PatchOp{{Op: "replace", Path: "/spec/port", Value: replacement[0].Root}},
	}}

	out, err := Apply(docs[0], rules)
	require.NoError(t, err)
	spec, _ := out.Root.Get("spec")
	port, _ := spec.Get("port")
	assert.Equal(t, "80", port.Raw, "expected rule to be skipped")
}

func TestApplyRulesComposeInDeclarationOrder(t *testing.T) {
	docs, _ := yamlparse.Parse([]byte("a: 1\n"), "t")
	guard, _ := yamlparse.Parse([]byte("a: 2\n"), "guard")
	second, _ := yamlparse.Parse([]byte("3\n"), "v2")
	first, _ := yamlparse.Parse([]byte("2\n"), "v1")

	rules := []Rule{
		{
			Name:    "first",
			Patches: []PatchOp{{Op: "replace", Path: "/a", Value: first[0].Root}},
		},
		{
			Name:         "second",
			DocumentLike: guard[0].Root, // only matches after "first" has run
			Patches:      []PatchOp{{Op: "replace", Path: "/a", Value: second[0].Root}},
		},
	}

	out, err := Apply(docs[0], rules)
	require.NoError(t, err)
	a, _ := out.Root.Get("a")
	assert.Equal(t, "3", a.Raw, "expected second rule to apply after first")
}
