//go:build unit

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/automerge/internal/domain/entities"
	"github.com/rios0rios0/automerge/internal/manifest"
)

const (
	patchDiff = `
diff --git a/package.json b/package.json
index d3dfd3d..bd28161 100644
--- a/package.json
+++ b/package.json
@@ -19,9 +19,9 @@
-        "react": "^17.0.2",
+        "react": "^17.0.3",
`
	commitHashDiff = `
diff --git a/package.json b/package.json
index d3dfd3d..bd28161 100644
--- a/package.json
+++ b/package.json
@@ -19,9 +19,9 @@
-        "dotbot": "aa93350",
+        "dotbot": "ac5793c",
`
	addedDependencyDiff = `
diff --git a/package.json b/package.json
index d3dfd3d..bd28161 100644
--- a/package.json
+++ b/package.json
@@ -19,9 +19,9 @@
+        "github-action-merge-dependabot": "1.4.0",
`
	multipleFilesDiff = `
diff --git a/package-lock.json b/package-lock.json
index 8115dd8..4a3d4d7 100644
--- a/package-lock.json
+++ b/package-lock.json
@@ -12,9 +12,9 @@
                 "next": "^12.1.2",
                 "next-compose-plugins": "^2.2.1",
                 "phosphor-react": "^1.4.1",
-                "react": "^17.0.2",
+                "react": "^18.0.0",
                 "react-bootstrap": "^2.2.2",
-                "react-dom": "^17.0.2",
+                "react-dom": "^17.0.3",
                 "sharp": "^0.30.3"
diff --git a/package.json b/package.json
index d3dfd3d..bd28161 100644
--- a/package.json
+++ b/package.json
@@ -19,9 +19,9 @@
-        "react": "^17.0.2",
+        "react": "^18.0.0",
-        "react-dom": "^17.0.2",
+        "react-dom": "^17.0.3",
`
	contextOnlyDiff = `diff --git a/package.json b/package.json
index d3dfd3d..bd28161 100644
--- a/package.json
+++ b/package.json
@@ -1,4 +1,4 @@
 {
-  "description": "an app",
+  "description": "the app",
   "dependencies": {
     "react": "^17.0.2"
`
	noPackageJSONDiff = `
diff --git a/.github/workflows/ci.yml b/.github/workflows/ci.yml
index e790278..678e751 100644
--- a/.github/workflows/ci.yml
+++ b/.github/workflows/ci.yml
@@ -4,7 +4,7 @@ jobs:
   build:
     runs-on: ubuntu-latest
     steps:
-      - uses: actions/checkout@v2
+      - uses: actions/checkout@v3
       - uses: actions/setup-node@v3
         with:
           node-version-file: '.nvmrc'
`
	nestedManifestDiff = `diff --git a/web/package.json b/web/package.json
--- a/web/package.json
+++ b/web/package.json
@@ -2,3 +2,3 @@
-    "fastify": "3.0.0"
+    "fastify": "3.1.0"
`
)

func TestExtractChangesFromDiff(t *testing.T) {
	t.Parallel()

	t.Run("should extract a single bump", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := patchDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.NewChangeSet(
			entities.Change{Package: "react", From: "^17.0.2", To: "^17.0.3"},
		), changes)
	})

	t.Run("should keep commit hash pins verbatim", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := commitHashDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, "aa93350", changes["dotbot"].From)
		assert.Equal(t, "ac5793c", changes["dotbot"].To)
	})

	t.Run("should record an added dependency as a partial change", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := addedDependencyDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.NoError(t, err)
		change := changes["github-action-merge-dependabot"]
		assert.Empty(t, change.From)
		assert.Equal(t, "1.4.0", change.To)
		assert.True(t, change.IsPartial())
	})

	t.Run("should only read the manifest hunks of a multi-file diff", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := multipleFilesDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"react", "react-dom"}, changes.Names())
		assert.Equal(t, "^18.0.0", changes["react"].To)
		assert.Equal(t, "^17.0.3", changes["react-dom"].To)
	})

	t.Run("should read another file when asked for it", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := multipleFilesDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package-lock.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"react", "react-dom"}, changes.Names())
		assert.NotContains(t, changes, "next")
	})

	t.Run("should ignore context lines", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := contextOnlyDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("should match a manifest in a subdirectory by its full path", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := nestedManifestDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "./web/package.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.1.0", changes["fastify"].To)
	})

	t.Run("should not match a root manifest against a nested one", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := nestedManifestDiff

		// when
		_, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.ErrorIs(t, err, manifest.ErrNoManifestChanges)
	})

	t.Run("should signal when the manifest is not part of the diff", func(t *testing.T) {
		t.Parallel()

		// given
		diffText := noPackageJSONDiff

		// when
		changes, err := manifest.ExtractChangesFromDiff(diffText, "package.json")

		// then
		require.ErrorIs(t, err, manifest.ErrNoManifestChanges)
		assert.Nil(t, changes)
	})
}
