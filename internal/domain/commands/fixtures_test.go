//go:build unit

package commands_test

import "fmt"

// manifestDiff renders a package.json diff bumping one dependency.
func manifestDiff(pkg, from, to string) string {
	return fmt.Sprintf(`diff --git a/package.json b/package.json
--- a/package.json
+++ b/package.json
@@ -1,5 +1,5 @@
 {
   "dependencies": {
-    %q: %q
+    %q: %q
   }
 }
`, pkg, from, pkg, to)
}

const readmeDiff = `diff --git a/README.md b/README.md
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-old
+new
`
