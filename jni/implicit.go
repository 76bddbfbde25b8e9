package jni

import (
	_ "embed"
	"strings"
	"sync"
)

// android_jar.classes lists every class bundled with the Android runtime.
// A bare reference to one of these names must not silently resolve to the
// current package, so the resolver consults this table before falling back.
//
//go:embed android_jar.classes
var implicitImportData string

var (
	implicitImportsOnce sync.Once
	implicitImports     []string
)

func loadImplicitImports() []string {
	implicitImportsOnce.Do(func() {
		for _, line := range strings.Split(implicitImportData, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, ".class")
			implicitImports = append(implicitImports, strings.ReplaceAll(line, "/", "."))
		}
	})
	return implicitImports
}

// checkImplicitImport fails when name matches a class that is implicitly
// available on the classpath. Such a reference is ambiguous between the
// implicit class and the current package, so an explicit import is
// required.
func checkImplicitImport(name string) error {
	for _, implicit := range loadImplicitImports() {
		if strings.HasSuffix(implicit, "."+name) {
			return &ResolveError{
				Name:       name,
				Reason:     "ambiguous class cannot be used directly by JNI",
				Suggestion: "Please import it, probably:\n\nimport " + implicit + ";",
			}
		}
	}
	return nil
}
