package jni

import (
	"fmt"
	"strings"
)

// ResolveError reports a type name that could not be turned into a JNI
// descriptor. It always carries an actionable suggestion; the generator
// never guesses.
type ResolveError struct {
	Name       string
	Reason     string
	Suggestion string
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("cannot resolve %s: %s", e.Name, e.Reason)
	if e.Suggestion != "" {
		msg += "\n" + e.Suggestion
	}
	return msg
}

var primitiveDescriptors = map[string]string{
	"int":     "I",
	"boolean": "Z",
	"char":    "C",
	"short":   "S",
	"long":    "J",
	"double":  "D",
	"float":   "F",
	"byte":    "B",
	"void":    "V",
}

// Classes that are visible in every Java file without an import.
var implicitObjectTypes = []string{
	"Ljava/lang/Boolean",
	"Ljava/lang/Integer",
	"Ljava/lang/Long",
	"Ljava/lang/Object",
	"Ljava/lang/String",
	"Ljava/lang/Class",
	"Ljava/lang/CharSequence",
	"Ljava/lang/Runnable",
	"Ljava/lang/Throwable",
}

// Resolve converts a syntactic Java type name into its JNI descriptor,
// e.g. "int" -> "I", "String[]" -> "[Ljava/lang/String;". Resolution is
// pure given the receiver and tries, in order: primitives, already
// qualified names, implicitly visible types, the file's own class and its
// inner classes, explicit imports, Outer.Inner forms against imports, and
// finally the file's own package. Ambiguous or unsupported references fail
// rather than being guessed.
func (c *Context) Resolve(typeName string) (string, error) {
	prefix := ""
	for strings.HasSuffix(typeName, "[]") {
		prefix += "["
		typeName = typeName[:len(typeName)-2]
	}
	if i := strings.IndexByte(typeName, '<'); i >= 0 {
		typeName = typeName[:i]
	}

	if desc, ok := primitiveDescriptors[typeName]; ok {
		return prefix + desc, nil
	}

	// Already in slash form, e.g. coming from a javap listing.
	if strings.Contains(typeName, "/") {
		return prefix + "L" + typeName + ";", nil
	}

	candidates := make([]string, 0, len(implicitObjectTypes)+1+len(c.innerClasses))
	candidates = append(candidates, implicitObjectTypes...)
	candidates = append(candidates, c.fullyQualifiedClass)
	candidates = append(candidates, c.innerClasses...)
	for _, qualified := range candidates {
		if strings.HasSuffix(qualified, "/"+typeName) ||
			strings.HasSuffix(qualified, "$"+strings.ReplaceAll(typeName, ".", "$")) ||
			qualified == "L"+typeName {
			return prefix + qualified + ";", nil
		}
	}

	// Explicitly imported? Note that importing an inner class directly is
	// not supported; the outer class must be imported and the type written
	// as Outer.Inner.
	for _, qualified := range c.imports {
		if strings.HasSuffix(qualified, "/"+typeName) {
			components := strings.Split(qualified, "/")
			if len(components) > 2 && isUpperInitial(components[len(components)-2]) {
				return "", &ResolveError{
					Name:   typeName,
					Reason: fmt.Sprintf("inner class %s cannot be imported and used by JNI", qualified),
					Suggestion: "Please import the outer class and use Outer.Inner " +
						"instead.",
				}
			}
			return prefix + qualified + ";", nil
		}
	}

	// Outer.Inner where Outer matches an import.
	if strings.Contains(typeName, ".") {
		components := strings.Split(typeName, ".")
		outer := strings.Join(components[:len(components)-1], "/")
		inner := components[len(components)-1]
		for _, qualified := range c.imports {
			if strings.HasSuffix(qualified, "/"+outer) {
				return prefix + qualified + "$" + inner + ";", nil
			}
		}
		return "", &ResolveError{
			Name:   typeName,
			Reason: "inner class cannot be used directly by JNI",
			Suggestion: fmt.Sprintf("Please import the outer class, probably:\nimport %s.%s;",
				strings.ReplaceAll(c.packagePath, "/", "."),
				strings.ReplaceAll(outer, "/", ".")),
		}
	}

	if err := checkImplicitImport(typeName); err != nil {
		return "", err
	}

	// Type not found anywhere else, fall back to the file's own package.
	return prefix + "L" + c.packagePath + "/" + typeName + ";", nil
}

func isUpperInitial(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

// Signature computes the JNI method descriptor for the given parameter and
// return types, e.g. (["int","String"], "void") -> "(ILjava/lang/String;)V".
func (c *Context) Signature(paramTypes []string, returnType string) (string, error) {
	var sb strings.Builder
	sb.WriteString("(")
	for _, p := range paramTypes {
		desc, err := c.Resolve(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(desc)
	}
	sb.WriteString(")")
	ret, err := c.Resolve(returnType)
	if err != nil {
		return "", err
	}
	sb.WriteString(ret)
	return sb.String(), nil
}
