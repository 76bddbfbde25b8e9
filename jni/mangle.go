package jni

import (
	"fmt"
	"regexp"
	"strings"
)

var mangledNamePattern = regexp.MustCompile(`^[0-9a-zA-Z_]+$`)

// MangledParam compacts a JNI descriptor into a short token usable inside
// a C identifier. Primitive descriptors pass through (with "[" becoming
// "A"); reference descriptors keep their uppercase letters plus the
// character after every "/" and the leading "L", uppercased.
func MangledParam(descriptor string) string {
	if len(descriptor) <= 2 {
		return strings.ReplaceAll(descriptor, "[", "A")
	}
	var sb strings.Builder
	for i := 1; i < len(descriptor); i++ {
		c := descriptor[i]
		switch {
		case c == '[':
			sb.WriteByte('A')
		case c >= 'A' && c <= 'Z', descriptor[i-1] == '/', descriptor[i-1] == 'L':
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// MangledMethodName builds a collision-resistant identifier for one member
// of an overloaded method group: the method name followed by one compacted
// token per type, return type first. The result must be a valid C
// identifier; anything else signals a defect in the resolver or mangler,
// not bad input.
func (c *Context) MangledMethodName(name string, paramTypes []string, returnType string) (string, error) {
	items := make([]string, 0, len(paramTypes)+1)
	for _, t := range append([]string{returnType}, paramTypes...) {
		desc, err := c.Resolve(t)
		if err != nil {
			return "", err
		}
		items = append(items, MangledParam(desc))
	}
	mangled := name + strings.Join(items, "_")
	if !mangledNamePattern.MatchString(mangled) {
		return "", fmt.Errorf("internal error: mangled name %q contains invalid characters", mangled)
	}
	return mangled, nil
}
