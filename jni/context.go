// Package jni resolves Java type names to JNI descriptors and mangles
// overloaded method names. All resolution happens against a Context built
// once per input file; the package keeps no mutable state of its own.
package jni

import (
	"fmt"
	"strings"
)

// Context carries the lexical scope of one Java file: its package, the
// fully qualified class it declares, the imports it pulls in, and any
// inner classes declared inside it. Qualified names are stored in internal
// form with a leading "L" and slashes, e.g. "Ljava/lang/String", so that
// resolution can append ";" directly.
type Context struct {
	fullyQualifiedClass string
	packagePath         string
	imports             []string
	innerClasses        []string
}

// NewContext builds a Context for the class with the given fully qualified
// name in slash form, e.g. "org/chromium/base/PathUtils".
func NewContext(fullyQualifiedClass string) *Context {
	parts := strings.Split(fullyQualifiedClass, "/")
	return &Context{
		fullyQualifiedClass: "L" + fullyQualifiedClass,
		packagePath:         strings.Join(parts[:len(parts)-1], "/"),
	}
}

// FullyQualifiedClass returns the class name in slash form, without the
// internal "L" prefix.
func (c *Context) FullyQualifiedClass() string {
	return strings.TrimPrefix(c.fullyQualifiedClass, "L")
}

// Package returns the package path in slash form.
func (c *Context) Package() string {
	return c.packagePath
}

// AddImport records an import given in dotted source form,
// e.g. "java.util.ArrayList".
func (c *Context) AddImport(qualifiedName string) {
	c.imports = append(c.imports, "L"+strings.ReplaceAll(qualifiedName, ".", "/"))
}

// AddAdditionalImport records an extra class that resolves against the
// current package. The argument is the raw annotation token, e.g.
// "Foo.class". Qualified names and classes that are already imported are
// rejected.
func (c *Context) AddAdditionalImport(className string) error {
	if !strings.HasSuffix(className, ".class") {
		return fmt.Errorf("invalid @JNIAdditionalImport argument: %s (expected Name.class)", className)
	}
	rawClassName := strings.TrimSuffix(className, ".class")
	if strings.Contains(rawClassName, ".") {
		return fmt.Errorf("%s cannot be used in @JNIAdditionalImport. "+
			"Only import unqualified outer classes.", className)
	}
	newImport := "L" + c.packagePath + "/" + rawClassName
	for _, imp := range c.imports {
		if imp == newImport {
			return fmt.Errorf("do not use @JNIAdditionalImport on an already "+
				"imported class: %s", strings.ReplaceAll(rawClassName, "/", "."))
		}
	}
	c.imports = append(c.imports, newImport)
	return nil
}

// AddInnerClass records a class or interface declared inside the current
// file. Names that merely repeat the file's own class are ignored.
func (c *Context) AddInnerClass(name string) {
	if strings.HasSuffix(c.fullyQualifiedClass, name) {
		return
	}
	c.innerClasses = append(c.innerClasses, c.fullyQualifiedClass+"$"+name)
}

// InnerClasses returns the recorded inner classes in internal form.
func (c *Context) InnerClasses() []string {
	return c.innerClasses
}
