// Package java extracts JNI-relevant declarations from Java source files
// and javap listings. It recognizes only the annotated declaration subset
// the generator cares about; everything else in the file is skipped.
package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jnigen/jni"
)

// Param is one declared method parameter.
type Param struct {
	Datatype string
	Name     string
}

// DispatchKind says how a native method call reaches its implementation.
type DispatchKind int

const (
	// DispatchFunction targets a free function; the generated call
	// receives the class object (static) or the instance object as an
	// implicit first argument.
	DispatchFunction DispatchKind = iota
	// DispatchMethod targets a member function of a native peer object
	// carried in the first declared parameter.
	DispatchMethod
)

// NativeMethod describes one declared native method, implemented on the
// C++ side and called from Java.
type NativeMethod struct {
	Static        bool
	JavaClassName string // inner class override from @NativeCall, "" = file's class
	ReturnType    string
	Name          string // declared name without the "native" prefix
	Params        []Param
	Kind          DispatchKind
	PeerType      string // native peer class, only for DispatchMethod
}

// peerParamPrefix is the reserved prefix that marks the first parameter of
// a native method as the pointer to its native peer.
const peerParamPrefix = "native"

// NewNativeMethod builds a NativeMethod and classifies its dispatch kind:
// a first parameter typed like a native pointer (ptrType) and named with
// the reserved prefix binds the method to a peer object. nativeClassName,
// when non-empty, overrides the peer type derived from the parameter name.
func NewNativeMethod(javaClassName, nativeClassName, returnType, name string,
	params []Param, static bool, ptrType string) NativeMethod {
	n := NativeMethod{
		Static:        static,
		JavaClassName: javaClassName,
		ReturnType:    returnType,
		Name:          name,
		Params:        params,
		Kind:          DispatchFunction,
	}
	if len(params) > 0 && params[0].Datatype == ptrType &&
		strings.HasPrefix(params[0].Name, peerParamPrefix) {
		n.Kind = DispatchMethod
		n.PeerType = strings.TrimPrefix(params[0].Name, peerParamPrefix)
		if nativeClassName != "" {
			n.PeerType = nativeClassName
		}
	}
	return n
}

// CalledByNative describes one Java method invoked from native code.
type CalledByNative struct {
	SystemClass     bool // true when extracted from a javap listing
	Unchecked       bool // skip the pending-exception check after the call
	Static          bool
	JavaClassName   string // inner class override from the annotation, "" = file's class
	ReturnType      string
	Name            string
	Params          []Param
	Signature       string // verbatim descriptor from javap, "" = compute from types
	IsConstructor   bool
	MethodIDVarName string // assigned by MangleCalledByNatives
}

// ConstantField is a "public static final int" declaration with a literal
// initializer, surfaced in the generated header as an enum member.
type ConstantField struct {
	Name  string
	Value string
}

// File is the fully extracted and resolved model of one input file.
type File struct {
	FullyQualifiedClass string // slash form
	Namespace           string
	Context             *jni.Context
	Natives             []NativeMethod
	CalledByNatives     []*CalledByNative
	Constants           []ConstantField
}

// ClassName returns the unqualified name of the file's class.
func (f *File) ClassName() string {
	parts := strings.Split(f.FullyQualifiedClass, "/")
	return parts[len(parts)-1]
}

// MangleCalledByNatives assigns each method its member-identifier name.
// Methods whose (class, name) pair is unique keep their plain name;
// overloaded groups get mangled, collision-resistant identifiers.
func MangleCalledByNatives(ctx *jni.Context, methods []*CalledByNative) error {
	counts := make(map[string]int)
	key := func(m *CalledByNative) string { return m.JavaClassName + "#" + m.Name }
	for _, m := range methods {
		counts[key(m)]++
	}
	for _, m := range methods {
		if counts[key(m)] == 1 {
			m.MethodIDVarName = m.Name
			continue
		}
		paramTypes := make([]string, len(m.Params))
		for i, p := range m.Params {
			paramTypes[i] = p.Datatype
		}
		mangled, err := ctx.MangledMethodName(m.Name, paramTypes, m.ReturnType)
		if err != nil {
			return fmt.Errorf("mangling %s.%s: %w", m.JavaClassName, m.Name, err)
		}
		m.MethodIDVarName = mangled
	}
	return nil
}

// ParseError reports a recognizable annotation or declaration whose
// surrounding text does not match the expected shape. It carries the
// offending line(s) as context.
type ParseError struct {
	Description  string
	ContextLines []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("***\nERROR: %s\n\n%s\n***",
		e.Description, strings.Join(e.ContextLines, "\n"))
}
