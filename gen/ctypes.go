// Package gen renders the JNI binding header from an extracted file
// model. Output is assembled section by section in a fixed order so that
// structural invariants (one class-path constant per referenced class,
// registration tables and the registration routine appearing together)
// hold by construction.
package gen

import (
	"regexp"
	"strings"
)

var primitiveCTypes = map[string]string{
	"int":     "jint",
	"byte":    "jbyte",
	"char":    "jchar",
	"short":   "jshort",
	"boolean": "jboolean",
	"long":    "jlong",
	"double":  "jdouble",
	"float":   "jfloat",
}

var wellKnownCTypes = map[string]string{
	"void":                "void",
	"String":              "jstring",
	"Throwable":           "jthrowable",
	"java/lang/String":    "jstring",
	"java/lang/Class":     "jclass",
	"java/lang/Throwable": "jthrowable",
}

// scopedJNITypePattern matches the C types that must travel inside a
// JavaRef wrapper rather than as a bare handle.
var scopedJNITypePattern = regexp.MustCompile(`jobject|jclass|jstring|jthrowable|.*Array`)

// javaTypeToC maps a Java type name to the JNI C type carrying it.
func javaTypeToC(javaType string) string {
	if c, ok := primitiveCTypes[javaType]; ok {
		return c
	}
	if c, ok := wellKnownCTypes[javaType]; ok {
		return c
	}
	if strings.HasSuffix(javaType, "[]") {
		if c, ok := primitiveCTypes[strings.TrimSuffix(javaType, "[]")]; ok {
			return c + "Array"
		}
		return "jobjectArray"
	}
	// Prefix match so that Class<Foo> still maps to jclass.
	if strings.HasPrefix(javaType, "Class") {
		return "jclass"
	}
	return "jobject"
}

func isScopedJNIType(cType string) bool {
	return scopedJNITypePattern.MatchString(cType)
}

// wrapCTypeForDeclaration wraps reference types in a JavaParamRef for the
// Java-to-native direction.
func wrapCTypeForDeclaration(cType string) string {
	if isScopedJNIType(cType) {
		return "const base::android::JavaParamRef<" + cType + ">&"
	}
	return cType
}

// javaTypeToCForCalledByNativeParam maps a parameter type for the
// native-to-Java direction. int travels as JniIntWrapper so callers
// cannot silently truncate a jlong.
func javaTypeToCForCalledByNativeParam(javaType string) string {
	if javaType == "int" {
		return "JniIntWrapper"
	}
	cType := javaTypeToC(javaType)
	if isScopedJNIType(cType) {
		return "const base::android::JavaRefOrBare<" + cType + ">&"
	}
	return cType
}

// javaReturnValueToC gives the filler value returned on early-exit paths.
func javaReturnValueToC(javaType string) string {
	switch javaType {
	case "int", "byte", "char", "short", "long", "double", "float":
		return "0"
	case "boolean":
		return "false"
	case "void":
		return ""
	default:
		return "NULL"
	}
}

var staticCastTypes = map[string]string{
	"String":              "jstring",
	"java/lang/String":    "jstring",
	"Throwable":           "jthrowable",
	"java/lang/Throwable": "jthrowable",
	"boolean[]":           "jbooleanArray",
	"byte[]":              "jbyteArray",
	"char[]":              "jcharArray",
	"short[]":             "jshortArray",
	"int[]":               "jintArray",
	"long[]":              "jlongArray",
	"float[]":             "jfloatArray",
	"double[]":            "jdoubleArray",
}

// staticCastForReturnType names the cast applied to CallObjectMethod
// results that are known to be a more specific reference type.
func staticCastForReturnType(returnType string) string {
	if cast, ok := staticCastTypes[returnType]; ok {
		return cast
	}
	if strings.HasSuffix(returnType, "[]") {
		return "jobjectArray"
	}
	return ""
}

var envCallTypes = map[string]string{
	"boolean": "Boolean",
	"byte":    "Byte",
	"char":    "Char",
	"short":   "Short",
	"int":     "Int",
	"long":    "Long",
	"float":   "Float",
	"void":    "Void",
	"double":  "Double",
	"Object":  "Object",
}

// envCall selects the JNIEnv invocation path for a called-by-native
// method: NewObject for constructors, otherwise Call[Static]<Type>Method
// keyed on the return type.
func envCall(isConstructor, isStatic bool, returnType string) string {
	if isConstructor {
		return "NewObject"
	}
	call, ok := envCallTypes[returnType]
	if !ok {
		call = "Object"
	}
	if isStatic {
		call = "Static" + call
	}
	return "Call" + call + "Method"
}
