package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJavaTypeToC(t *testing.T) {
	tests := []struct {
		javaType string
		want     string
	}{
		{"void", "void"},
		{"int", "jint"},
		{"boolean", "jboolean"},
		{"long", "jlong"},
		{"String", "jstring"},
		{"java/lang/String", "jstring"},
		{"Throwable", "jthrowable"},
		{"java/lang/Class", "jclass"},
		{"Class<String>", "jclass"},
		{"int[]", "jintArray"},
		{"byte[]", "jbyteArray"},
		{"String[]", "jobjectArray"},
		{"Object", "jobject"},
		{"android/graphics/Rect", "jobject"},
		{"Runnable", "jobject"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, javaTypeToC(tt.javaType), "javaTypeToC(%q)", tt.javaType)
	}
}

func TestIsScopedJNIType(t *testing.T) {
	assert.True(t, isScopedJNIType("jobject"))
	assert.True(t, isScopedJNIType("jstring"))
	assert.True(t, isScopedJNIType("jthrowable"))
	assert.True(t, isScopedJNIType("jclass"))
	assert.True(t, isScopedJNIType("jintArray"))
	assert.True(t, isScopedJNIType("jobjectArray"))
	assert.False(t, isScopedJNIType("jint"))
	assert.False(t, isScopedJNIType("jboolean"))
	assert.False(t, isScopedJNIType("void"))
}

func TestWrapCTypeForDeclaration(t *testing.T) {
	assert.Equal(t, "const base::android::JavaParamRef<jstring>&",
		wrapCTypeForDeclaration("jstring"))
	assert.Equal(t, "jint", wrapCTypeForDeclaration("jint"))
}

func TestJavaTypeToCForCalledByNativeParam(t *testing.T) {
	assert.Equal(t, "JniIntWrapper", javaTypeToCForCalledByNativeParam("int"))
	assert.Equal(t, "jlong", javaTypeToCForCalledByNativeParam("long"))
	assert.Equal(t, "const base::android::JavaRefOrBare<jstring>&",
		javaTypeToCForCalledByNativeParam("String"))
	assert.Equal(t, "const base::android::JavaRefOrBare<jintArray>&",
		javaTypeToCForCalledByNativeParam("int[]"))
}

func TestJavaReturnValueToC(t *testing.T) {
	assert.Equal(t, "0", javaReturnValueToC("int"))
	assert.Equal(t, "0", javaReturnValueToC("double"))
	assert.Equal(t, "false", javaReturnValueToC("boolean"))
	assert.Equal(t, "", javaReturnValueToC("void"))
	assert.Equal(t, "NULL", javaReturnValueToC("String"))
	assert.Equal(t, "NULL", javaReturnValueToC("int[]"))
}

func TestStaticCastForReturnType(t *testing.T) {
	assert.Equal(t, "jstring", staticCastForReturnType("String"))
	assert.Equal(t, "jstring", staticCastForReturnType("java/lang/String"))
	assert.Equal(t, "jbyteArray", staticCastForReturnType("byte[]"))
	assert.Equal(t, "jobjectArray", staticCastForReturnType("String[]"))
	assert.Equal(t, "", staticCastForReturnType("int"))
	assert.Equal(t, "", staticCastForReturnType("Object"))
}

func TestEnvCall(t *testing.T) {
	assert.Equal(t, "NewObject", envCall(true, false, "Object"))
	assert.Equal(t, "CallVoidMethod", envCall(false, false, "void"))
	assert.Equal(t, "CallIntMethod", envCall(false, false, "int"))
	assert.Equal(t, "CallStaticBooleanMethod", envCall(false, true, "boolean"))
	assert.Equal(t, "CallObjectMethod", envCall(false, false, "String"))
	assert.Equal(t, "CallStaticObjectMethod", envCall(false, true, "int[]"))
}
