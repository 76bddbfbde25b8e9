package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/jnigen/java"
	"github.com/dhamidi/jnigen/jni"
)

func emptyFile(fullyQualifiedClass string) *java.File {
	return &java.File{
		FullyQualifiedClass: fullyQualifiedClass,
		Namespace:           "example",
		Context:             jni.NewContext(fullyQualifiedClass),
	}
}

func TestStubNameEscaping(t *testing.T) {
	g := New(emptyFile("org/chromium/example/jni_generator/SampleForTests"), Options{})

	plain := java.NewNativeMethod("", "", "void", "Init", nil, false, "int")
	assert.Equal(t,
		"Java_org_chromium_example_jni_1generator_SampleForTests_nativeInit",
		g.stubName(&plain))

	inner := java.NewNativeMethod("MyInnerClass", "", "void", "Init", nil, false, "int")
	assert.Equal(t,
		"Java_org_chromium_example_jni_1generator_SampleForTests_00024MyInnerClass_nativeInit",
		g.stubName(&inner))
}

func TestNativeStubFreeFunction(t *testing.T) {
	g := New(emptyFile("org/chromium/example/SampleForTests"), Options{})
	n := java.NewNativeMethod("", "", "int", "Init",
		[]java.Param{{Datatype: "String", Name: "path"}}, false, "int")

	stub := g.nativeStub(&n)

	// Forward declaration takes wrapped reference parameters.
	assert.Contains(t, stub, "static jint Init(JNIEnv* env, const base::android::JavaParamRef<jobject>& jcaller,\n    const base::android::JavaParamRef<jstring>& path);")
	// The exported stub takes raw JNI handles and wraps them at the call.
	assert.Contains(t, stub, "extern \"C\" __attribute__((visibility(\"default\")))")
	assert.Contains(t, stub, "jint Java_org_chromium_example_SampleForTests_nativeInit(JNIEnv* env, jobject jcaller,\n    jstring path) {")
	assert.Contains(t, stub, "return Init(env, base::android::JavaParamRef<jobject>(env, jcaller), base::android::JavaParamRef<jstring>(env, path));")
}

func TestNativeStubStaticFreeFunctionGetsJclass(t *testing.T) {
	g := New(emptyFile("org/chromium/example/SampleForTests"), Options{})
	n := java.NewNativeMethod("", "", "void", "Reset", nil, true, "int")

	stub := g.nativeStub(&n)
	assert.Contains(t, stub, "jclass jcaller")
	assert.Contains(t, stub, "JavaParamRef<jclass>")
	assert.NotContains(t, stub, "jobject jcaller")
}

func TestNativeStubScopedReturnIsReleased(t *testing.T) {
	g := New(emptyFile("org/chromium/example/SampleForTests"), Options{})
	n := java.NewNativeMethod("", "", "String", "GetName", nil, false, "int")

	stub := g.nativeStub(&n)
	assert.Contains(t, stub, "static base::android::ScopedJavaLocalRef<jstring> GetName(")
	assert.Contains(t, stub, ".Release();")
}

func TestNativeStubDispatchMethod(t *testing.T) {
	g := New(emptyFile("org/chromium/example/SampleForTests"), Options{})
	n := java.NewNativeMethod("", "", "boolean", "Update",
		[]java.Param{
			{Datatype: "long", Name: "nativeCoreImpl"},
			{Datatype: "int", Name: "count"},
		}, false, "long")
	assert.Equal(t, java.DispatchMethod, n.Kind)

	stub := g.nativeStub(&n)
	assert.Contains(t, stub,
		"CoreImpl* native = reinterpret_cast<CoreImpl*>(nativeCoreImpl);")
	assert.Contains(t, stub,
		"CHECK_NATIVE_PTR(env, jcaller, native, \"Update\", false);")
	// The peer pointer is consumed by the stub, not forwarded.
	assert.Contains(t, stub,
		"return native->Update(env, base::android::JavaParamRef<jobject>(env, jcaller), count);")
	// No forward declaration for member dispatch.
	assert.NotContains(t, stub, "static jboolean Update(")
}

func TestNativeStubDispatchMethodVoidOmitsErrorReturn(t *testing.T) {
	g := New(emptyFile("org/chromium/example/SampleForTests"), Options{})
	n := java.NewNativeMethod("", "Core::Impl", "void", "Destroy",
		[]java.Param{{Datatype: "long", Name: "nativeCoreImpl"}}, false, "long")
	assert.Equal(t, "Core::Impl", n.PeerType)

	stub := g.nativeStub(&n)
	assert.Contains(t, stub, "CHECK_NATIVE_PTR(env, jcaller, native, \"Destroy\");")
	assert.Contains(t, stub, "Core::Impl* native = reinterpret_cast<Core::Impl*>(nativeCoreImpl);")
}
