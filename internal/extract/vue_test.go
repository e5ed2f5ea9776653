package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loweredSFC = `const buttonClass = computed(() => "px-4 py-2")
function extra() {
  const inner = () => { return "ignored" }
  return "mt-2"
}
type Size = "text-sm" | "text-lg"
const __VLS_ctx = {} as { size: Size; on: boolean }

__VLS_asFunctionalElement(__VLS_intrinsicElements.div)({ ...{ class: "flex" }, ...{ class: __VLS_ctx.buttonClass } })
__VLS_asFunctionalElement(__VLS_intrinsicElements.div)({ ...{ class: [__VLS_ctx.extra, { hidden: __VLS_ctx.on }] } })
__VLS_asFunctionalElement(__VLS_intrinsicElements.span)({ ...{ class: __VLS_ctx.size } })
`

func TestExtractVueBindings(t *testing.T) {
	occs := extractSource(t, "Button.vue", loweredSFC)
	require.Equal(t, []string{"flex", "px-4", "py-2", "mt-2", "hidden", "text-sm", "text-lg"}, classNames(occs))

	got := byClass(occs)

	// Static and bound class on one element share a scope.
	assert.Equal(t, got["flex"].ScopeID, got["px-4"].ScopeID)
	assert.True(t, strings.HasPrefix(got["flex"].ScopeID, "vue:"))
	assert.NotEqual(t, got["flex"].ScopeID, got["mt-2"].ScopeID)

	// Bound classes are reported at the template reference.
	ref := strings.Index(loweredSFC, "__VLS_ctx.buttonClass") + len("__VLS_ctx.")
	assert.Equal(t, ref, got["px-4"].Position.Offset)
	assert.Equal(t, ref, got["py-2"].Position.Offset)
	assert.Equal(t, len("buttonClass"), got["px-4"].Position.Length)
	require.NotNil(t, got["px-4"].Provenance)
	assert.Equal(t, "buttonClass", got["px-4"].Provenance.VariableName)
	assert.Equal(t, 9, got["px-4"].Provenance.UsageLine)

	assert.Nil(t, got["flex"].Provenance)
}

func TestExtractVueNamespaceConfig(t *testing.T) {
	src := `const cls = "p-4"
__VLS_el({ ...{ class: $ctx.cls } })`

	cfg := DefaultConfig()
	cfg.VueNamespace = "$ctx"
	occs := ExtractAll(parse(t, "A.vue", src), cfg, nil)
	assert.Equal(t, []string{"p-4"}, classNames(occs))

	occs = extractSource(t, "A.vue", src)
	assert.Empty(t, occs)
}

func TestExtractVueScriptValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "ref wrapper",
			src: `const active = ref("ring-2 ring-blue-500")
__VLS_el({ ...{ class: __VLS_ctx.active } })`,
			want: []string{"ring-2", "ring-blue-500"},
		},
		{
			name: "shallowRef of a ternary",
			src: `const tone = shallowRef(ok ? "text-red-500" : "text-green-500")
__VLS_el({ ...{ class: __VLS_ctx.tone } })`,
			want: []string{"text-red-500", "text-green-500"},
		},
		{
			name: "unknown call is not unwrapped",
			src: `const tone = useTone("text-red-500")
__VLS_el({ ...{ class: __VLS_ctx.tone } })`,
		},
		{
			name: "typeof query on the namespace type",
			src: `const palette = ref("bg-white")
const __VLS_ctx = {} as { tone: typeof palette }
__VLS_el({ ...{ class: __VLS_ctx.tone } })`,
			want: []string{"bg-white"},
		},
		{
			name: "union literal type on the namespace type",
			src: `const __VLS_ctx = {} as { size: "p-2" | "p-4" }
__VLS_el({ ...{ class: __VLS_ctx.size } })`,
			want: []string{"p-2", "p-4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, occ := range extractSource(t, "A.vue", tt.src) {
				require.NotNil(t, occ.Provenance)
				got = append(got, occ.ClassName)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
