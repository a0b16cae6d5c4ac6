package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryBuiltinsAreValid 确认内置条目全部通过校验。
func TestRegistryBuiltinsAreValid(t *testing.T) {
	for _, syntax := range builtinSyntaxes() {
		assert.NoError(t, validateSyntax(syntax), syntax.Name)
	}
}

// TestLookupIsExact 验证查找对点号和大小写敏感。
func TestLookupIsExact(t *testing.T) {
	registry := NewRegistry()

	syntax, ok := registry.Lookup(".py")
	require.True(t, ok)
	assert.Equal(t, "Python", syntax.Name)
	assert.Equal(t, []string{"#"}, syntax.LineMarkers)
	assert.False(t, syntax.HasBlock())

	_, ok = registry.Lookup("py")
	assert.False(t, ok)
	_, ok = registry.Lookup(".PY")
	assert.False(t, ok)
	_, ok = registry.Lookup(".txt")
	assert.False(t, ok)
}

func TestLookupFile(t *testing.T) {
	registry := NewRegistry()

	syntax, ok := registry.LookupFile("/src/pkg/main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", syntax.Name)
	require.True(t, syntax.HasBlock())
	assert.Equal(t, "/*", syntax.Block.Open)
	assert.Equal(t, "*/", syntax.Block.Close)

	_, ok = registry.LookupFile("Makefile")
	assert.False(t, ok)
}

func TestRegisterCustomLanguage(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(Syntax{
		Name:        "Haskell",
		Extensions:  []string{".hs"},
		LineMarkers: []string{"--"},
		Block:       &BlockMarkers{Open: "{-", Close: "-}"},
	})
	require.NoError(t, err)

	syntax, ok := registry.Lookup(".hs")
	require.True(t, ok)
	assert.Equal(t, "Haskell", syntax.Name)
	assert.Contains(t, registry.Extensions(), ".hs")
}

// TestRegisterTakesOverExtension 验证后注册的条目接管冲突后缀。
func TestRegisterTakesOverExtension(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(Syntax{
		Name:        "Objective-C",
		Extensions:  []string{".h", ".m"},
		LineMarkers: []string{"//"},
		Block:       &BlockMarkers{Open: "/*", Close: "*/"},
	}))

	syntax, ok := registry.Lookup(".h")
	require.True(t, ok)
	assert.Equal(t, "Objective-C", syntax.Name)
	assert.NotContains(t, registry.ExtensionsForLanguage("C/C++"), ".h")
}

func TestRegisterRejectsInvalid(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name   string
		syntax Syntax
	}{
		{"no name", Syntax{Extensions: []string{".x"}, LineMarkers: []string{"#"}}},
		{"no extensions", Syntax{Name: "X", LineMarkers: []string{"#"}}},
		{"extension without dot", Syntax{Name: "X", Extensions: []string{"x"}, LineMarkers: []string{"#"}}},
		{"no line markers", Syntax{Name: "X", Extensions: []string{".x"}}},
		{"half block", Syntax{Name: "X", Extensions: []string{".x"}, LineMarkers: []string{"#"}, Block: &BlockMarkers{Open: "(*"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, registry.Register(tt.syntax))
		})
	}
}

// TestRegistryLanguages 确认语言清单排序且后缀齐全。
func TestRegistryLanguages(t *testing.T) {
	registry := NewRegistry()
	languages := registry.Languages()

	require.Len(t, languages, len(builtinSyntaxes()))
	for i := 1; i < len(languages); i++ {
		assert.Less(t, languages[i-1].Name, languages[i].Name)
	}

	requiredExtensions := []string{".go", ".js", ".ts", ".py", ".rs", ".rb", ".java", ".cpp", ".sql", ".dart", ".lua"}
	for _, extension := range requiredExtensions {
		_, ok := registry.Lookup(extension)
		assert.True(t, ok, "missing entry for extension %s", extension)
	}
	assert.Equal(t, []string{".js", ".jsx", ".mjs"}, registry.ExtensionsForLanguage("JavaScript"))
	assert.Nil(t, registry.ExtensionsForLanguage("Cobol"))
}
