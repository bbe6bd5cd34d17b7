// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("does-not-exist", "en"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "找不到商品", T("zh_TW", KeyProductNotFound))
	assert.Equal(t, "Product 18 cannot be added to a link", T("en", KeyProductNotEligible, 18))
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))
	assert.Equal(t, "missing.key", T("en", "missing.key"))

	assert.True(t, IsSupported("zh_TW"))
	assert.False(t, IsSupported("fr"))
	assert.Equal(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}
