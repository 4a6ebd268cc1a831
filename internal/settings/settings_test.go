package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette(t *testing.T) {
	assert.Equal(t, "#1976D2", Settings{Theme: "light"}.Palette().Primary)
	assert.Equal(t, "#121212", Settings{Theme: "dark"}.Palette().Background)
	// unknown theme
	assert.Equal(t, themes["light"], Settings{Theme: "neon"}.Palette())
	// custom without colors
	assert.Equal(t, themes["light"], Settings{Theme: CustomTheme}.Palette())
}

func TestWithTheme(t *testing.T) {
	dark := Defaults().WithTheme("dark")
	assert.Equal(t, "dark", dark.Theme)
	assert.Nil(t, dark.CustomColors)

	custom := dark.WithTheme(CustomTheme)
	require.NotNil(t, custom.CustomColors)
	assert.Equal(t, themes["dark"], *custom.CustomColors)
	assert.Equal(t, themes["dark"], custom.Palette())

	// switching away discards custom colors
	back := custom.WithTheme("nature")
	assert.Nil(t, back.CustomColors)
	// the original is untouched
	assert.NotNil(t, custom.CustomColors)
}

func TestFontFamily(t *testing.T) {
	assert.Equal(t, `"Fira Code", monospace`, FontFamily("Fira Code"))
	assert.Equal(t, `"Lato", sans-serif`, FontFamily("Comic Sans"))
	assert.Len(t, Fonts(), 13)
}

func TestEqual(t *testing.T) {
	a := Defaults().WithTheme(CustomTheme)
	b := Defaults().WithTheme(CustomTheme)
	assert.True(t, a.Equal(b))

	b.CustomColors.Text = "#000000"
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(Defaults()))
}
