package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("draws glyphs and rules", func(t *testing.T) {
		b := mustBoard(t, 3, false)
		play(t, b, PlayerX, Position{0, 0}, Position{2, 1})
		play(t, b, PlayerO, Position{1, 1})

		want := "X |   |  \n" +
			"---------\n" +
			"  | O |  \n" +
			"---------\n" +
			"  | X |  \n"
		require.Equal(t, want, NewRenderer().Render(b))
		require.Equal(t, want, b.String())
	})

	t.Run("rule length follows board width", func(t *testing.T) {
		b := mustBoard(t, 2, false)
		require.Equal(t, "  |  \n-----\n  |  \n", NewRenderer().Render(b))
	})

	t.Run("single cell board has no rule", func(t *testing.T) {
		b := mustBoard(t, 1, false)
		play(t, b, PlayerO, Position{0, 0})
		require.Equal(t, "O\n", NewRenderer().Render(b))
	})

	t.Run("custom glyphs", func(t *testing.T) {
		b := mustBoard(t, 2, false)
		play(t, b, PlayerX, Position{0, 1})
		r := NewRenderer(WithGlyphs(Glyphs{Empty: ".", X: "x", O: "o"}))
		require.Equal(t, ". | x\n-----\n. | .\n", r.Render(b))
	})

	t.Run("color disabled matches plain output", func(t *testing.T) {
		b := mustBoard(t, 3, false)
		play(t, b, PlayerX, Position{0, 0})
		play(t, b, PlayerO, Position{2, 2})
		require.Equal(t, NewRenderer().Render(b), NewRenderer(WithColor(false)).Render(b))
	})

	t.Run("color enabled wraps player glyphs", func(t *testing.T) {
		b := mustBoard(t, 1, false)
		play(t, b, PlayerX, Position{0, 0})
		got := NewRenderer(WithColor(true)).Render(b)
		require.Contains(t, got, "\x1b[")
		require.Contains(t, got, "X")
	})
}
