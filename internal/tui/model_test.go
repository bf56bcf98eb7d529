package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/tui"
)

func press(t *testing.T, m tui.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tui.Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestModel_StartAndAdvance(t *testing.T) {
	m := tui.New(tui.Config{})
	assert.Nil(t, m.Tutorial())
	assert.Contains(t, m.View(), "polyroots")

	m = press(t, m, runes("x^3-2x^2-5x+6"), enter)
	require.NotNil(t, m.Tutorial())
	assert.NoError(t, m.Err())
	assert.Equal(t, polyroots.StageForms, m.Stage())

	m = press(t, m, runes("n"))
	assert.Equal(t, polyroots.StageRZT, m.Stage())
	assert.Contains(t, m.View(), "Rational Zero Test")

	m = press(t, m, runes("n"), runes("n"))
	assert.Equal(t, polyroots.StageSynthetic, m.Stage())

	for i := 0; i < 10 && !m.Tutorial().Session().State().Terminal(); i++ {
		m = press(t, m, runes("a"))
	}
	assert.Equal(t, polyroots.StateComplete, m.Tutorial().Session().State())

	m = press(t, m, runes("n"))
	assert.Equal(t, polyroots.StageFinal, m.Stage())
	assert.True(t, m.Tutorial().Completed(polyroots.StageFinal))

	m = press(t, m, runes("b"))
	assert.Equal(t, polyroots.StageSynthetic, m.Stage())
	assert.Equal(t, polyroots.StateAwaitingGuess, m.Tutorial().Session().State())
	m = press(t, m, runes("b"))
	assert.Equal(t, polyroots.StageDescartes, m.Stage())
	assert.NoError(t, m.Err())

	m = press(t, m, runes("1"))
	assert.Equal(t, polyroots.StageForms, m.Stage())
	m = press(t, m, runes("b"))
	assert.Equal(t, polyroots.StageForms, m.Stage())
	assert.NoError(t, m.Err())
}

func TestModel_GuessMode(t *testing.T) {
	m := tui.New(tui.Config{Polynomial: "x^2+5x+4"})
	require.NotNil(t, m.Tutorial())

	m = press(t, m, runes("g"))
	assert.Error(t, m.Err())

	m = press(t, m, runes("n"), runes("n"), runes("n"), runes("g"), runes("-1"), enter)
	require.Equal(t, polyroots.StageSynthetic, m.Stage())
	assert.NoError(t, m.Err())
	roots := m.Tutorial().Session().RationalRoots()
	require.Len(t, roots, 1)
	assert.Equal(t, "-1", roots[0].String())

	m = press(t, m, runes("7"), enter)
	assert.True(t, polyroots.IsSessionFailure(m.Err()))
}

func TestModel_InvalidPolynomial(t *testing.T) {
	m := press(t, tui.New(tui.Config{}), runes("x^2+y"), enter)
	assert.Nil(t, m.Tutorial())
	assert.True(t, polyroots.IsParseFailure(m.Err()))
	assert.Contains(t, m.View(), m.Err().Error())
}

func TestModel_StageLocked(t *testing.T) {
	m := tui.New(tui.Config{Polynomial: "x^3-2x^2-5x+6"})
	m = press(t, m, runes("4"))
	assert.Equal(t, polyroots.StageForms, m.Stage())
	assert.Error(t, m.Err())
}

func TestRenderDivision(t *testing.T) {
	v, err := polyroots.ToVector("x^3-2x^2-5x+6")
	require.NoError(t, err)
	out := tui.RenderDivision(polyroots.Divide(v, polyroots.R(3)))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "3 |")
	assert.Contains(t, lines[3], "1  1 -2  0")
	assert.Contains(t, out, "3 is a root")
}

func TestRenderRZT(t *testing.T) {
	v, err := polyroots.ToVector("2x^2+13x+6")
	require.NoError(t, err)
	res, err := polyroots.RationalZeroTest(v)
	require.NoError(t, err)
	out := tui.RenderRZT(res, false)
	assert.Contains(t, out, "1, 2, 3, 6")
	assert.Contains(t, out, "3/2")
}
