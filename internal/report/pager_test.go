package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_BoundsClamp(t *testing.T) {
	p := NewPager(3)
	assert.Equal(t, 0, p.Index())
	assert.False(t, p.HasPrevious())

	assert.False(t, p.Previous(), "previous at index 0 is a no-op")
	assert.Equal(t, 0, p.Index())

	assert.True(t, p.Next())
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.Index())
	assert.False(t, p.HasNext())

	assert.False(t, p.Next(), "next at last index is a no-op")
	assert.Equal(t, 2, p.Index())

	assert.True(t, p.Previous())
	assert.Equal(t, 1, p.Index())
}

func TestPager_NeverLeavesRange(t *testing.T) {
	p := NewPager(4)
	moves := []bool{true, true, true, true, true, false, false, false, false, false, false, true}
	for _, forward := range moves {
		if forward {
			p.Next()
		} else {
			p.Previous()
		}
		assert.GreaterOrEqual(t, p.Index(), 0)
		assert.LessOrEqual(t, p.Index(), 3)
	}
}

func TestPager_EmptyAndSingle(t *testing.T) {
	for _, n := range []int{0, 1} {
		p := NewPager(n)
		assert.False(t, p.Next())
		assert.False(t, p.Previous())
		assert.Equal(t, 0, p.Index())
	}
}

func TestPager_NavigationKeepsExpansion(t *testing.T) {
	p := NewPager(3)
	assert.True(t, p.Toggle("Influencers"))
	assert.True(t, p.Toggle("Popular Places"))

	p.Next()
	p.Next()
	p.Previous()

	assert.True(t, p.Expanded("Influencers"))
	assert.True(t, p.Expanded("Popular Places"))
	assert.False(t, p.Expanded("Real Estate Agents"))
}

func TestPager_ToggleFlips(t *testing.T) {
	p := NewPager(1)
	assert.True(t, p.Toggle("Agents"))
	assert.False(t, p.Toggle("Agents"))
	assert.False(t, p.Expanded("Agents"))
}

func TestPager_ResetClearsEverything(t *testing.T) {
	p := NewPager(5)
	p.Next()
	p.Next()
	p.Toggle("Influencers")

	p.Reset(2)
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 2, p.Count())
	assert.Empty(t, p.Expansion())
}

func TestPager_ExpansionIsACopy(t *testing.T) {
	p := NewPager(1)
	p.Toggle("Influencers")
	m := p.Expansion()
	m["Influencers"] = false
	assert.True(t, p.Expanded("Influencers"))
}
