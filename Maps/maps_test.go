package Maps

import (
	"slices"
	"testing"

	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
initial-capacity = 100
load-factor = 0.5
`))
	require.NoError(t, err)
	assert.Equal(t, 100, c.InitialCapacity)
	assert.Equal(t, float32(0.5), c.LoadFactor)
	assert.Equal(t, DefaultTreeifyThreshold, c.TreeifyThreshold)
	assert.Equal(t, DefaultUntreeifyThreshold, c.UntreeifyThreshold)
	assert.Equal(t, DefaultMinTreeifyCapacity, c.MinTreeifyCapacity)

	c, err = ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestParseConfig_Invalid(t *testing.T) {
	for _, doc := range []string{
		"initial-capacity = -1",
		"load-factor = 0.0",
		"load-factor = nan",
		"treeify-threshold = 2",
		"untreeify-threshold = 8",
		"untreeify-threshold = -1",
		"min-treeify-capacity = 100",
		"min-treeify-capacity = 0",
	} {
		_, err := ParseConfig([]byte(doc))
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%q: %v", doc, err)
	}
	_, err := ParseConfig([]byte("load-factor = "))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

type pair struct {
	k string
	v int
}

func (p *pair) Key() string { return p.k }
func (p *pair) Value() int  { return p.v }
func (p *pair) SetValue(v int) int {
	old := p.v
	p.v = v
	return old
}

func TestComparators(t *testing.T) {
	es := []Entry[string, int]{&pair{"b", 1}, &pair{"c", 0}, &pair{"a", 2}}
	keys := func() (s []string) {
		for _, e := range es {
			s = append(s, e.Key())
		}
		return
	}
	slices.SortFunc(es, ComparingByKey[string, int]())
	assert.Equal(t, []string{"a", "b", "c"}, keys())
	slices.SortFunc(es, ComparingByValue[string, int]())
	assert.Equal(t, []string{"c", "b", "a"}, keys())
	slices.SortFunc(es, ComparingByKeyFunc[string, int](OrderFromGods[string](utils.StringComparator)))
	assert.Equal(t, []string{"a", "b", "c"}, keys())
	slices.SortFunc(es, ComparingByValueFunc[string, int](func(a, b int) int { return b - a }))
	assert.Equal(t, []string{"a", "b", "c"}, keys())
	es[0].SetValue(-1)
	slices.SortFunc(es, ComparingByValue[string, int]())
	assert.Equal(t, "a", es[0].Key())
}

func TestGoMap(t *testing.T) {
	m := GoMap[string, int]{"a": 1, "b": 2, "c": 3}
	var s Source[string, int] = m
	assert.Equal(t, 3, s.Size())
	n := 0
	s.Range(func(string, int) bool {
		n++
		return n < 2
	})
	assert.Equal(t, 2, n)
}
