package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTrace(t *testing.T) {
	in := `
# short trace
a 0 512
a 1 128

f 0
a 2 64
f 2
f 1
`
	tr, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, tr.Ops, 6)
	assert.Equal(t, 2, tr.MaxID)

	assert.Equal(t, Op{Kind: OpAlloc, ID: 0, Size: 512, Line: 3}, tr.Ops[0])
	assert.Equal(t, Op{Kind: OpFree, ID: 0, Line: 6}, tr.Ops[2])
	assert.Equal(t, Op{Kind: OpFree, ID: 1, Line: 9}, tr.Ops[5])
}

func Test_ParseEmptyTrace(t *testing.T) {
	tr, err := Parse(strings.NewReader("# nothing but comments\n\n"))
	require.NoError(t, err)
	assert.Empty(t, tr.Ops)
	assert.Zero(t, tr.MaxID)
}

func Test_ParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string // substring of the error, including the line number
	}{
		{"unknown op", "a 0 16\nx 1\n", "line 2: unknown op"},
		{"alloc missing size", "a 0\n", "line 1"},
		{"alloc extra field", "a 0 16 32\n", "line 1"},
		{"negative id", "a -1 16\n", "bad id"},
		{"id not a number", "f abc\n", "bad id"},
		{"zero size", "a 0 0\n", "bad size"},
		{"negative size", "a 0 -16\n", "bad size"},
		{"free missing id", "f\n", "line 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func Test_ParseFile(t *testing.T) {
	path := writeTempTrace(t, "a 0 100\nf 0\n")
	tr, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, tr.Ops, 2)

	_, err = ParseFile(path + ".missing")
	assert.Error(t, err)
}
