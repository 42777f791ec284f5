package sat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDIMACS(t *testing.T) {
	cnf := CNF{
		Variables: 3,
		Clauses:   [][]int64{{1, -2}, {2, 3}, {-3}},
	}

	assert.Equal(t, "p cnf 3 3\n1 -2 0\n2 3 0\n-3 0\n", cnf.ToDIMACS())
}

func TestParseDIMACS(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  CNF
	}{
		{
			name:  "problem line and clauses",
			input: "p cnf 3 2\n1 -2 0\n2 3 0\n",
			want:  CNF{Variables: 3, Clauses: [][]int64{{1, -2}, {2, 3}}},
		},
		{
			name:  "comments anywhere",
			input: "c header\np cnf 2 2\nc between clauses\n1 2 0\nc again\n-1 0\n",
			want:  CNF{Variables: 2, Clauses: [][]int64{{1, 2}, {-1}}},
		},
		{
			name:  "missing problem line",
			input: "1 -3 0\n2 0\n",
			want:  CNF{Variables: 3, Clauses: [][]int64{{1, -3}, {2}}},
		},
		{
			name:  "clause spanning lines",
			input: "p cnf 3 1\n1 2\n3 0\n",
			want:  CNF{Variables: 3, Clauses: [][]int64{{1, 2, 3}}},
		},
		{
			name:  "percent trailer",
			input: "p cnf 2 1\n1 2 0\n%\n0\nanything\n",
			want:  CNF{Variables: 2, Clauses: [][]int64{{1, 2}}},
		},
		{
			name:  "unterminated final clause",
			input: "1 -2",
			want:  CNF{Variables: 2, Clauses: [][]int64{{1, -2}}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parsed, err := ParseDIMACS(strings.NewReader(c.input))

			require.Nil(t, err)
			assert.Empty(t, cmp.Diff(c.want, parsed))
		})
	}
}

func TestParseDIMACSRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"duplicate problem line", "p cnf 1 1\np cnf 1 1\n1 0\n"},
		{"truncated problem line", "p cnf 3\n1 0\n"},
		{"non-numeric literal", "p cnf 1 1\n1 x 0\n"},
		{"literal out of range", "p cnf 2 1\n3 0\n"},
		{"clause count mismatch", "p cnf 2 2\n1 0\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseDIMACS(strings.NewReader(c.input))
			assert.NotNil(t, err)
		})
	}
}

func TestDIMACSRoundTrip(t *testing.T) {
	for i := 0; i < 10; i++ {
		cnf := GenerateCNF(8, 20)

		parsed, err := ParseDIMACS(strings.NewReader(cnf.ToDIMACS()))

		require.Nil(t, err)
		assert.Empty(t, cmp.Diff(cnf, parsed))
	}
}
