package astar

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/driftpath/grid"
)

func TestClassify(t *testing.T) {
	cases := map[string]error{
		resultFound:     nil,
		resultExhausted: ErrSearchExhausted,
		resultLimit:     fmt.Errorf("%w: 10 expansions", ErrExpansionLimit),
		resultCanceled:  fmt.Errorf("interrupted: %w", context.DeadlineExceeded),
		resultInvalid:   ErrNilGrid,
	}
	for want, err := range cases {
		assert.Equal(t, want, classify(err), "%v", err)
	}
}

func TestSearchMetrics(t *testing.T) {
	g, err := grid.Parse(strings.NewReader("#.###\n#...#\n#...#\n###.#\n"))
	require.NoError(t, err)

	found := searchTotal.WithLabelValues("direct", resultFound)
	limited := searchTotal.WithLabelValues("direct", resultLimit)
	before, beforeLimit := testutil.ToFloat64(found), testutil.ToFloat64(limited)

	_, err = Search(context.Background(), g)
	require.NoError(t, err)
	_, err = Search(context.Background(), g, WithMaxExpansions(1))
	require.ErrorIs(t, err, ErrExpansionLimit)

	assert.Equal(t, before+1, testutil.ToFloat64(found))
	assert.Equal(t, beforeLimit+1, testutil.ToFloat64(limited))
}

func TestNodePQ_Order(t *testing.T) {
	pq := nodePQ{
		{f: 5, g: 1, seq: 0},
		{f: 4, g: 1, seq: 1},
		{f: 4, g: 3, seq: 2},
		{f: 4, g: 3, seq: 3},
	}
	assert.True(t, pq.Less(1, 0), "lower f first")
	assert.True(t, pq.Less(2, 1), "deeper node first on equal f")
	assert.True(t, pq.Less(2, 3), "older push first on full tie")
}
