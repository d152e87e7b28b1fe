package media_test

import (
	"testing"

	"course-service/internal/media"

	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	in := []string{"a", "b", "c", "d"}

	require.Equal(t, []string{"b", "c", "a", "d"}, media.Move(in, 0, 2))
	require.Equal(t, []string{"d", "a", "b", "c"}, media.Move(in, 3, 0))
	require.Equal(t, []string{"a", "c", "b", "d"}, media.Move(in, 2, 1))
	require.Equal(t, in, media.Move(in, 1, 1))
	require.Equal(t, in, media.Move(in, -1, 2))
	require.Equal(t, in, media.Move(in, 0, 4))

	// input untouched
	require.Equal(t, []string{"a", "b", "c", "d"}, in)
}
