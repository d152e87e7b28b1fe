package suggest_test

import (
	"context"
	"testing"
	"time"

	"course-service/internal/suggest"

	"github.com/stretchr/testify/require"
)

func TestRandomProvider_PicksFromPool(t *testing.T) {
	p := suggest.NewRandomProvider(42, 0)
	fields := []suggest.Field{
		suggest.FieldTitle,
		suggest.FieldSubtitle,
		suggest.FieldDescription,
		suggest.FieldObjectives,
		suggest.FieldRequirements,
		suggest.FieldModuleTitle,
		suggest.FieldSubsectionDescription,
	}

	for _, f := range fields {
		candidates := suggest.Candidates(f, "Go")
		require.NotEmpty(t, candidates)
		for i := 0; i < 20; i++ {
			got, err := p.Suggest(context.Background(), f, "Go")
			require.NoError(t, err)
			require.Contains(t, candidates, got)
		}
	}
}

func TestRandomProvider_SameSeedSameSequence(t *testing.T) {
	a := suggest.NewRandomProvider(7, 0)
	b := suggest.NewRandomProvider(7, 0)

	for i := 0; i < 10; i++ {
		x, err := a.Suggest(context.Background(), suggest.FieldTitle, "Rust")
		require.NoError(t, err)
		y, err := b.Suggest(context.Background(), suggest.FieldTitle, "Rust")
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}

func TestRandomProvider_InterpolatesTitle(t *testing.T) {
	p := suggest.NewRandomProvider(1, 0)

	got, err := p.Suggest(context.Background(), suggest.FieldModuleTitle, "  Kubernetes ")
	require.NoError(t, err)
	require.Contains(t, got, "Kubernetes")

	got, err = p.Suggest(context.Background(), suggest.FieldModuleTitle, "")
	require.NoError(t, err)
	require.Contains(t, got, "this topic")
}

func TestRandomProvider_UnknownField(t *testing.T) {
	p := suggest.NewRandomProvider(1, 0)

	_, err := p.Suggest(context.Background(), suggest.Field("price"), "Go")
	require.ErrorIs(t, err, suggest.ErrUnknownField)
}

func TestRandomProvider_DelayHonorsCancel(t *testing.T) {
	p := suggest.NewRandomProvider(1, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Suggest(ctx, suggest.FieldTitle, "Go")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCandidates_EveryTemplateTakesTitle(t *testing.T) {
	fields := []suggest.Field{
		suggest.FieldTitle,
		suggest.FieldSubtitle,
		suggest.FieldDescription,
		suggest.FieldObjectives,
		suggest.FieldRequirements,
		suggest.FieldModuleTitle,
		suggest.FieldSubsectionDescription,
	}

	for _, f := range fields {
		t.Run(string(f), func(t *testing.T) {
			for _, c := range suggest.Candidates(f, "Elixir") {
				require.Contains(t, c, "Elixir")
				require.NotContains(t, c, "%!")
			}
		})
	}
}
