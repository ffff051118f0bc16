package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

func newPresetFixture(t *testing.T) (*PresetService, *fakePresetRepo) {
	t.Helper()
	repo := newFakePresetRepo()
	service, err := NewPresetService(repo)
	require.NoError(t, err)
	return service, repo
}

func validPresetInput(name string) RiskPresetInput {
	return RiskPresetInput{
		Name:           name,
		RiskPercentage: 2,
		MaxDrawdown:    10,
		MaxOperations:  5,
	}
}

func TestCreatePresetFirstBecomesDefault(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	first, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := service.Create(ctx, "alice", validPresetInput("Aggressive"))
	require.NoError(t, err)
	require.False(t, second.IsDefault)

	// A different user's first preset is their own default.
	other, err := service.Create(ctx, "bob", validPresetInput("Starter"))
	require.NoError(t, err)
	require.True(t, other.IsDefault)
}

func TestCreatePresetValidation(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RiskPresetInput)
	}{
		{"missing name", func(in *RiskPresetInput) { in.Name = "" }},
		{"zero risk", func(in *RiskPresetInput) { in.RiskPercentage = 0 }},
		{"risk too high", func(in *RiskPresetInput) { in.RiskPercentage = 11 }},
		{"zero drawdown", func(in *RiskPresetInput) { in.MaxDrawdown = 0 }},
		{"drawdown too high", func(in *RiskPresetInput) { in.MaxDrawdown = 51 }},
		{"zero operations", func(in *RiskPresetInput) { in.MaxOperations = 0 }},
		{"too many operations", func(in *RiskPresetInput) { in.MaxOperations = 21 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validPresetInput("Conservative")
			tc.mutate(&in)
			_, err := service.Create(ctx, "alice", in)
			require.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestSetDefaultMovesTheFlag(t *testing.T) {
	service, repo := newPresetFixture(t)
	ctx := context.Background()

	first, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)
	second, err := service.Create(ctx, "alice", validPresetInput("Aggressive"))
	require.NoError(t, err)

	promoted, err := service.SetDefault(ctx, "alice", second.ID)
	require.NoError(t, err)
	require.True(t, promoted.IsDefault)

	demoted, err := repo.GetByID(ctx, "alice", first.ID)
	require.NoError(t, err)
	require.False(t, demoted.IsDefault)

	// Idempotent on the current default.
	again, err := service.SetDefault(ctx, "alice", second.ID)
	require.NoError(t, err)
	require.True(t, again.IsDefault)

	presets, err := service.List(ctx, "alice")
	require.NoError(t, err)
	defaults := 0
	for _, preset := range presets {
		if preset.IsDefault {
			defaults++
		}
	}
	require.Equal(t, 1, defaults)
}

func TestDeleteDefaultPresetBlockedWhileOthersExist(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	first, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)
	_, err = service.Create(ctx, "alice", validPresetInput("Aggressive"))
	require.NoError(t, err)

	err = service.Delete(ctx, "alice", first.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteOnlyPresetAllowed(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	only, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "alice", only.ID))

	_, err = service.GetDefault(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteNonDefaultPreset(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	first, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)
	second, err := service.Create(ctx, "alice", validPresetInput("Aggressive"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "alice", second.ID))

	def, err := service.GetDefault(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, first.ID, def.ID)
}

func TestPresetForeignUserIsNotFound(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	preset, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)

	_, err = service.GetByID(ctx, "bob", preset.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.SetDefault(ctx, "bob", preset.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculateRisk(t *testing.T) {
	service, _ := newPresetFixture(t)
	ctx := context.Background()

	preset, err := service.Create(ctx, "alice", validPresetInput("Conservative"))
	require.NoError(t, err)

	calc, err := service.CalculateRisk(ctx, "alice", preset.ID, 10000)
	require.NoError(t, err)
	require.InDelta(t, 200, calc.RiskAmount, 1e-9)
	require.Equal(t, preset.ID, calc.Preset.ID)

	_, err = service.CalculateRisk(ctx, "alice", preset.ID, 0)
	require.True(t, domain.IsValidation(err))
}
