package usecase

import (
	"context"
	"errors"
	"fmt"

	"journal_server/internal/domain"
	"journal_server/pkg/id"
)

type PresetService struct {
	presetRepo domain.RiskPresetRepository
}

func NewPresetService(presetRepo domain.RiskPresetRepository) (*PresetService, error) {
	if presetRepo == nil {
		return nil, errors.New("risk preset repository required")
	}
	return &PresetService{presetRepo: presetRepo}, nil
}

type RiskPresetInput struct {
	Name           string
	RiskPercentage float64
	MaxDrawdown    float64
	MaxOperations  int
	Description    string
}

func validatePresetInput(in RiskPresetInput) error {
	if in.Name == "" {
		return domain.Invalid("name", "preset name is required")
	}
	if in.RiskPercentage <= 0 {
		return domain.Invalid("riskPercentage", "risk percentage must be positive")
	}
	if in.RiskPercentage > 10 {
		return domain.Invalid("riskPercentage", "risk percentage cannot exceed 10%")
	}
	if in.MaxDrawdown <= 0 {
		return domain.Invalid("maxDrawdown", "max drawdown must be positive")
	}
	if in.MaxDrawdown > 50 {
		return domain.Invalid("maxDrawdown", "max drawdown cannot exceed 50%")
	}
	if in.MaxOperations < 1 {
		return domain.Invalid("maxOperations", "max operations must be positive")
	}
	if in.MaxOperations > 20 {
		return domain.Invalid("maxOperations", "max operations cannot exceed 20")
	}
	return nil
}

// Create stores a new preset. The user's first preset becomes the default.
func (s *PresetService) Create(ctx context.Context, userID string, in RiskPresetInput) (domain.RiskPreset, error) {
	if userID == "" {
		return domain.RiskPreset{}, domain.ErrUnauthorized
	}
	if err := validatePresetInput(in); err != nil {
		return domain.RiskPreset{}, err
	}

	existing, err := s.presetRepo.CountByUser(ctx, userID)
	if err != nil {
		return domain.RiskPreset{}, fmt.Errorf("count presets: %w", err)
	}

	preset := domain.RiskPreset{
		ID:             id.New(),
		UserID:         userID,
		Name:           in.Name,
		RiskPercentage: in.RiskPercentage,
		MaxDrawdown:    in.MaxDrawdown,
		MaxOperations:  in.MaxOperations,
		Description:    in.Description,
		IsDefault:      existing == 0,
	}

	if err := s.presetRepo.Create(ctx, preset); err != nil {
		return domain.RiskPreset{}, fmt.Errorf("create preset: %w", err)
	}

	return s.presetRepo.GetByID(ctx, userID, preset.ID)
}

func (s *PresetService) Update(ctx context.Context, userID, presetID string, in RiskPresetInput) (domain.RiskPreset, error) {
	if userID == "" {
		return domain.RiskPreset{}, domain.ErrUnauthorized
	}
	if err := validatePresetInput(in); err != nil {
		return domain.RiskPreset{}, err
	}

	existing, err := s.presetRepo.GetByID(ctx, userID, presetID)
	if err != nil {
		return domain.RiskPreset{}, err
	}

	existing.Name = in.Name
	existing.RiskPercentage = in.RiskPercentage
	existing.MaxDrawdown = in.MaxDrawdown
	existing.MaxOperations = in.MaxOperations
	existing.Description = in.Description

	if err := s.presetRepo.Update(ctx, existing); err != nil {
		return domain.RiskPreset{}, fmt.Errorf("update preset: %w", err)
	}

	return s.presetRepo.GetByID(ctx, userID, presetID)
}

// Delete refuses to remove the default preset while other presets exist, so
// the user is never left without a well-defined default.
func (s *PresetService) Delete(ctx context.Context, userID, presetID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	existing, err := s.presetRepo.GetByID(ctx, userID, presetID)
	if err != nil {
		return err
	}

	if existing.IsDefault {
		others, err := s.presetRepo.CountOthers(ctx, userID, presetID)
		if err != nil {
			return fmt.Errorf("count other presets: %w", err)
		}
		if others > 0 {
			return fmt.Errorf("%w: cannot delete default preset, set another preset as default first", domain.ErrConflict)
		}
	}

	return s.presetRepo.Delete(ctx, presetID)
}

func (s *PresetService) GetByID(ctx context.Context, userID, presetID string) (domain.RiskPreset, error) {
	if userID == "" {
		return domain.RiskPreset{}, domain.ErrUnauthorized
	}
	return s.presetRepo.GetByID(ctx, userID, presetID)
}

func (s *PresetService) GetDefault(ctx context.Context, userID string) (domain.RiskPreset, error) {
	if userID == "" {
		return domain.RiskPreset{}, domain.ErrUnauthorized
	}
	return s.presetRepo.GetDefault(ctx, userID)
}

func (s *PresetService) List(ctx context.Context, userID string) ([]domain.RiskPreset, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.presetRepo.ListByUser(ctx, userID)
}

// SetDefault makes the target preset the single default. Idempotent.
func (s *PresetService) SetDefault(ctx context.Context, userID, presetID string) (domain.RiskPreset, error) {
	if userID == "" {
		return domain.RiskPreset{}, domain.ErrUnauthorized
	}
	if _, err := s.presetRepo.GetByID(ctx, userID, presetID); err != nil {
		return domain.RiskPreset{}, err
	}
	if err := s.presetRepo.SetDefault(ctx, userID, presetID); err != nil {
		return domain.RiskPreset{}, fmt.Errorf("set default preset: %w", err)
	}
	return s.presetRepo.GetByID(ctx, userID, presetID)
}

// CalculateRisk applies a preset's risk percentage to an account balance.
func (s *PresetService) CalculateRisk(ctx context.Context, userID, presetID string, accountBalance float64) (domain.RiskCalculation, error) {
	if userID == "" {
		return domain.RiskCalculation{}, domain.ErrUnauthorized
	}
	if accountBalance <= 0 {
		return domain.RiskCalculation{}, domain.Invalid("accountBalance", "account balance must be positive")
	}

	preset, err := s.presetRepo.GetByID(ctx, userID, presetID)
	if err != nil {
		return domain.RiskCalculation{}, err
	}

	return domain.RiskCalculation{
		Preset:         preset,
		RiskAmount:     accountBalance * preset.RiskPercentage / 100,
		RiskPercentage: preset.RiskPercentage,
		MaxDrawdown:    preset.MaxDrawdown,
		MaxOperations:  preset.MaxOperations,
	}, nil
}
