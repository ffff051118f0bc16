package usecase

import (
	"context"
	"time"

	"journal_server/internal/domain"
)

// In-memory repository fakes backing the service tests.

type fakeStrategyRepo struct {
	strategies map[string]domain.Strategy
	operations *fakeOperationRepo
}

func newFakeStrategyRepo(ops *fakeOperationRepo) *fakeStrategyRepo {
	return &fakeStrategyRepo{strategies: map[string]domain.Strategy{}, operations: ops}
}

func (r *fakeStrategyRepo) Create(_ context.Context, strategy domain.Strategy) error {
	r.strategies[strategy.ID] = strategy
	return nil
}

func (r *fakeStrategyRepo) Update(_ context.Context, strategy domain.Strategy) error {
	existing, ok := r.strategies[strategy.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = strategy.Name
	existing.Description = strategy.Description
	if strategy.OperationTypes != nil {
		existing.OperationTypes = strategy.OperationTypes
	}
	if strategy.EntrySignals != nil {
		existing.EntrySignals = strategy.EntrySignals
	}
	r.strategies[strategy.ID] = existing
	return nil
}

func (r *fakeStrategyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.strategies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.strategies, id)
	if r.operations != nil {
		for opID, op := range r.operations.operations {
			if op.StrategyID == id {
				delete(r.operations.operations, opID)
			}
		}
	}
	return nil
}

func (r *fakeStrategyRepo) GetByID(_ context.Context, userID, id string) (domain.Strategy, error) {
	strategy, ok := r.strategies[id]
	if !ok || strategy.UserID != userID {
		return domain.Strategy{}, domain.ErrNotFound
	}
	return strategy, nil
}

func (r *fakeStrategyRepo) ListByUser(_ context.Context, userID string) ([]domain.Strategy, error) {
	var out []domain.Strategy
	for _, strategy := range r.strategies {
		if strategy.UserID == userID {
			out = append(out, strategy)
		}
	}
	return out, nil
}

type fakeOperationRepo struct {
	operations map[string]domain.Operation
}

func newFakeOperationRepo() *fakeOperationRepo {
	return &fakeOperationRepo{operations: map[string]domain.Operation{}}
}

func (r *fakeOperationRepo) Create(_ context.Context, operation domain.Operation) error {
	r.operations[operation.ID] = operation
	return nil
}

func (r *fakeOperationRepo) Update(_ context.Context, operation domain.Operation) error {
	if _, ok := r.operations[operation.ID]; !ok {
		return domain.ErrNotFound
	}
	r.operations[operation.ID] = operation
	return nil
}

func (r *fakeOperationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.operations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.operations, id)
	return nil
}

func (r *fakeOperationRepo) GetByID(_ context.Context, id string) (domain.Operation, error) {
	operation, ok := r.operations[id]
	if !ok {
		return domain.Operation{}, domain.ErrNotFound
	}
	return operation, nil
}

func (r *fakeOperationRepo) ListByStrategy(_ context.Context, strategyID string, filter domain.OperationFilter) ([]domain.Operation, error) {
	var out []domain.Operation
	for _, op := range r.operations {
		if op.StrategyID != strategyID {
			continue
		}
		switch filter {
		case domain.OperationFilterNoRiskManagement:
			if op.RiskManagement != nil {
				continue
			}
		case domain.OperationFilterNoLiquidation:
			if op.Liquidation != nil {
				continue
			}
		}
		out = append(out, op)
	}
	return out, nil
}

func (r *fakeOperationRepo) CountByStrategy(_ context.Context, strategyID string) (int64, error) {
	var count int64
	for _, op := range r.operations {
		if op.StrategyID == strategyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeOperationRepo) AddRiskManagement(_ context.Context, rm domain.RiskManagement) error {
	op, ok := r.operations[rm.OperationID]
	if !ok {
		return domain.ErrNotFound
	}
	op.RiskManagement = &rm
	r.operations[rm.OperationID] = op
	return nil
}

func (r *fakeOperationRepo) AddLiquidation(_ context.Context, liq domain.Liquidation) error {
	op, ok := r.operations[liq.OperationID]
	if !ok {
		return domain.ErrNotFound
	}
	op.Liquidation = &liq
	r.operations[liq.OperationID] = op
	return nil
}

type fakeAccountRepo struct {
	accounts        map[string]domain.TradingAccount
	operationCounts map[string]int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:        map[string]domain.TradingAccount{},
		operationCounts: map[string]int64{},
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account domain.TradingAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account domain.TradingAccount) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return domain.ErrNotFound
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, userID, id string) (domain.TradingAccount, error) {
	account, ok := r.accounts[id]
	if !ok || account.UserID != userID {
		return domain.TradingAccount{}, domain.ErrNotFound
	}
	account.OperationCount = r.operationCounts[id]
	return account, nil
}

func (r *fakeAccountRepo) ListByUser(_ context.Context, userID string) ([]domain.TradingAccount, error) {
	var out []domain.TradingAccount
	for _, account := range r.accounts {
		if account.UserID == userID {
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) ListActive(_ context.Context, userID string) ([]domain.TradingAccount, error) {
	var out []domain.TradingAccount
	for _, account := range r.accounts {
		if account.UserID == userID && account.IsActive {
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) SetActive(_ context.Context, id string, active bool) error {
	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	account.IsActive = active
	r.accounts[id] = account
	return nil
}

func (r *fakeAccountRepo) CountOperations(_ context.Context, accountID string) (int64, error) {
	return r.operationCounts[accountID], nil
}

type fakePresetRepo struct {
	presets map[string]domain.RiskPreset
}

func newFakePresetRepo() *fakePresetRepo {
	return &fakePresetRepo{presets: map[string]domain.RiskPreset{}}
}

func (r *fakePresetRepo) Create(_ context.Context, preset domain.RiskPreset) error {
	r.presets[preset.ID] = preset
	return nil
}

func (r *fakePresetRepo) Update(_ context.Context, preset domain.RiskPreset) error {
	if _, ok := r.presets[preset.ID]; !ok {
		return domain.ErrNotFound
	}
	r.presets[preset.ID] = preset
	return nil
}

func (r *fakePresetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.presets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.presets, id)
	return nil
}

func (r *fakePresetRepo) GetByID(_ context.Context, userID, id string) (domain.RiskPreset, error) {
	preset, ok := r.presets[id]
	if !ok || preset.UserID != userID {
		return domain.RiskPreset{}, domain.ErrNotFound
	}
	return preset, nil
}

func (r *fakePresetRepo) GetDefault(_ context.Context, userID string) (domain.RiskPreset, error) {
	for _, preset := range r.presets {
		if preset.UserID == userID && preset.IsDefault {
			return preset, nil
		}
	}
	return domain.RiskPreset{}, domain.ErrNotFound
}

func (r *fakePresetRepo) ListByUser(_ context.Context, userID string) ([]domain.RiskPreset, error) {
	var out []domain.RiskPreset
	for _, preset := range r.presets {
		if preset.UserID == userID {
			out = append(out, preset)
		}
	}
	return out, nil
}

func (r *fakePresetRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, preset := range r.presets {
		if preset.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakePresetRepo) CountOthers(_ context.Context, userID, excludeID string) (int64, error) {
	var count int64
	for _, preset := range r.presets {
		if preset.UserID == userID && preset.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakePresetRepo) SetDefault(_ context.Context, userID, id string) error {
	if _, ok := r.presets[id]; !ok {
		return domain.ErrNotFound
	}
	for pid, preset := range r.presets {
		if preset.UserID == userID {
			preset.IsDefault = pid == id
			r.presets[pid] = preset
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) UpsertUser(_ context.Context, user domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, userID string) (domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

type fakeSessionRepo struct {
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session domain.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (domain.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}
