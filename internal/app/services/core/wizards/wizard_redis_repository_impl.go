package wizards

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type wizardRedisRepository struct {
	RedisRepository contracts.RedisRepository
}

func NewWizardRedisRepository(redisRepository contracts.RedisRepository) contracts.WizardStore {
	return &wizardRedisRepository{
		RedisRepository: redisRepository,
	}
}

func wizardKey(wizardID string) string {
	return constvars.RedisKeyWizardPrefix + wizardID
}

func submitLockKey(wizardID string) string {
	return constvars.RedisKeyWizardPrefix + wizardID + constvars.RedisKeyWizardSubmitSuffix
}

func (r *wizardRedisRepository) Save(ctx context.Context, state models.WizardState, ttl time.Duration) error {
	return r.RedisRepository.Set(ctx, wizardKey(state.ID), state, ttl)
}

func (r *wizardRedisRepository) Get(ctx context.Context, wizardID string) (*models.WizardState, error) {
	data, err := r.RedisRepository.Get(ctx, wizardKey(wizardID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var state models.WizardState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &state, nil
}

func (r *wizardRedisRepository) Delete(ctx context.Context, wizardID string) error {
	return r.RedisRepository.Delete(ctx, wizardKey(wizardID))
}

// PersistTransitions saves every state the workflow moves through during a
// submit, so a reload or another replica sees Submitting while the ledger
// call is outstanding.
func PersistTransitions(store contracts.WizardStore, ttl time.Duration) func(ctx context.Context, state models.WizardState) error {
	return func(ctx context.Context, state models.WizardState) error {
		return store.Save(context.WithoutCancel(ctx), state, ttl)
	}
}
