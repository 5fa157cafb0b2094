package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// recentLimit is how many result IDs are kept per variant.
const recentLimit = 100

const (
	tallyFieldX    = "X"
	tallyFieldO    = "O"
	tallyFieldDraw = "draw"
)

var ErrResultNotFound = fmt.Errorf("result %w", apperror.ErrNotFound)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	Recent(ctx context.Context, variant string, limit int) ([]*entity.Result, error)
	Tally(ctx context.Context, variant string) (entity.Tally, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Save - stores the result, adds it to the variant's recent list and bumps
// the variant's tally in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(result.ID), resultJSON, 0)
		pipe.LPush(ctx, recentKey(result.Variant), result.ID)
		pipe.LTrim(ctx, recentKey(result.Variant), 0, recentLimit-1)
		pipe.HIncrBy(ctx, tallyKey(result.Variant), tallyField(result), 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Recent - returns up to limit results of a variant, newest first. IDs whose
// record is gone are skipped.
func (that *dbResult) Recent(ctx context.Context, variant string, limit int) ([]*entity.Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, recentKey(variant), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	results := make([]*entity.Result, 0, len(ids))
	for _, id := range ids {
		result, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrResultNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}

func (that *dbResult) Tally(ctx context.Context, variant string) (entity.Tally, error) {
	fields, err := that.client.HGetAll(ctx, tallyKey(variant)).Result()
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get tally: %w", err)
	}

	var tally entity.Tally
	for field, value := range fields {
		count, err := strconv.Atoi(value)
		if err != nil {
			return entity.Tally{}, fmt.Errorf("failed to parse tally field %s: %w", field, err)
		}

		switch field {
		case tallyFieldX:
			tally.X = count
		case tallyFieldO:
			tally.O = count
		case tallyFieldDraw:
			tally.Draws = count
		}
	}

	return tally, nil
}

func tallyField(result *entity.Result) string {
	if result.Winner == nil {
		return tallyFieldDraw
	}

	if *result.Winner == entity.PlayerX {
		return tallyFieldX
	}
	return tallyFieldO
}

func resultKey(id string) string {
	return "result:" + id
}

func recentKey(variant string) string {
	return "results:" + variant
}

func tallyKey(variant string) string {
	return "score:" + variant
}
