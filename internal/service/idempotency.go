package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// confirmationTTL bounds how long a claimed payment confirmation stays locked.
const confirmationTTL = 48 * time.Hour

// ClaimPaymentConfirmation marks a gateway payment intent as being processed.
// Returns false when another confirmation for the same intent already holds
// the claim. A nil client disables the check (single-instance development).
func ClaimPaymentConfirmation(ctx context.Context, rdb *redis.Client, intentID string) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("payment:confirm:%s", intentID)

	wasSet, err := rdb.SetNX(ctx, key, "claimed", confirmationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim payment confirmation in redis: %w", err)
	}

	return wasSet, nil
}

// ReleasePaymentConfirmation frees the claim after a failed confirmation so
// the payer can retry.
func ReleasePaymentConfirmation(ctx context.Context, rdb *redis.Client, intentID string) error {
	if rdb == nil {
		return nil
	}

	key := fmt.Sprintf("payment:confirm:%s", intentID)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
