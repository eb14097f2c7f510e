package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("create payment: %w", Conflict("payment of %s exceeds remaining", "10.00"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore(nil, "order", 1))

	err := FromStore(gorm.ErrRecordNotFound, "order", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "order 7 not found")

	err = FromStore(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), "customer", 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	cause := errors.New("disk full")
	err = FromStore(cause, "shipment", 3)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
}
