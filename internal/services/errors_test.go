package services

import (
	"errors"
	"fmt"
	"testing"

	"hotel_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestServiceErrorsCarryTheirKind(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{ErrSameTable, ErrValidation},
		{ErrInvalidRole, ErrValidation},
		{ErrTakeawayNotMovable, ErrPrecondition},
		{ErrTargetTableTooSmall, ErrPrecondition},
		{ErrRoomStatusConflict, ErrPrecondition},
		{ErrDuplicateInvoiceNo, ErrConflict},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tc.err), tc.kind, tc.err.Error())
	}
}

func TestRepoError(t *testing.T) {
	assert.NoError(t, repoError(nil, ErrRoomNotFound, "op"))
	assert.Equal(t, ErrRoomNotFound, repoError(repositories.ErrNotFound, ErrRoomNotFound, "op"))
	assert.ErrorIs(t, repoError(repositories.ErrInvoiceNumberTaken, nil, "op"), ErrConflict)
	boom := errors.New("boom")
	assert.ErrorIs(t, repoError(boom, nil, "op"), boom)
}
