package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmate/jobboard-service/internal/apperr"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want apperr.Kind
	}{
		{apperr.NotFound("company"), apperr.KindNotFound},
		{apperr.Forbidden(), apperr.KindForbidden},
		{apperr.Invalid("bad date %q", "x"), apperr.KindInvalidInput},
		{apperr.Conflict("job Already Exist"), apperr.KindConflict},
		{apperr.Unauthenticated("missing x-user-id header"), apperr.KindUnauthenticated},
		{apperr.TooLarge("request body too large"), apperr.KindTooLarge},
		{fmt.Errorf("generate: %w", apperr.Forbidden()), apperr.KindForbidden},
		{errors.New("boom"), apperr.KindInternal},
		{nil, apperr.KindInternal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, apperr.KindOf(c.err), "KindOf(%v)", c.err)
	}
}

func TestMessage_HidesInternalCause(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := apperr.Internal("list jobs", cause)

	assert.Equal(t, "internal server error", apperr.Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestMessage_UserFacing(t *testing.T) {
	assert.Equal(t, "company Not Found", apperr.Message(apperr.NotFound("company")))
	assert.Equal(t, "bad date \"x\"", apperr.Message(apperr.Invalid("bad date %q", "x")))
	assert.Equal(t, "internal server error", apperr.Message(errors.New("raw")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", apperr.KindNotFound.String())
	assert.Equal(t, "too_large", apperr.KindTooLarge.String())
	assert.Equal(t, "internal", apperr.KindInternal.String())
}
