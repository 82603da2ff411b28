package annowiki_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()

		err := annowiki.Errorf(annowiki.EINVALID, "bad input")
		assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", annowiki.Errorf(annowiki.ENOTFOUND, "missing"))
		assert.Equal(t, annowiki.ENOTFOUND, annowiki.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, annowiki.EINTERNAL, annowiki.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", annowiki.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()

		err := annowiki.Errorf(annowiki.EINVALID, "bad %s", "input")
		assert.Equal(t, "bad input", annowiki.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", annowiki.ErrorMessage(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", annowiki.ErrorMessage(nil))
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := annowiki.Errorf(annowiki.EINTERNAL, "it broke")
	assert.Equal(t, "annowiki error: code=internal message=it broke", err.Error())
}
