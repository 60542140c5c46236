package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kush-lang/kushc/compiler/errors"
)

func TestSuggestFindsClosestWithinDistance(t *testing.T) {
	got := errors.Suggest("cnt", []string{"count", "total", "index"})
	assert.Equal(t, "count", got)
}

func TestSuggestReturnsEmptyWhenNothingClose(t *testing.T) {
	got := errors.Suggest("xyz", []string{"somethingTotallyDifferent"})
	assert.Equal(t, "", got)
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	got := errors.Suggest("COUNT", []string{"count"})
	assert.Equal(t, "count", got)
}
