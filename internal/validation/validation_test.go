package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinate(t *testing.T) {
	assert.NoError(t, ValidateCoordinate(0, 0))
	assert.NoError(t, ValidateCoordinate(-90, -180))
	assert.NoError(t, ValidateCoordinate(90, 180))
	assert.NoError(t, ValidateCoordinate(52.52, 13.405))

	assert.Error(t, ValidateCoordinate(90.0001, 0))
	assert.Error(t, ValidateCoordinate(-91, 0))
	assert.Error(t, ValidateCoordinate(0, 180.5))
	assert.Error(t, ValidateCoordinate(0, -181))
}

func TestValidateRating(t *testing.T) {
	// nil means a comment-only visit
	assert.NoError(t, ValidateRating(nil))

	for rating := 1; rating <= 5; rating++ {
		r := rating
		assert.NoError(t, ValidateRating(&r))
	}

	for _, rating := range []int{0, 6, -3, 100} {
		r := rating
		err := ValidateRating(&r)
		assert.Error(t, err, "rating %d", rating)
		assert.True(t, IsValidationError(err))
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reader@example.com"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("moss-green-bicycle"))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("my-password-is-long"), "common patterns are rejected")
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("book_fan_42"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("Upper"))
	assert.Error(t, ValidateUsername("spaced name"))
}

func TestValidateBoxName(t *testing.T) {
	assert.NoError(t, ValidateBoxName("Riverside Box"))

	assert.Error(t, ValidateBoxName(""))
	assert.Error(t, ValidateBoxName("   "))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ValidateCoordinate(100, 0)))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(assert.AnError))
}
