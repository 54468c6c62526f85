package addressbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/addressbook"
	"github.com/tartampluch/go-assistant/internal/config"
)

func TestNewPhone_Valid(t *testing.T) {
	for _, raw := range []string{"0123456789", "5555555555", "0000000000"} {
		p, err := addressbook.NewPhone(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, p.String(), "Phone must round-trip its value unchanged")
	}
}

func TestNewPhone_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"Empty", "", config.ErrPhoneEmpty},
		{"TooShort", "123456789", config.ErrPhoneLength},
		{"TooLong", "01234567890", config.ErrPhoneLength},
		{"Letters", "01234abcde", config.ErrPhoneDigits},
		{"Plus", "+123456789", config.ErrPhoneDigits},
		{"NonASCIIDigits", "١٢٣٤٥", config.ErrPhoneDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := addressbook.NewPhone(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, addressbook.ErrValidation)
			assert.EqualError(t, err, tt.reason)

			var vErr *addressbook.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "phone", vErr.Field)
		})
	}
}

func TestNewName(t *testing.T) {
	n, err := addressbook.NewName("John")
	require.NoError(t, err)
	assert.Equal(t, "John", n.String())

	_, err = addressbook.NewName("")
	assert.ErrorIs(t, err, addressbook.ErrValidation)
	assert.EqualError(t, err, config.ErrNameEmpty)
}

func TestNewBirthday(t *testing.T) {
	b, err := addressbook.NewBirthday("12.06.1990")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 12, 0, 0, 0, 0, time.UTC), b.Date())
	assert.Equal(t, "12.06.1990", b.String())

	for _, raw := range []string{"", "1990-06-12", "31.02.1990", "12/06/1990", "12.6.90"} {
		_, err := addressbook.NewBirthday(raw)
		assert.ErrorIs(t, err, addressbook.ErrValidation, "input %q", raw)
		assert.EqualError(t, err, config.ErrBirthdayFormat)
	}
}
