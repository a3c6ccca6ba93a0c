package csvimport

import (
	"testing"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", " yes ", "Yes"} {
		require.True(t, parseBool(raw), raw)
	}
	for _, raw := range []string{"", "1", "y", "no", "false", "si"} {
		require.False(t, parseBool(raw), raw)
	}
}

func TestParseDecimal(t *testing.T) {
	t.Run("blank is nil without error", func(t *testing.T) {
		var errs errorSink

		require.Nil(t, parseDecimal("  ", "PurchasePrice", &errs))
		require.Empty(t, errs)
	})

	t.Run("valid", func(t *testing.T) {
		var errs errorSink

		value := parseDecimal(" 59.99 ", "PurchasePrice", &errs)

		require.Equal(t, "59.99", *value)
		require.Empty(t, errs)
	})

	t.Run("comma separator is not a number", func(t *testing.T) {
		var errs errorSink

		value := parseDecimal("59,99", "PurchasePrice", &errs)

		require.Nil(t, value)
		require.Equal(t, errorSink{"PurchasePrice must be a number (use '.' as decimal separator)."}, errs)
	})

	t.Run("negative keeps value", func(t *testing.T) {
		var errs errorSink

		value := parseDecimal("-5", "EstimatedValue", &errs)

		require.Equal(t, "-5", *value)
		require.Equal(t, errorSink{"EstimatedValue must be >= 0."}, errs)
	})

	t.Run("too large for the column", func(t *testing.T) {
		var errs errorSink

		value := parseDecimal("123456789012", "PurchasePrice", &errs)

		require.Equal(t, "123456789012", *value)
		require.Equal(t, errorSink{"PurchasePrice must be at most 9999999999.99."}, errs)
	})

	t.Run("rounds up past the column", func(t *testing.T) {
		var errs errorSink

		parseDecimal("9999999999.995", "EstimatedValue", &errs)

		require.Equal(t, errorSink{"EstimatedValue must be at most 9999999999.99."}, errs)
	})
}

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var errs errorSink

		date := parseDate("2021-06-01", "PurchaseDate", &errs)

		require.True(t, date.Valid)
		require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), date.Time)
		require.Empty(t, errs)
	})

	t.Run("blank", func(t *testing.T) {
		var errs errorSink

		require.False(t, parseDate("", "PurchaseDate", &errs).Valid)
		require.Empty(t, errs)
	})

	for _, raw := range []string{"2021-6-1", "01/06/2021", "2021/06/01", "2021-02-30", "20210601", "2021-06-01T00:00:00Z"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			var errs errorSink

			require.False(t, parseDate(raw, "PurchaseDate", &errs).Valid)
			require.Equal(t, errorSink{"PurchaseDate must be yyyy-MM-dd."}, errs)
		})
	}
}

func TestParseEnum(t *testing.T) {
	t.Run("blank uses fallback", func(t *testing.T) {
		var errs errorSink

		value := parseEnum("", "Condition", items.ParseCondition, items.ConditionNames(), items.ConditionGood, &errs)

		require.Equal(t, items.ConditionGood, value)
		require.Empty(t, errs)
	})

	t.Run("case insensitive", func(t *testing.T) {
		var errs errorSink

		value := parseEnum("verygood", "Condition", items.ParseCondition, items.ConditionNames(), items.ConditionGood, &errs)

		require.Equal(t, items.ConditionVeryGood, value)
		require.Empty(t, errs)
	})

	t.Run("unknown lists allowed names", func(t *testing.T) {
		var errs errorSink

		value := parseEnum("Broken", "Condition", items.ParseCondition, items.ConditionNames(), items.ConditionGood, &errs)

		require.Equal(t, items.ConditionGood, value)
		require.Equal(t, errorSink{"Invalid Condition 'Broken'. Allowed: New, Mint, NearMint, VeryGood, Good, Fair, Poor."}, errs)
	})
}

func TestParseYear(t *testing.T) {
	var errs errorSink

	require.Equal(t, 1994, *parseYear("1994", "ReleaseYear", &errs))
	require.Nil(t, parseYear("", "ReleaseYear", &errs))
	require.Empty(t, errs)

	require.Nil(t, parseYear("94", "ReleaseYear", &errs))
	require.Nil(t, parseYear("nineteen", "ReleaseYear", &errs))
	require.Len(t, errs, 2)
	require.Equal(t, "ReleaseYear must be a year between 1950 and 2100.", errs[0])
}
