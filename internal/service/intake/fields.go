package intake

import (
	"fmt"
	"strconv"

	"github.com/pawsnclaws/intake-api/internal/validate"
)

var petSpecies = []string{"cat", "dog", "other"}

func personName(key string) *validate.Field {
	return validate.String(key).
		Required("Name is required").
		MinLen(2, "Name must be at least 2 characters").
		MaxLen(100, "Name must be less than 100 characters")
}

// details is a required free-text block of 10 to 5000 characters.
func details(key, required string) *validate.Field {
	return validate.String(key).
		Required(required).
		MinLen(10, "Please provide more detail (at least 10 characters)").
		MaxLen(5000, "Message must be less than 5000 characters")
}

func text(key string, max int) *validate.Field {
	return validate.String(key).MaxLen(max, fmt.Sprintf("Must be less than %d characters", max))
}

func cityField() *validate.Field {
	return text("city", 50)
}

// dollars formats a whole-dollar amount with thousands separators.
func dollars(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "yes"
	default:
		return "no"
	}
}
