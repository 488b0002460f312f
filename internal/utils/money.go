package utils

import (
	"fmt"
	"strconv"
	"strings"

	"marketplace/internal/domain"
)

// FormatINR renders an amount with Indian-style digit grouping, e.g.
// 1234567 -> "₹12,34,567".
func FormatINR(amount domain.Money) string {
	sign := ""
	v := int64(amount)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₹%s", sign, groupIndian(v))
}

// ParseINR parses "₹12,34,567" or "1234567" into a money amount.
func ParseINR(s string) (domain.Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	replacer := strings.NewReplacer(",", "", ".", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.Money(v), nil
}

// groupIndian inserts separators at the thousand then every two digits:
// 12,34,567.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String() + "," + tail
}
