package model

import (
	"fmt"
	"strings"
	"time"
)

// Date 以 "YYYY-MM-DD" 格式序列化的日期类型。
type Date time.Time

const dateFormat = "2006-01-02"

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}

// YearStart 返回指定年份的 1 月 1 日（UTC），年份无法解析时返回 ok=false。
func YearStart(year string) (time.Time, bool) {
	t, err := time.Parse("2006", year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date(time.Time{})
		return nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}
