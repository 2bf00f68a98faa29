package docstratum

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time wraps time.Time so domain timestamps scan and value consistently
// across the sqlite store. Stored values are always UTC truncated to
// millisecond precision.
type Time struct {
	T time.Time
}

func (t Time) Value() (driver.Value, error) {
	return t.T.UTC().Truncate(time.Millisecond), nil
}

func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.T = v.UTC()
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("parsing time %q: %w", v, err)
		}
		t.T = parsed.UTC()
		return nil
	case nil:
		t.T = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Time", src)
	}
}

func (t Time) IsZero() bool {
	return t.T.IsZero()
}
