package season

import (
	"strconv"
	"time"
)

// ID is the provider's season identifier, e.g. 20232024.
type ID int64

// Previous returns id-1. This is integer arithmetic on the identifier, not
// on the year-pair encoding it carries.
func (id ID) Previous() ID {
	return id - 1
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// DateRange is the regular-season window of a season.
type DateRange struct {
	Start time.Time
	End   time.Time
}
