package domain

import (
	"math"
	"strconv"
)

// Decimal2 число, которое сериализуется в JSON ровно с двумя знаками после запятой
type Decimal2 float64

// RoundDecimal2 округляет значение до двух знаков
func RoundDecimal2(v float64) Decimal2 {
	return Decimal2(math.Round(v*100) / 100)
}

// MarshalJSON реализует json.Marshaler
func (d Decimal2) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', 2, 64)), nil
}

// String возвращает значение с двумя знаками после запятой
func (d Decimal2) String() string {
	return strconv.FormatFloat(float64(d), 'f', 2, 64)
}
