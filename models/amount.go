package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a numeric source field that upstream systems send either as a
// JSON number or as a string. Anything unparsable reads as zero.
type Amount float64

// ParseAmount converts free text into a number, returning 0 when the text is
// not numeric. Thousands separators are ignored.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

func (a Amount) Float64() float64 { return float64(a) }

// Int truncates toward zero. Used for day counts such as credit allowed.
func (a Amount) Int() int { return int(a) }

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*a = 0
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(ParseAmount(s))
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// Scan lets Amount read NUMERIC and TEXT columns alike.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0
	case float64:
		*a = Amount(v)
	case int64:
		*a = Amount(v)
	case []byte:
		*a = Amount(ParseAmount(string(v)))
	case string:
		*a = Amount(ParseAmount(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Amount", src)
	}
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return float64(a), nil
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDouble:
		*a = Amount(rv.Double())
	case bson.TypeInt32:
		*a = Amount(rv.Int32())
	case bson.TypeInt64:
		*a = Amount(rv.Int64())
	case bson.TypeString:
		*a = Amount(ParseAmount(rv.StringValue()))
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(rv.Decimal128().String(), 64)
		if err != nil {
			f = 0
		}
		*a = Amount(f)
	default:
		*a = 0
	}
	return nil
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(float64(a))
}
