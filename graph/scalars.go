package graph

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"

	"travelapp-backend/models"
)

// DateScalar is a calendar date written as YYYY-MM-DD.
var DateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "Calendar date in YYYY-MM-DD form.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case models.Date:
			return v.String()
		case *models.Date:
			if v == nil {
				return nil
			}
			return v.String()
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		date, err := models.ParseDate(s)
		if err != nil {
			return nil
		}
		return date
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		s, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		date, err := models.ParseDate(s.Value)
		if err != nil {
			return nil
		}
		return date
	},
})

// DecimalScalar serialises exact decimals as strings with two fraction digits.
var DecimalScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Exact decimal number, serialised as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.StringFixed(models.PriceScale)
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.StringFixed(models.PriceScale)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		return parseDecimal(value)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return parseDecimal(v.Value)
		case *ast.FloatValue:
			return parseDecimal(v.Value)
		case *ast.IntValue:
			return parseDecimal(v.Value)
		}
		return nil
	},
})

func parseDecimal(value interface{}) interface{} {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	default:
		text = fmt.Sprint(v)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	return d
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
