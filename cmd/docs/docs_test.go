package docs_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/SscSPs/million_tracker/cmd/docs"
	"github.com/SscSPs/million_tracker/internal/dto"
	"github.com/SscSPs/million_tracker/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonFields(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

func TestDefinitionsMatchResponseTypes(t *testing.T) {
	var doc struct {
		Definitions map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	types := map[string]any{
		"dto.LoginRequest":             dto.LoginRequest{},
		"dto.LoginResponse":            dto.LoginResponse{},
		"dto.Money":                    dto.Money{},
		"dto.GoalProgressResponse":     dto.GoalProgressResponse{},
		"dto.CurrencyTotalResponse":    dto.CurrencyTotalResponse{},
		"dto.CategoryCurrencyResponse": dto.CategoryCurrencyResponse{},
		"dto.CategoryTotalResponse":    dto.CategoryTotalResponse{},
		"dto.RecordResponse":           dto.RecordResponse{},
		"dto.CurrentResponse":          dto.CurrentResponse{},
		"dto.SeriesPointResponse":      dto.SeriesPointResponse{},
		"dto.DeltaResponse":            dto.DeltaResponse{},
		"dto.CategoryPointResponse":    dto.CategoryPointResponse{},
		"dto.EvolutionResponse":        dto.EvolutionResponse{},
		"dto.MultiCurrencyResponse":    dto.MultiCurrencyResponse{},
		"dto.MonthCurrencyResponse":    dto.MonthCurrencyResponse{},
		"dto.BreakdownResponse":        dto.BreakdownResponse{},
		"dto.RatesResponse":            dto.RatesResponse{},
		"dto.RateHistoryResponse":      dto.RateHistoryResponse{},
		"dto.ConvertResponse":          dto.ConvertResponse{},
		"handlers.ErrorResponse":       handlers.ErrorResponse{},
	}
	assert.Len(t, doc.Definitions, len(types))
	for name, v := range types {
		def, ok := doc.Definitions[name]
		if !assert.True(t, ok, "missing definition %s", name) {
			continue
		}
		props := make([]string, 0, len(def.Properties))
		for p := range def.Properties {
			props = append(props, p)
		}
		assert.ElementsMatch(t, jsonFields(reflect.TypeOf(v)), props, name)
	}
}
