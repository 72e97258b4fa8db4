// Package docs holds the swagger document served at /swagger. It mirrors the
// swag annotations on the handlers and the dto types, and is kept in step with
// them by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Authenticates the dashboard owner and returns a JWT token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Owner login",
                "parameters": [
                    {
                        "description": "Login Credentials",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "501": {"description": "Authentication disabled", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/dashboard/breakdown": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Investments and categories valued in every supported currency",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Investment breakdown",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BreakdownResponse"}},
                    "422": {"description": "Ledger lacks required columns", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Ledger source or rate provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/dashboard/breakdown/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Same as GET /dashboard/breakdown for a CSV file supplied in the request",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Breakdown of an uploaded ledger",
                "parameters": [
                    {"type": "file", "description": "Ledger CSV", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BreakdownResponse"}},
                    "400": {"description": "Missing or malformed file", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Ledger lacks required columns", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Rate provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/dashboard/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Totals of a single ledger period, by currency and by sub-category, with goal progress",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Current money breakdown",
                "parameters": [
                    {"type": "string", "description": "Period label as listed in availablePeriods; defaults to the latest", "name": "period", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CurrentResponse"}},
                    "404": {"description": "Unknown period or spreadsheet", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Ledger lacks required columns", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Ledger source unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/dashboard/evolution": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "USD totals per day or month, growth since the first period and progress to the goal",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Wealth evolution",
                "parameters": [
                    {"enum": ["day", "month"], "type": "string", "description": "day (default) or month", "name": "granularity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EvolutionResponse"}},
                    "400": {"description": "Invalid granularity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Ledger lacks required columns", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Ledger source unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "The cached USD-based snapshot, refreshed when older than the cache TTL",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Current exchange rates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RatesResponse"}},
                    "502": {"description": "Rate provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rates/convert": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Converts an amount between supported currencies with the current snapshot",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Convert an amount",
                "parameters": [
                    {"type": "string", "description": "Amount, locale formats such as 1.000,50 accepted", "name": "amount", "in": "query", "required": true},
                    {"enum": ["AUD", "BRL", "EUR", "USD"], "type": "string", "description": "Source currency", "name": "from", "in": "query", "required": true},
                    {"enum": ["AUD", "BRL", "EUR", "USD"], "type": "string", "description": "Target currency", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConvertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Rate provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rates/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Snapshots archived at every refresh, newest first",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Archived exchange rates",
                "parameters": [
                    {"type": "integer", "description": "Number of snapshots (1-100, default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RateHistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "501": {"description": "No database configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "dto.Money": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "1234.56"},
                "currency": {"type": "string", "example": "USD"},
                "display": {"type": "string", "example": "$1,234.56"}
            }
        },
        "dto.GoalProgressResponse": {
            "type": "object",
            "properties": {
                "current": {"$ref": "#/definitions/dto.Money"},
                "fraction": {"type": "string"},
                "pending": {"$ref": "#/definitions/dto.Money"},
                "percentDisplay": {"type": "string", "example": "25.00%"},
                "target": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.CurrencyTotalResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "total": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.CategoryCurrencyResponse": {
            "type": "object",
            "properties": {
                "amount": {"$ref": "#/definitions/dto.Money"},
                "amountUSD": {"$ref": "#/definitions/dto.Money"},
                "category": {"type": "string"}
            }
        },
        "dto.CategoryTotalResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "totalUSD": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.RecordResponse": {
            "type": "object",
            "properties": {
                "amount": {"$ref": "#/definitions/dto.Money"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "investmentName": {"type": "string"},
                "subCategory": {"type": "string"}
            }
        },
        "dto.CurrentResponse": {
            "type": "object",
            "properties": {
                "availablePeriods": {"type": "array", "items": {"type": "string"}},
                "byCategoryCurrency": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryCurrencyResponse"}},
                "byCategoryUSD": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryTotalResponse"}},
                "byCurrency": {"type": "array", "items": {"$ref": "#/definitions/dto.CurrencyTotalResponse"}},
                "dropped": {"type": "integer"},
                "period": {"type": "string"},
                "progress": {"$ref": "#/definitions/dto.GoalProgressResponse"},
                "ratesAsOf": {"type": "string"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/dto.RecordResponse"}},
                "totalUSD": {"$ref": "#/definitions/dto.Money"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.SeriesPointResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "period": {"type": "string"},
                "totalUSD": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.DeltaResponse": {
            "type": "object",
            "properties": {
                "change": {"$ref": "#/definitions/dto.Money"},
                "current": {"$ref": "#/definitions/dto.Money"},
                "growthDisplay": {"type": "string", "example": "150.00%"},
                "growthPercent": {"type": "string"},
                "initial": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.CategoryPointResponse": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "values": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.EvolutionResponse": {
            "type": "object",
            "properties": {
                "categorySeries": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryPointResponse"}},
                "delta": {"$ref": "#/definitions/dto.DeltaResponse"},
                "granularity": {"type": "string", "example": "day"},
                "progress": {"$ref": "#/definitions/dto.GoalProgressResponse"},
                "ratesAsOf": {"type": "string"},
                "series": {"type": "array", "items": {"$ref": "#/definitions/dto.SeriesPointResponse"}},
                "target": {"$ref": "#/definitions/dto.Money"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.MultiCurrencyResponse": {
            "type": "object",
            "properties": {
                "amounts": {"type": "object", "additionalProperties": {"$ref": "#/definitions/dto.Money"}},
                "key": {"type": "string"}
            }
        },
        "dto.MonthCurrencyResponse": {
            "type": "object",
            "properties": {
                "amount": {"$ref": "#/definitions/dto.Money"},
                "amountUSD": {"$ref": "#/definitions/dto.Money"},
                "isTotal": {"type": "boolean"},
                "month": {"type": "string"}
            }
        },
        "dto.BreakdownResponse": {
            "type": "object",
            "properties": {
                "byCategory": {"type": "array", "items": {"$ref": "#/definitions/dto.MultiCurrencyResponse"}},
                "byCurrency": {"type": "array", "items": {"$ref": "#/definitions/dto.CurrencyTotalResponse"}},
                "byInvestment": {"type": "array", "items": {"$ref": "#/definitions/dto.MultiCurrencyResponse"}},
                "dropped": {"type": "integer"},
                "monthCurrency": {"type": "array", "items": {"$ref": "#/definitions/dto.MonthCurrencyResponse"}},
                "rates": {"$ref": "#/definitions/dto.RatesResponse"},
                "records": {"type": "integer"},
                "totals": {"type": "object", "additionalProperties": {"$ref": "#/definitions/dto.Money"}}
            }
        },
        "dto.RatesResponse": {
            "type": "object",
            "properties": {
                "asOf": {"type": "string"},
                "base": {"type": "string", "example": "USD"},
                "rates": {"type": "object", "additionalProperties": {"type": "string"}},
                "snapshotID": {"type": "string"}
            }
        },
        "dto.RateHistoryResponse": {
            "type": "object",
            "properties": {
                "snapshots": {"type": "array", "items": {"$ref": "#/definitions/dto.RatesResponse"}}
            }
        },
        "dto.ConvertResponse": {
            "type": "object",
            "properties": {
                "from": {"$ref": "#/definitions/dto.Money"},
                "ratesAsOf": {"type": "string"},
                "to": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Million Tracker API",
	Description:      "Personal wealth dashboard: ledger breakdowns, USD evolution and progress to the goal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
