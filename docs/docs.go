// Package docs registers the Swagger spec served under /swagger. Regenerate with swag init.
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
        "/api/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}},
                    "400": {"description": "invalid input or user already exists", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "too many attempts", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}},
                    "400": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "too many attempts", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/ledgers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ledgers"],
                "summary": "List ledgers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Ledger"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledgers"],
                "summary": "Create ledger",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.CreateLedgerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Ledger"}},
                    "400": {"description": "empty or duplicate name", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "name": "ledgerId", "in": "query", "required": true},
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}},
                    "400": {"description": "ledgerId is required", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "ledger not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create transaction",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.CreateTransactionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "ledger not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update transaction",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/service.UpdateFields"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "401": {"description": "not authorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "transaction not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete transaction",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "not authorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "transaction not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Summary",
                "parameters": [
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "integer", "name": "ledgerId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Summary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/analyze-ai": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "AI analysis",
                "parameters": [{"in": "body", "name": "request", "schema": {"$ref": "#/definitions/api.AnalysisRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnalysisResponse"}},
                    "400": {"description": "insufficient data or bad dates", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "analyzer not configured", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["export"],
                "summary": "Export transactions",
                "parameters": [
                    {"type": "integer", "name": "ledgerId", "in": "query", "required": true},
                    {"type": "string", "default": "csv", "name": "format", "in": "query"},
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "ledger not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/analyses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Analysis history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AnalysisHistory"}}}
                }
            }
        },
        "/api/analyses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Analysis detail",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnalysisDetail"}},
                    "401": {"description": "not authorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "analysis not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["analysis"],
                "summary": "Delete analysis",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "analysis not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {"type": "object", "properties": {"msg": {"type": "string"}}},
        "api.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "api.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "api.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "api.CreateLedgerRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "api.CreateTransactionRequest": {
            "type": "object",
            "properties": {
                "ledgerId": {"type": "integer"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "originalAmount": {"type": "number"},
                "divisionFactor": {"type": "number"},
                "isInstallment": {"type": "boolean"},
                "totalInstallments": {"type": "integer"},
                "paidInstallments": {"type": "integer"}
            }
        },
        "service.UpdateFields": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "divisionFactor": {"type": "number"},
                "isInstallment": {"type": "boolean"},
                "totalInstallments": {"type": "integer"},
                "paidInstallments": {"type": "integer"}
            }
        },
        "service.Summary": {
            "type": "object",
            "properties": {
                "totalIncome": {"type": "number"},
                "totalExpenses": {"type": "number"},
                "balance": {"type": "number"},
                "expensesByCategory": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "api.AnalysisRequest": {
            "type": "object",
            "properties": {"startDate": {"type": "string"}, "endDate": {"type": "string"}, "ledgerId": {"type": "integer"}}
        },
        "api.AnalysisResponse": {"type": "object", "properties": {"analysis": {"type": "string"}}},
        "api.AnalysisDetail": {
            "allOf": [
                {"$ref": "#/definitions/models.AnalysisHistory"},
                {"type": "object", "properties": {"html": {"type": "string"}}}
            ]
        },
        "models.Ledger": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "userId": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "ledgerId": {"type": "integer"},
                "type": {"type": "string"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "originalAmount": {"type": "number"},
                "divisionFactor": {"type": "number"},
                "isInstallment": {"type": "boolean"},
                "totalInstallments": {"type": "integer"},
                "paidInstallments": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.AnalysisHistory": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "ledgerId": {"type": "integer"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "provider": {"type": "string"},
                "analysis": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PocketLedger API",
	Description:      "Personal finance API: users, ledgers, transactions, summaries, exports and AI analysis.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
