package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "LifeDesk personal records API Documentation",
        "title": "LifeDesk API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/todos": {
            "get": {
                "tags": ["Todos"],
                "summary": "List todos",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "All stored todos"
                    }
                }
            },
            "post": {
                "tags": ["Todos"],
                "summary": "Create a todo",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "todo",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {"type": "string", "example": "Renew passport"},
                                "details": {"type": "string"},
                                "completed": {"type": "boolean"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Created todo"},
                    "400": {"description": "Missing title"}
                }
            }
        },
        "/todos/{id}": {
            "put": {
                "tags": ["Todos"],
                "summary": "Update a todo",
                "description": "Sparse patch: only fields present in the body are applied",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated todo"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/reminders": {
            "get": {
                "tags": ["Reminders"],
                "summary": "List reminders",
                "description": "Also normalizes legacy daily records before returning",
                "responses": {
                    "200": {"description": "All stored reminders"}
                }
            },
            "post": {
                "tags": ["Reminders"],
                "summary": "Create a reminder",
                "parameters": [
                    {
                        "in": "body",
                        "name": "reminder",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "service": {"type": "string"},
                                "content": {"type": "string", "example": "Pay rent"},
                                "due_time": {"type": "string", "example": "2026-09-01"},
                                "advance_days": {"type": "integer"},
                                "recurring": {"type": "boolean"},
                                "cycle_mode": {"type": "string", "example": "monthly"},
                                "cycle_days": {"type": "integer"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Created reminder"},
                    "400": {"description": "Missing content"}
                }
            }
        },
        "/reminders/{rid}": {
            "put": {
                "tags": ["Reminders"],
                "summary": "Update a reminder",
                "description": "Sparse patch; malformed due_time is rejected here",
                "parameters": [
                    {"in": "path", "name": "rid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated reminder"},
                    "400": {"description": "Malformed due_time"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Reminders"],
                "summary": "Delete a reminder",
                "parameters": [
                    {"in": "path", "name": "rid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/reminders/{rid}/processed": {
            "put": {
                "tags": ["Reminders"],
                "summary": "Mark a reminder processed",
                "description": "Recurring reminders advance to the next cycle; one-shot reminders complete",
                "parameters": [
                    {"in": "path", "name": "rid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Advanced or completed reminder"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/bookmarks": {
            "get": {
                "tags": ["Bookmarks"],
                "summary": "List bookmarks",
                "responses": {
                    "200": {"description": "All stored bookmarks"}
                }
            },
            "post": {
                "tags": ["Bookmarks"],
                "summary": "Create a bookmark",
                "description": "Bare URLs get an https:// prefix; tags accept a list or comma-separated string",
                "responses": {
                    "201": {"description": "Created bookmark"},
                    "400": {"description": "Missing url"}
                }
            }
        },
        "/bookmarks/{bid}": {
            "put": {
                "tags": ["Bookmarks"],
                "summary": "Update a bookmark",
                "parameters": [
                    {"in": "path", "name": "bid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated bookmark"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Bookmarks"],
                "summary": "Delete a bookmark",
                "parameters": [
                    {"in": "path", "name": "bid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/server/status": {
            "get": {
                "tags": ["Server Status"],
                "summary": "List status reports",
                "parameters": [
                    {"in": "query", "name": "server_name", "type": "string"},
                    {"in": "query", "name": "limit", "type": "integer", "default": 100}
                ],
                "responses": {
                    "200": {"description": "Reports, newest received first"}
                }
            },
            "post": {
                "tags": ["Server Status"],
                "summary": "Submit a status report",
                "description": "Upserts by (server_name, service_name); unrecognized fields are kept in an extra map",
                "responses": {
                    "200": {"description": "Stored report"},
                    "400": {"description": "Missing required field or malformed is_success"}
                }
            }
        },
        "/ledger": {
            "get": {
                "tags": ["Ledger"],
                "summary": "List ledger entries",
                "responses": {
                    "200": {"description": "Entries ordered by record_date desc, id desc"}
                }
            },
            "post": {
                "tags": ["Ledger"],
                "summary": "Create a ledger entry",
                "description": "Applies the entry's effect to the asset and liability balances",
                "parameters": [
                    {
                        "in": "body",
                        "name": "entry",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "item": {"type": "string", "example": "Groceries"},
                                "amount": {"type": "number", "example": 42.5},
                                "interest": {"type": "number"},
                                "record_type": {"type": "string", "enum": ["income", "expense", "debt_in", "debt_out"]},
                                "record_date": {"type": "string", "example": "2026-08-25"},
                                "category": {"type": "string"},
                                "notes": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Created entry"},
                    "400": {"description": "Unknown record_type or malformed record_date"}
                }
            }
        },
        "/ledger/{eid}": {
            "put": {
                "tags": ["Ledger"],
                "summary": "Replace a ledger entry",
                "description": "Reverses the stored effect then applies the replacement's effect atomically",
                "parameters": [
                    {"in": "path", "name": "eid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Replaced entry"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Ledger"],
                "summary": "Delete a ledger entry",
                "description": "Reverses the stored effect before removing the row",
                "parameters": [
                    {"in": "path", "name": "eid", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/asset": {
            "get": {
                "tags": ["Balances"],
                "summary": "Get the asset balance",
                "responses": {
                    "200": {"description": "Asset singleton, materialized at zero if absent"}
                }
            },
            "post": {
                "tags": ["Balances"],
                "summary": "Overwrite the asset balance",
                "description": "Manual correction; bypasses the ledger derivation",
                "responses": {
                    "200": {"description": "Overwritten balance"}
                }
            }
        },
        "/liability": {
            "get": {
                "tags": ["Balances"],
                "summary": "Get the liability balance",
                "responses": {
                    "200": {"description": "Liability singleton, materialized at zero if absent"}
                }
            },
            "post": {
                "tags": ["Balances"],
                "summary": "Overwrite the liability balance",
                "description": "Manual correction; bypasses the ledger derivation",
                "responses": {
                    "200": {"description": "Overwritten balance"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "LifeDesk API",
	Description:      "LifeDesk personal records API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
