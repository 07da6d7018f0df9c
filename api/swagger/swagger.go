package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Calendar API",
        "description": "Personal event calendar: open reads, API-key-gated writes.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Event CRUD and batch import"},
        {"name": "Calendar", "description": "Per-day event index"},
        {"name": "Export", "description": "CSV/PDF tables and iCalendar feed"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List all events ascending by start date",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Event"}}
                    }
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create one event or import a batch",
                "description": "A JSON object creates a single event; a JSON array runs batch ingest with duplicate detection against the batch and the store.",
                "parameters": [
                    {"name": "x-api-key", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created event or batch result", "schema": {"$ref": "#/definitions/BatchResult"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Missing or wrong API key", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Malformed body or store failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/events/{id}": {
            "put": {
                "tags": ["Events"],
                "summary": "Replace the full field set of an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "x-api-key", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated event", "schema": {"$ref": "#/definitions/Event"}},
                    "400": {"description": "Invalid event ID or missing fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Missing or wrong API key", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "x-api-key", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "400": {"description": "Invalid event ID", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Missing or wrong API key", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Per-day event index",
                "description": "Expands multi-day events onto every calendar date they occupy.",
                "responses": {
                    "200": {"description": "Map of YYYY-MM-DD to event lists"}
                }
            }
        },
        "/calendar.ics": {
            "get": {
                "tags": ["Export"],
                "summary": "iCalendar feed of all events",
                "produces": ["text/calendar"],
                "responses": {
                    "200": {"description": "VCALENDAR body"}
                }
            }
        },
        "/events/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export all events as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "startTime": {"type": "string", "x-nullable": true},
                "endTime": {"type": "string", "x-nullable": true},
                "location": {"type": "string", "x-nullable": true},
                "description": {"type": "string", "x-nullable": true},
                "color": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string", "x-nullable": true},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "BatchResult": {
            "type": "object",
            "properties": {
                "success": {"type": "integer"},
                "failed": {"type": "integer"},
                "skipped": {"type": "integer"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/Event"}},
                "errors": {"type": "array", "items": {"type": "object"}},
                "skippedEvents": {"type": "array", "items": {"type": "object"}}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
