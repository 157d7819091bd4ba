package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scarlet Planner API",
        "description": "Course catalog search and weekly schedule planning",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Account registration and tokens"},
        {"name": "Courses", "description": "Catalog search"},
        {"name": "Plans", "description": "Course plans and derived schedules"},
        {"name": "Schedule", "description": "Stateless schedule checks"},
        {"name": "Ratings", "description": "Instructor ratings"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue tokens",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "Search catalog courses",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "hub", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/subjects": {
            "get": {
                "tags": ["Courses"],
                "summary": "List catalog subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/terms": {
            "get": {
                "tags": ["Courses"],
                "summary": "List catalog terms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/hub-units": {
            "get": {
                "tags": ["Courses"],
                "summary": "List catalog Hub requirements",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "List the user's plans",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Plans"],
                "summary": "Create a plan",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/{id}": {
            "get": {
                "tags": ["Plans"],
                "summary": "Get a plan with its derived schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Plans"],
                "summary": "Delete a plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/plans/{id}/courses": {
            "post": {
                "tags": ["Plans"],
                "summary": "Add a course to a plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Plans"],
                "summary": "Replace a plan's whole selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Plans"],
                "summary": "Remove all courses from a plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/{id}/courses/{courseId}": {
            "delete": {
                "tags": ["Plans"],
                "summary": "Remove a course from a plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/{id}/export/{format}": {
            "get": {
                "tags": ["Plans"],
                "summary": "Export a plan schedule as ics, pdf or csv",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["ics", "pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Rendered export"}
                }
            }
        },
        "/schedule/validate": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Check an arbitrary course list for conflicts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ratings/batch": {
            "post": {
                "tags": ["Ratings"],
                "summary": "Look up several instructor ratings at once",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ratings/{name}": {
            "get": {
                "tags": ["Ratings"],
                "summary": "Get an instructor rating",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No rating found"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
