// Package docs registers the OpenAPI description of the REST API with swag so
// gin-swagger can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/books": {
            "get": {
                "summary": "List books",
                "parameters": [
                    {"type": "string", "name": "title", "in": "query"},
                    {"type": "string", "name": "author", "in": "query"},
                    {"type": "string", "name": "status", "in": "query", "enum": ["AVAILABLE", "BORROWED", "LOST", "MAINTENANCE"]},
                    {"type": "string", "name": "sortBy", "in": "query", "description": "field:asc or field:desc"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Page of books"}, "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "post": {
                "summary": "Create a book",
                "parameters": [{"name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Book"}}, "400": {"description": "Invalid input or duplicate isbn", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/books/{id}": {
            "get": {
                "summary": "Get a book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Book", "schema": {"$ref": "#/definitions/Book"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "put": {
                "summary": "Update a book",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookInput"}}
                ],
                "responses": {"200": {"description": "Book", "schema": {"$ref": "#/definitions/Book"}}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "delete": {
                "summary": "Delete a book that is not borrowed",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "400": {"description": "Book is borrowed", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/books/{id}/borrowings": {
            "get": {
                "summary": "Borrowings of a book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Borrowings"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/books/{id}/borrow": {
            "post": {
                "summary": "Borrow a book",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "borrowing", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BorrowInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Borrowing"}}, "400": {"description": "Book not available", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Book or user not found", "schema": {"$ref": "#/definitions/Error"}}, "500": {"description": "Unavailable, retry", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/authors": {
            "get": {"summary": "List authors", "responses": {"200": {"description": "Page of authors"}}},
            "post": {
                "summary": "Create an author",
                "parameters": [{"name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Author"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Author"}}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/authors/{id}": {
            "get": {
                "summary": "Get an author",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Author", "schema": {"$ref": "#/definitions/Author"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/authors/{id}/books": {
            "get": {
                "summary": "Books whose author matches the author's name",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Books"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/users": {
            "get": {"summary": "List users", "responses": {"200": {"description": "Page of users"}}},
            "post": {
                "summary": "Create a user",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/User"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}, "400": {"description": "Invalid input or duplicate email", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "summary": "Get a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "User", "schema": {"$ref": "#/definitions/User"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/users/{id}/borrowings": {
            "get": {
                "summary": "Borrowings of a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Borrowings"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/borrowings": {
            "get": {
                "summary": "List borrowings",
                "parameters": [
                    {"type": "string", "name": "bookId", "in": "query"},
                    {"type": "string", "name": "userId", "in": "query"},
                    {"type": "string", "name": "status", "in": "query", "enum": ["ACTIVE", "RETURNED"]},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Page of borrowings"}}
            },
            "post": {
                "summary": "Borrow a book",
                "parameters": [{"name": "borrowing", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BorrowInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Borrowing"}}, "400": {"description": "Book not available", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Book or user not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/borrowings/{id}": {
            "get": {
                "summary": "Get a borrowing",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Borrowing", "schema": {"$ref": "#/definitions/Borrowing"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/borrowings/{id}/return": {
            "post": {
                "summary": "Return a borrowed book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Returned", "schema": {"$ref": "#/definitions/Borrowing"}}, "400": {"description": "Borrowing not active", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        }
    },
    "definitions": {
        "Book": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "isbn": {"type": "string"},
                "status": {"type": "string", "enum": ["AVAILABLE", "BORROWED", "LOST", "MAINTENANCE"]},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "BookInput": {
            "type": "object",
            "required": ["title", "author", "isbn"],
            "properties": {
                "title": {"type": "string"},
                "author": {"type": "string"},
                "isbn": {"type": "string"},
                "status": {"type": "string", "enum": ["AVAILABLE", "LOST", "MAINTENANCE"]}
            }
        },
        "Author": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "nationality": {"type": "string"},
                "birthYear": {"type": "integer"}
            }
        },
        "User": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "SUSPENDED", "BLOCKED"]},
                "membershipDate": {"type": "string", "format": "date-time"}
            }
        },
        "BorrowInput": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "bookId": {"type": "string"},
                "userId": {"type": "string"},
                "dueDate": {"type": "string", "format": "date-time"}
            }
        },
        "Borrowing": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "bookId": {"type": "string"},
                "userId": {"type": "string"},
                "borrowDate": {"type": "string", "format": "date-time"},
                "dueDate": {"type": "string", "format": "date-time"},
                "returnDate": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["ACTIVE", "RETURNED"]},
                "effectiveStatus": {"type": "string", "enum": ["ACTIVE", "RETURNED", "OVERDUE"]}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "enum": ["NOT_FOUND", "CONFLICT", "VALIDATION", "UNAVAILABLE", "INTERNAL"]},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Libris API",
	Description:      "Books, authors, users and borrowings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
