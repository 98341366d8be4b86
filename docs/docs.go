// Package docs registra en swag el documento OpenAPI que sirve /swagger/doc.json.
// Se mantiene a mano a partir de las anotaciones de cmd/api y los handlers.
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
        "/dogs/breeds": {
            "get": {
                "description": "Devuelve los nombres de todas las razas conocidas por dog.ceo. Sin contenido (204) si la lista viene vacía.",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Listar razas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "204": {"description": "sin razas"},
                    "503": {"description": "falla upstream"}
                }
            }
        },
        "/dogs/random-image": {
            "get": {
                "description": "Sin count (o count=0) devuelve una sola imagen; con count=N devuelve N (máximo 50).",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Imágenes al azar",
                "parameters": [
                    {"type": "integer", "description": "Cantidad de imágenes (0-50)", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "204": {"description": "sin imágenes"},
                    "400": {"description": "count inválido"},
                    "503": {"description": "falla upstream"}
                }
            }
        },
        "/dogs/{breed}/images": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Imágenes de una raza",
                "parameters": [
                    {"type": "string", "description": "Nombre de la raza", "name": "breed", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "204": {"description": "sin imágenes"},
                    "503": {"description": "falla upstream"}
                }
            }
        },
        "/dogs/{breed}/images/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Imágenes al azar de una raza",
                "parameters": [
                    {"type": "string", "description": "Nombre de la raza", "name": "breed", "in": "path", "required": true},
                    {"type": "integer", "description": "Cantidad de imágenes (0-50)", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "204": {"description": "sin imágenes"},
                    "400": {"description": "count inválido"},
                    "503": {"description": "falla upstream"}
                }
            }
        },
        "/dogs/{breed}/sub-breeds": {
            "get": {
                "description": "Devuelve las sub-razas de una raza. Una raza desconocida devuelve lista vacía (200).",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Listar sub-razas",
                "parameters": [
                    {"type": "string", "description": "Nombre de la raza", "name": "breed", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "503": {"description": "falla upstream"}
                }
            }
        },
        "/users": {
            "get": {
                "description": "Devuelve todos los usuarios ordenados por id. Sin contenido (204) si no hay ninguno.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Listar usuarios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/users.User"}}},
                    "204": {"description": "sin usuarios"}
                }
            },
            "post": {
                "description": "El email debe ser único; si ya existe responde 409 y no modifica nada.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Crear usuario",
                "parameters": [
                    {"description": "Datos del usuario", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.userRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.User"}},
                    "400": {"description": "payload inválido"},
                    "409": {"description": "email duplicado"}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Borrar todos los usuarios",
                "responses": {
                    "204": {"description": "borrados"}
                }
            }
        },
        "/users/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Buscar usuario por email",
                "parameters": [
                    {"type": "string", "description": "Email exacto", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.User"}},
                    "400": {"description": "email faltante"},
                    "404": {"description": "no existe"}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Obtener usuario",
                "parameters": [
                    {"type": "integer", "description": "ID del usuario", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.User"}},
                    "400": {"description": "id inválido"},
                    "404": {"description": "no existe"}
                }
            },
            "put": {
                "description": "Reemplaza name, email y address. Cambiar a un email usado por otro usuario responde 409.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Actualizar usuario",
                "parameters": [
                    {"type": "integer", "description": "ID del usuario", "name": "id", "in": "path", "required": true},
                    {"description": "Datos del usuario", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.userRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.User"}},
                    "400": {"description": "payload inválido"},
                    "404": {"description": "no existe"},
                    "409": {"description": "email duplicado"}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Borrar usuario",
                "parameters": [
                    {"type": "integer", "description": "ID del usuario", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "borrado"},
                    "400": {"description": "id inválido"},
                    "404": {"description": "no existe"}
                }
            }
        }
    },
    "definitions": {
        "users.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "users.userRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "Av. Siempre Viva 742"},
                "email": {"type": "string", "example": "ana@example.com"},
                "name": {"type": "string", "example": "Ana"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Dog Users API",
	Description:      "Proxy de razas e imágenes de dog.ceo y CRUD de usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
