package docs

import "github.com/swaggo/swag"

const customersTemplate = `{
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
        "/owners": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Listar owners",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/owners.ownerResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Crear owner",
                "parameters": [
                    {
                        "description": "Datos del owner; telephone 1 a 12 dígitos",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/owners.ownerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/owners.ownerResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    }
                }
            }
        },
        "/owners/saveRecording/{path}": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "diagnostics"
                ],
                "summary": "Guardar y detener la grabación",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Archivo destino",
                        "name": "path",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Recording saved to <path>",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/owners/startRecording": {
            "get": {
                "tags": [
                    "diagnostics"
                ],
                "summary": "Iniciar grabación de diagnóstico",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/owners/{ownerId}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Obtener owner por id",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del owner (>= 1)",
                        "name": "ownerId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/owners.ownerResponse"
                        }
                    },
                    "400": {
                        "description": "ownerId inválido",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    },
                    "404": {
                        "description": "owner not found",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    }
                }
            },
            "put": {
                "description": "Copia firstName, lastName, address, city y telephone. Las mascotas no cambian.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Actualizar owner",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del owner (>= 1)",
                        "name": "ownerId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Datos del owner",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/owners.ownerRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    },
                    "404": {
                        "description": "owner not found",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    }
                }
            }
        },
        "/owners/{ownerId}/pets": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Agregar mascota a un owner",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del owner (>= 1)",
                        "name": "ownerId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Mascota; typeId según GET /petTypes",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/owners.petRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/owners.petResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    },
                    "404": {
                        "description": "owner not found",
                        "schema": {
                            "$ref": "#/definitions/owners.errorResponse"
                        }
                    }
                }
            }
        },
        "/petTypes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "owners"
                ],
                "summary": "Catálogo de tipos de mascota",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/owners.petTypeResponse"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "owners.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "owners.ownerRequest": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "telephone": {
                    "type": "string"
                }
            }
        },
        "owners.ownerResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "lastName": {
                    "type": "string"
                },
                "pets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/owners.petResponse"
                    }
                },
                "telephone": {
                    "type": "string"
                }
            }
        },
        "owners.petRequest": {
            "type": "object",
            "properties": {
                "birthDate": {
                    "type": "string",
                    "example": "2010-09-07"
                },
                "name": {
                    "type": "string"
                },
                "typeId": {
                    "type": "integer"
                }
            }
        },
        "owners.petResponse": {
            "type": "object",
            "properties": {
                "birthDate": {
                    "type": "string",
                    "example": "2010-09-07"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/owners.petTypeResponse"
                }
            }
        },
        "owners.petTypeResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        }
    }
}`

// CustomersInfo holds exported Swagger Info so clients can modify it
var CustomersInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Petclinic Customers Service",
	Description:      "Owners, mascotas y catálogo de tipos.",
	InfoInstanceName: "customers",
	SwaggerTemplate:  customersTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(CustomersInfo.InstanceName(), CustomersInfo)
}
