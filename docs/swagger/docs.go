// Package swagger holds the OpenAPI document for the HTTP API, registered with
// swag and served by gofiber/swagger. Keep it in step with the handler annotations.
package swagger

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
        "/workflow/bucket": {
            "post": {
                "description": "Creates the configured bucket. An existing bucket is reported, not treated as an error.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workflow"
                ],
                "summary": "Ensure Bucket",
                "responses": {
                    "200": {
                        "description": "Bucket",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "502": {
                        "description": "Storage Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/workflow/objects": {
            "get": {
                "description": "Enumerates the bucket. Entries that failed carry an error message instead of object data.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workflow"
                ],
                "summary": "List Objects",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key prefix",
                        "name": "prefix",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of entries",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/workflow.ListResult"
                        }
                    }
                }
            }
        },
        "/workflow/objects/{key}": {
            "put": {
                "description": "Writes the request body to the object key and returns its metadata once committed.",
                "consumes": [
                    "application/octet-stream"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workflow"
                ],
                "summary": "Upload Object",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Object key",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/storage.ObjectAttrs"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "502": {
                        "description": "Storage Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/workflow/run": {
            "post": {
                "description": "Provisions the bucket, uploads the payload, and verifies that the key is listed exactly once.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workflow"
                ],
                "summary": "Run Workflow",
                "parameters": [
                    {
                        "description": "Run plan",
                        "name": "plan",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/workflow.Plan"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/workflow.Report"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "502": {
                        "description": "Failed Run",
                        "schema": {
                            "$ref": "#/definitions/workflow.Report"
                        }
                    }
                }
            }
        },
        "/workflow/runs": {
            "get": {
                "description": "Lists the most recent workflow runs. Requires a database connection.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "workflow"
                ],
                "summary": "Run History",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum number of runs",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/workflow.RunRecord"
                            }
                        }
                    },
                    "503": {
                        "description": "History Disabled",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "storage.ObjectAttrs": {
            "type": "object",
            "properties": {
                "bucket": {
                    "type": "string"
                },
                "content_type": {
                    "type": "string"
                },
                "created": {
                    "type": "string"
                },
                "etag": {
                    "type": "string"
                },
                "generation": {
                    "type": "string"
                },
                "md5": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "updated": {
                    "type": "string"
                }
            }
        },
        "workflow.Entry": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "object": {
                    "$ref": "#/definitions/storage.ObjectAttrs"
                }
            }
        },
        "workflow.ListResult": {
            "type": "object",
            "properties": {
                "bucket": {
                    "type": "string"
                },
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/workflow.Entry"
                    }
                },
                "failed": {
                    "type": "integer"
                },
                "prefix": {
                    "type": "string"
                }
            }
        },
        "workflow.Plan": {
            "type": "object",
            "required": [
                "key"
            ],
            "properties": {
                "cleanup": {
                    "type": "boolean"
                },
                "key": {
                    "type": "string",
                    "maxLength": 1024
                },
                "payload": {
                    "type": "string"
                },
                "read_back": {
                    "type": "boolean"
                },
                "sole": {
                    "type": "boolean"
                }
            }
        },
        "workflow.Report": {
            "type": "object",
            "properties": {
                "bucket": {
                    "type": "string"
                },
                "bucket_existed": {
                    "type": "boolean"
                },
                "cleaned_up": {
                    "type": "boolean"
                },
                "duration": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                },
                "key": {
                    "type": "string"
                },
                "object": {
                    "$ref": "#/definitions/storage.ObjectAttrs"
                },
                "run_id": {
                    "type": "string"
                },
                "started_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "verification": {
                    "$ref": "#/definitions/workflow.Verification"
                }
            }
        },
        "workflow.RunRecord": {
            "type": "object",
            "properties": {
                "bucket": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "id": {
                    "type": "integer"
                },
                "listed": {
                    "type": "integer"
                },
                "matches": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "object_key": {
                    "type": "string"
                },
                "run_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "workflow.Verification": {
            "type": "object",
            "properties": {
                "digest_match": {
                    "type": "boolean"
                },
                "failed": {
                    "type": "integer"
                },
                "key": {
                    "type": "string"
                },
                "listed": {
                    "type": "integer"
                },
                "matches": {
                    "type": "integer"
                },
                "passed": {
                    "type": "boolean"
                },
                "problems": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storage Probe API",
	Description:      "API for running object storage workflows against GCS and S3 compatible endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
