package docs

import "github.com/swaggo/swag"

// @title           RavenLoom Priority Engine API
// @version         1.0
// @description     Priority scoring, inheritance and conflict engine for RavenLoom teams

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Goals
// @tag.description Goal priority operations

// @tag.name Tasks
// @tag.description Task priority resolution operations

// @tag.name Teams
// @tag.description Team-level priority reports, conflicts, suggestions and queue

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
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "RavenLoom Priority Engine API",
	Description:      "Priority scoring, inheritance and conflict engine for RavenLoom teams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
