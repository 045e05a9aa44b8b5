// Package swagger embeds the OpenAPI document of the HTTP API.
package swagger

import _ "embed"

// Document is the OpenAPI 2.0 description of the /users routes.
//
//go:embed users.swagger.json
var Document []byte
