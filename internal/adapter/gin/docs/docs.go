// Package docs embeds the OpenAPI description served by the HTTP router.
package docs

import _ "embed"

// Spec is the OpenAPI 3 document for the public HTTP API.
//
//go:embed openapi.json
var Spec []byte
