// Package openapi supplements the model registry with definitions sourced
// from an OpenAPI document: component schemas are extracted with kin-openapi
// and handed to the synthesizer as raw JSON definitions. This is the CLI's
// input path, since a compiled binary cannot import caller packages to
// discover registered Go models.
package openapi
