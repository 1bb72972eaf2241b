// README: Common identifier value object used across modules.
package types

// ID is an opaque provider-issued place identifier. It is the stable join key
// between retrieval, filtering, AI selection, and assembly.
type ID string
