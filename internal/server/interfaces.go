package server

// Server is the lifecycle contract a transport server fulfils.
//
// RunServer blocks for the lifetime of the server; Shutdown stops accepting
// new requests, drains in-flight ones within the shutdown timeout, and
// releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
