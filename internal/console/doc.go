// Package console defines the developer-console operations used by the
// template installer and an HTTP implementation of them.
//
// The Client interface is deliberately small: list/create workspaces and
// runtime namespaces, read the organization service catalog, list/create
// workspace credentials, and subscribe a credential to services. Callers treat
// each call as a synchronous operation that may fail; nothing here retries or
// caches.
//
// The JSON shapes returned by the service are not fully consistent (workspace
// ids come back as "id" from list calls and "workspaceId" from create calls,
// runtime flags as 0/1), so the types in this package normalise them on decode.
package console
