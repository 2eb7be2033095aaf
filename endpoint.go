package searchkit

import "net/url"

// Resource roots on the service API.
const (
	collectionsPath = "/collections"
	healthPath      = "/health"
)

// Endpoint builders. Names and IDs are caller-supplied, so every path
// segment is escaped.

func collectionEndpoint(name string) string {
	return collectionsPath + "/" + url.PathEscape(name)
}

func documentsEndpoint(collection string) string {
	return collectionEndpoint(collection) + "/documents"
}

func documentEndpoint(collection, id string) string {
	return documentsEndpoint(collection) + "/" + url.PathEscape(id)
}

func overridesEndpoint(collection, id string) string {
	return collectionEndpoint(collection) + "/overrides" + optionalID(id)
}

func synonymsEndpoint(collection, id string) string {
	return collectionEndpoint(collection) + "/synonyms" + optionalID(id)
}

func optionalID(id string) string {
	if id == "" {
		return ""
	}
	return "/" + url.PathEscape(id)
}
