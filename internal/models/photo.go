package models

// Photo is a listable entry in the public upload directory. The URL is
// derived from the filename on every listing; nothing is persisted.
type Photo struct {
	URL string `json:"url"`
}
