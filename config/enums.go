package config

//go:generate go tool go-enum --names --marshal

// Attribute persistence host.
// ENUM(files, sqlite)
type StorageKind int

// How thumbnails are resized: fit shrinks into the box, fill crops to it.
// ENUM(fit, fill)
type ThumbnailMode int
