// Package config supplies the key/value lookups that tokenauth reads its
// settings from.
//
// Keys use the dotted form (for example jwt.access.expire.minutes). A
// [Provider] may be backed by a map, the process environment, a YAML file, or a
// [Chain] of earlier sources overriding later ones.
package config
