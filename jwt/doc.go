// Package jwt resolves signing algorithms from configuration and encodes, decodes, and
// verifies the signed bearer tokens issued by tokenauth.
//
// # Components
//
//   - [Manager]: resolves HS256/HS384/HS512/RS256/RS384/RS512 key material and caches
//     it for a bounded interval so keys can rotate on disk.
//   - [Codec]: signs [Claims] and verifies token strings against an [Algorithm].
//   - [WatchKeyFiles]: drops the cached algorithm when key files change.
//
// # What this package must NOT do
//
//   - Consult revocation state, rate limits, or IP policy (the Engine owns those).
//   - Log secret material or full token strings.
package jwt
