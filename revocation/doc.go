// Package revocation holds the denylist of tokens that must be rejected before
// their natural expiry.
//
// # Guarantees
//
//   - No false negatives: once Add returns, Contains reports true until the entry
//     is swept as naturally expired.
//   - Add reports true only to the caller that inserted the entry, even when many
//     callers race on the same token.
//
// [Memory] keeps raw tokens in process. [Redis] keeps SHA-256 fingerprints under
// a key prefix with TTLs that run to each token's exp claim.
package revocation
