// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session tokens.

# Passwords

Passwords are stored as salted argon2id hashes in PHC string format:

	hash, err := auth.HashPassword(password)
	ok, err := auth.VerifyPassword(password, hash)

Verification re-derives the key with the parameters recorded in the hash and
compares with crypto/subtle, so older hashes keep working if the defaults
change.

# Session Tokens

Sessions are HS256 JWTs carrying the actor's id, role, and display name:

	token, err := auth.IssueSessionToken(actor, secret, 12*time.Hour)
	actor, err := auth.ParseSessionToken(token, secret)

Any parse, signature, expiry, or role failure returns ErrInvalidToken.
*/
package auth
