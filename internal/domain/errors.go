package domain

import "errors"

var (
	// ErrUnableToResolve marks a post whose domain has no registered resolver
	// and whose URL carries no recognizable extension.
	ErrUnableToResolve = errors.New("no resolver for domain")

	// ErrMissingClientID is returned by the imgur resolver when
	// IMGUR_CLIENT_ID is absent from the environment.
	ErrMissingClientID = errors.New("no client id for imgur inside file .env")

	// ErrMissingField marks listing JSON that lacks a field the resolver
	// needs (e.g. secure_media.reddit_video.fallback_url).
	ErrMissingField = errors.New("missing field in listing json")
)
