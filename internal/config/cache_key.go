package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionStartKey returns the cache key for a session's start timestamp.
func (r *CacheKeyStruct) SessionStartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:start", sessionID)
}

// SessionDurationKey returns the cache key for a session's duration in minutes.
func (r *CacheKeyStruct) SessionDurationKey(sessionID string) string {
	return fmt.Sprintf("session:%s:duration", sessionID)
}

// SessionAnswersKey returns the cache key for a session's answer hash.
// Hash field is the question id, value is the encoded AnswerValue.
func (r *CacheKeyStruct) SessionAnswersKey(sessionID string) string {
	return fmt.Sprintf("session:%s:answers", sessionID)
}

// SessionUploadsKey returns the cache key for a session's uploaded-media hash.
// Hash field is the question id, value is the hosted image URL. Presence of
// a field is what makes photo uploads idempotent per question.
func (r *CacheKeyStruct) SessionUploadsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:uploads", sessionID)
}

var CacheKey = NewCacheKeyStruct()
