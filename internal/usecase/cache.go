package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobCache is the slice of the cache layer the job listing path uses.
// A nil or unavailable cache degrades to straight database reads.
type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type jobListCacheKeyInput struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Remote   string `json:"remote"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeCacheValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// JobListCacheKey derives a stable key from the normalized filter set.
func JobListCacheKey(params JobListParams) string {
	remote := ""
	if params.Remote != nil {
		if *params.Remote {
			remote = "t"
		} else {
			remote = "f"
		}
	}
	in := jobListCacheKeyInput{
		Title:    normalizeCacheValue(params.Title),
		Company:  normalizeCacheValue(params.Company),
		Location: normalizeCacheValue(params.Location),
		Remote:   remote,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:list:" + hex.EncodeToString(sum[:])
}

func JobListLockKey(listKey string) string {
	return "jobs:lock:" + strings.TrimPrefix(listKey, "jobs:list:")
}

// RecommendationCacheKey is per user: a profile change or a sync cycle
// invalidates the whole jobs:recs:* space.
func RecommendationCacheKey(userID uuid.UUID, limit int) string {
	return "jobs:recs:" + userID.String() + ":" + strconv.Itoa(limit)
}
