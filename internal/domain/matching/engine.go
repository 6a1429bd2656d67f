// Package matching ranks active jobs against a user's skill profile.
package matching

import (
	"sort"

	"github.com/google/uuid"
)

type JobSkills struct {
	JobID    uuid.UUID
	SkillIDs []uuid.UUID
}

type Match struct {
	JobID uuid.UUID
	// Score is the percentage of the job's required skills the user
	// possesses, in (0, 100]. The denominator is the job's skill count,
	// not the user's: a job needing two skills the user has scores 100
	// regardless of what else the user knows.
	Score float64
}

// Rank scores each job by skill overlap and returns matches sorted by
// descending score, ties broken by job ID ascending, truncated to limit.
// An empty user skill set yields no matches; jobs with no required skills
// or no overlap are excluded.
func Rank(userSkillIDs []uuid.UUID, jobs []JobSkills, limit int) []Match {
	if len(userSkillIDs) == 0 {
		return nil
	}

	owned := make(map[uuid.UUID]struct{}, len(userSkillIDs))
	for _, id := range userSkillIDs {
		if id == uuid.Nil {
			continue
		}
		owned[id] = struct{}{}
	}
	if len(owned) == 0 {
		return nil
	}

	out := make([]Match, 0, len(jobs))
	for _, j := range jobs {
		required := dedupSkillIDs(j.SkillIDs)
		if len(required) == 0 {
			continue
		}

		overlap := 0
		for id := range required {
			if _, ok := owned[id]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		out = append(out, Match{
			JobID: j.JobID,
			Score: float64(overlap) / float64(len(required)) * 100,
		})
	}

	sort.Slice(out, func(i, k int) bool {
		if out[i].Score != out[k].Score {
			return out[i].Score > out[k].Score
		}
		return out[i].JobID.String() < out[k].JobID.String()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func dedupSkillIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
