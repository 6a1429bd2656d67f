package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestRank_EmptyUserSkills(t *testing.T) {
	jobs := []JobSkills{{JobID: uuid.New(), SkillIDs: []uuid.UUID{uuid.New()}}}
	if got := Rank(nil, jobs, 10); len(got) != 0 {
		t.Fatalf("expected no matches for empty profile, got %d", len(got))
	}
}

func TestRank_JobWithoutSkillsExcluded(t *testing.T) {
	s := uuid.New()
	jobs := []JobSkills{
		{JobID: uuid.New(), SkillIDs: nil},
		{JobID: uuid.New(), SkillIDs: []uuid.UUID{s}},
	}
	got := Rank([]uuid.UUID{s}, jobs, 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].JobID != jobs[1].JobID {
		t.Fatalf("unexpected job matched")
	}
}

func TestRank_PartialOverlapScore(t *testing.T) {
	owned := uuid.New()
	missing := uuid.New()
	jobID := uuid.New()

	got := Rank([]uuid.UUID{owned}, []JobSkills{{JobID: jobID, SkillIDs: []uuid.UUID{owned, missing}}}, 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Score != 50.0 {
		t.Fatalf("expected score 50.0, got %v", got[0].Score)
	}
}

func TestRank_FullOverlapIgnoresExtraUserSkills(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	user := []uuid.UUID{a, b, uuid.New(), uuid.New()}

	got := Rank(user, []JobSkills{{JobID: uuid.New(), SkillIDs: []uuid.UUID{a, b}}}, 10)
	if len(got) != 1 || got[0].Score != 100.0 {
		t.Fatalf("expected single 100.0 match, got %+v", got)
	}
}

func TestRank_ZeroOverlapExcluded(t *testing.T) {
	got := Rank(
		[]uuid.UUID{uuid.New()},
		[]JobSkills{{JobID: uuid.New(), SkillIDs: []uuid.UUID{uuid.New()}}},
		10,
	)
	if len(got) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(got))
	}
}

func TestRank_SortedDescWithDeterministicTieBreak(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	half1 := uuid.New()
	half2 := uuid.New()
	full := uuid.New()

	jobs := []JobSkills{
		{JobID: half1, SkillIDs: []uuid.UUID{s1, uuid.New()}},
		{JobID: full, SkillIDs: []uuid.UUID{s1, s2}},
		{JobID: half2, SkillIDs: []uuid.UUID{s2, uuid.New()}},
	}

	got := Rank([]uuid.UUID{s1, s2}, jobs, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	if got[0].JobID != full {
		t.Fatalf("expected full match first")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("not sorted descending at %d", i)
		}
	}

	// Ties (both 50%) ordered by job ID ascending.
	lo, hi := half1, half2
	if hi.String() < lo.String() {
		lo, hi = hi, lo
	}
	if got[1].JobID != lo || got[2].JobID != hi {
		t.Fatalf("tie-break not by job id ascending")
	}

	// Scores stay within (0, 100].
	for _, m := range got {
		if m.Score <= 0 || m.Score > 100 {
			t.Fatalf("score out of range: %v", m.Score)
		}
	}
}

func TestRank_LimitTruncates(t *testing.T) {
	s := uuid.New()
	jobs := make([]JobSkills, 0, 5)
	for i := 0; i < 5; i++ {
		jobs = append(jobs, JobSkills{JobID: uuid.New(), SkillIDs: []uuid.UUID{s}})
	}
	if got := Rank([]uuid.UUID{s}, jobs, 2); len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
}
