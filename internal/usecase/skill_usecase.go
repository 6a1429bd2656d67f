package usecase

import (
	"context"
	"strings"

	"careergps/internal/domain/skill"
	"careergps/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context, limit, offset int) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type Skill struct {
	skills repository.SkillRepository
}

func NewSkillUsecase(skills repository.SkillRepository) *Skill {
	return &Skill{skills: skills}
}

func (u *Skill) ListSkills(ctx context.Context, limit, offset int) ([]skill.Skill, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.skills.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// CreateSkill is create-or-return: posting an existing name yields the
// existing row. Names are stored lowercased so the catalog and user
// profiles agree on identity.
func (u *Skill) CreateSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	sk, err := u.skills.CreateOrGet(ctx, name, strings.TrimSpace(category))
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	return sk, nil
}
