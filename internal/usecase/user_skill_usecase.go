package usecase

import (
	"context"
	"errors"

	"careergps/internal/domain/skill"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrSkillAlreadyAdded = errors.New("skill already on profile")
)

type UserSkillUsecase interface {
	ListMySkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	AddSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.Skill, error)
	RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkill struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
}

func NewUserSkillUsecase(skills repository.SkillRepository, userSkills repository.UserSkillRepository) *UserSkill {
	return &UserSkill{skills: skills, userSkills: userSkills}
}

func (u *UserSkill) ListMySkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	out, err := u.userSkills.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *UserSkill) AddSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.Skill, error) {
	sk, err := u.skills.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, ErrInternal
	}

	if err := u.userSkills.Attach(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillExists) {
			return skill.Skill{}, ErrSkillAlreadyAdded
		}
		return skill.Skill{}, ErrInternal
	}
	return sk, nil
}

func (u *UserSkill) RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if err := u.userSkills.Detach(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}
