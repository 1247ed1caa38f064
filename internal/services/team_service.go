package services

import (
	"errors"
	"strings"

	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrNotTeamManager   = errors.New("only team owners and admins can manage members")
	ErrAlreadyMember    = errors.New("user is already a team member")
	ErrTeamNameRequired = errors.New("team name is required")
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// CreateTeam creates the team and its OWNER membership in one transaction.
func (s *TeamService) CreateTeam(ownerID, name string) (*models.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := models.Team{ID: uuid.New(), Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			ID:     uuid.New(),
			TeamID: team.ID,
			UserID: ownerID,
			Role:   models.RoleOwner,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) AddMember(teamID uuid.UUID, actorID, userID string, role models.TeamRole) (*models.TeamMember, error) {
	var actor models.TeamMember
	err := s.db.First(&actor, "team_id = ? AND user_id = ?", teamID, actorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleOwner && actor.Role != models.RoleAdmin {
		return nil, ErrNotTeamManager
	}

	var existing models.TeamMember
	if err := s.db.First(&existing, "team_id = ? AND user_id = ?", teamID, userID).Error; err == nil {
		return nil, ErrAlreadyMember
	}

	if role == "" {
		role = models.RoleMember
	}
	member := models.TeamMember{
		ID:     uuid.New(),
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// GetTeam returns the team with its member list; callers outside the team
// get ErrTeamNotFound rather than a membership hint.
func (s *TeamService) GetTeam(userID string, teamID uuid.UUID) (*models.Team, error) {
	ok, err := s.CanAccessTeam(userID, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTeamNotFound
	}

	var team models.Team
	err = s.db.Preload("Members").First(&team, "id = ?", teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) GetUserTeams(userID string) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	err := s.db.Preload("Team").
		Where("user_id = ?", userID).
		Find(&memberships).Error
	return memberships, err
}

func (s *TeamService) CanAccessTeam(userID string, teamID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}
