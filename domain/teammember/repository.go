package teammember

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a team member is not found.
var ErrNotFound = errors.New("team member not found")

// Repository provides access to team member storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new team member repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new team member.
func (r *Repository) Create(member *TeamMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

// FindByID retrieves a team member by id.
func (r *Repository) FindByID(id string) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return &member, nil
}

// FindByEmail retrieves a team member by exact email. The comparison is
// case-sensitive (SQLite BINARY collation).
func (r *Repository) FindByEmail(email string) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.First(&member, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team member by email: %w", err)
	}
	return &member, nil
}

// FindAll retrieves all team members ordered by name.
func (r *Repository) FindAll() ([]*TeamMember, error) {
	var members []*TeamMember
	if err := r.db.Order("name ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to find team members: %w", err)
	}
	return members, nil
}

// FindActive retrieves all active team members ordered by name.
func (r *Repository) FindActive() ([]*TeamMember, error) {
	var members []*TeamMember
	if err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to find active team members: %w", err)
	}
	return members, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search retrieves team members whose name, email, or role contains the
// term as a literal substring, case-insensitively. A null role never
// matches.
func (r *Repository) Search(term string) ([]*TeamMember, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	var members []*TeamMember
	err := r.db.
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR (role IS NOT NULL AND LOWER(role) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search team members: %w", err)
	}
	return members, nil
}

// Update persists all fields of an existing team member.
func (r *Repository) Update(member *TeamMember) error {
	if err := r.db.Save(member).Error; err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	return nil
}

// Delete removes a team member by id.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&TeamMember{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
